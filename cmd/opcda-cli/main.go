// Command opcda-cli probes the OPC DA backend and, when asked, connects to a
// server to report its status. It is the smallest end-to-end smoke test of
// the wrapper.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/opcda-io/opcda-go/pkg/opcda"
)

func main() {
	host := flag.String("host", "localhost", "machine the server runs on")
	serverName := flag.String("server", "", "ProgID of an OPC DA server to connect to (optional)")
	flag.Parse()

	log.Printf("opcda-go version: %s", opcda.Version)

	client, err := opcda.Open()
	if err != nil {
		if errors.Is(err, opcda.ErrInitializationFailed) {
			fmt.Printf("backend unavailable: %v\n", err)
			return
		}
		log.Fatalf("unexpected failure opening backend: %v", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			log.Printf("close error: %v", cerr)
		}
	}()

	fmt.Println("backend initialized successfully")
	if *serverName == "" {
		return
	}

	server, err := client.Connect(*host, *serverName)
	if err != nil {
		log.Fatalf("connect to %s on %s: %v", *serverName, *host, err)
	}
	defer server.Close()

	state, vendor, err := server.GetStatus()
	if err != nil {
		log.Fatalf("status: %v", err)
	}
	fmt.Printf("connected: state=%d vendor=%q\n", state, vendor)
}
