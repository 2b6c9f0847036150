package opcda

import (
	"fmt"

	"github.com/opcda-io/opcda-go/internal/bindings"
	"github.com/opcda-io/opcda-go/pkg/opcda/logging"
)

// Config carries the optional knobs for opening a client. The zero value is
// ready to use.
type Config struct {
	// Logger receives lifecycle transitions and failures. Nil keeps the
	// library silent.
	Logger logging.Logger
}

// Client owns one initialization of the native backend. Initialization state
// is per-Client, never ambient, so independent clients cannot race on shared
// globals. Descendant handles (Server, Group, Item) must not be used after
// the owning Client is closed; that ordering is the caller's contract,
// matching the native library's.
type Client struct {
	api    bindings.API
	log    logging.Logger
	closed bool
}

// Open initializes the native backend and returns a client. On platforms
// without the backend it fails with ErrInitializationFailed.
func Open() (*Client, error) {
	return OpenConfig(Config{})
}

// OpenConfig is Open with explicit configuration.
func OpenConfig(cfg Config) (*Client, error) {
	return openWithAPI(bindings.Platform(), cfg)
}

func openWithAPI(api bindings.API, cfg Config) (*Client, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	if code := api.Init(); code != bindings.Success {
		return nil, fmt.Errorf("%w: backend init returned code %d", ErrInitializationFailed, code)
	}
	log.Debug("opc backend initialized")
	return &Client{api: api, log: log}, nil
}

// Close stops the backend. It is a logic error to retain any descendant
// handle past this point. Close is idempotent and never fails.
func (c *Client) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	c.api.Stop()
	c.log.Debug("opc backend stopped")
	return nil
}

// Connect resolves host and connects to the named server on it. If the
// server connection fails after the host resolved, the host handle is
// released before the error returns, so a partial failure leaks nothing.
func (c *Client) Connect(host, serverName string) (*Server, error) {
	if c == nil || c.closed {
		return nil, fmt.Errorf("%w: client is closed", ErrConnectionFailed)
	}
	code, hostH := c.api.MakeHost(host)
	if code != bindings.Success || hostH == 0 {
		return nil, fmt.Errorf("%w: resolving host %q (code %d)", ErrConnectionFailed, host, code)
	}
	code, serverH := c.api.ConnectServer(hostH, serverName)
	if code != bindings.Success || serverH == 0 {
		c.api.FreeHost(hostH)
		return nil, fmt.Errorf("%w: server %q on host %q (code %d)", ErrConnectionFailed, serverName, host, code)
	}
	c.log.Debug("connected to server", "host", host, "server", serverName)
	return &Server{
		api:    c.api,
		log:    c.log.With("server", serverName),
		handle: serverH,
		host:   hostH,
	}, nil
}

// ConnectLocal connects to a server on the local machine.
func (c *Client) ConnectLocal(serverName string) (*Server, error) {
	return c.Connect("localhost", serverName)
}
