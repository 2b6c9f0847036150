package opcda

import (
	"fmt"
	"time"

	"github.com/opcda-io/opcda-go/internal/bindings"
	"github.com/opcda-io/opcda-go/pkg/opcda/logging"
)

// Server is a live connection to one OPC DA server. It owns its own server
// handle plus the host handle it was created with, and releases both, in
// that order, on Close.
type Server struct {
	api    bindings.API
	log    logging.Logger
	handle bindings.Handle
	host   bindings.Handle
	closed bool
}

// GetStatus reads the server's numeric state and vendor string. A backend
// that supplies no vendor information yields an empty string.
func (s *Server) GetStatus() (uint32, string, error) {
	if s == nil || s.closed {
		return 0, "", fmt.Errorf("%w: server is closed", ErrOperationFailed)
	}
	code, state, vendor := s.api.GetStatus(s.handle)
	if code != bindings.Success {
		return 0, "", fmt.Errorf("%w: get status returned code %d", ErrOperationFailed, code)
	}
	return state, vendor, nil
}

// CreateGroup asks the server for a new item group. The backend may grant an
// update rate different from the requested one; the granted rate is surfaced
// through Group.UpdateRate rather than discarded. deadband is a percentage
// in [0, 100].
func (s *Server) CreateGroup(name string, active bool, requestedRate time.Duration, deadband float64) (*Group, error) {
	if s == nil || s.closed {
		return nil, fmt.Errorf("%w: server is closed", ErrGroupCreationFailed)
	}
	if requestedRate < 0 {
		return nil, fmt.Errorf("%w: negative update rate %v", ErrInvalidParameters, requestedRate)
	}
	if deadband < 0 || deadband > 100 {
		return nil, fmt.Errorf("%w: deadband %v outside [0, 100]", ErrInvalidParameters, deadband)
	}
	code, actualMS, h := s.api.MakeGroup(s.handle, name, active, uint32(requestedRate.Milliseconds()), deadband)
	if code != bindings.Success || h == 0 {
		return nil, fmt.Errorf("%w: group %q (code %d)", ErrGroupCreationFailed, name, code)
	}
	s.log.Debug("group created", "group", name, "update_rate_ms", actualMS)
	return &Group{
		api:        s.api,
		log:        s.log.With("group", name),
		handle:     h,
		name:       name,
		updateRate: time.Duration(actualMS) * time.Millisecond,
	}, nil
}

// ListItems enumerates the server's addressable namespace. An empty or
// non-browsable server yields an error, never a panic.
func (s *Server) ListItems() ([]string, error) {
	if s == nil || s.closed {
		return nil, fmt.Errorf("%w: server is closed", ErrOperationFailed)
	}
	code, names := s.api.GetItemNames(s.handle)
	if code != bindings.Success {
		return nil, fmt.Errorf("%w: browsing item names returned code %d", ErrOperationFailed, code)
	}
	return names, nil
}

// Close releases the server handle and then the underlying host handle.
// Cleanup never fails observably; Close is idempotent.
func (s *Server) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.api.FreeServer(s.handle)
	s.api.FreeHost(s.host)
	s.handle, s.host = 0, 0
	s.log.Debug("server released")
}
