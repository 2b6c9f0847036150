package opcda

import (
	"fmt"
	"sync"
	"time"

	"github.com/opcda-io/opcda-go/internal/bindings"
	"github.com/opcda-io/opcda-go/pkg/opcda/logging"
)

// Group is a named collection of items sharing an activation flag, an
// update rate, and a deadband. It owns its group handle and at most one
// observer registration; the native library cascades the handle release to
// any items still alive inside the group.
type Group struct {
	api        bindings.API
	log        logging.Logger
	handle     bindings.Handle
	name       string
	updateRate time.Duration

	mu  sync.Mutex
	sub uintptr // registry key of the live observer container, 0 when none
}

// Name returns the group's name as requested at creation.
func (g *Group) Name() string { return g.name }

// UpdateRate reports the update interval the backend actually granted,
// which may differ from the requested one.
func (g *Group) UpdateRate() time.Duration { return g.updateRate }

// AddItem attaches the item at the given namespace path to the group.
func (g *Group) AddItem(path string) (*Item, error) {
	if g == nil || g.handle == 0 {
		return nil, fmt.Errorf("%w: group is closed", ErrItemNotFound)
	}
	code, h := g.api.AddItem(g.handle, path)
	if code != bindings.Success || h == 0 {
		return nil, fmt.Errorf("%w: %q (code %d)", ErrItemNotFound, path, code)
	}
	return &Item{api: g.api, handle: h, path: path}, nil
}

// Refresh forces re-evaluation of every item in the group, provoking
// notifications for a subscribed observer.
func (g *Group) Refresh() error {
	if g == nil || g.handle == 0 {
		return fmt.Errorf("%w: group is closed", ErrOperationFailed)
	}
	if code := g.api.GroupRefresh(g.handle); code != bindings.Success {
		return fmt.Errorf("%w: refreshing group %q (code %d)", ErrOperationFailed, g.name, code)
	}
	return nil
}

// Close releases the group handle and drops any live observer registration.
// Close is idempotent and never fails observably.
func (g *Group) Close() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.handle == 0 {
		return
	}
	g.api.FreeGroup(g.handle)
	g.handle = 0
	if g.sub != 0 {
		bindings.Unregister(g.sub)
		g.sub = 0
	}
	g.log.Debug("group released")
}
