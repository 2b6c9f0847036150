package opcda

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/opcda-io/opcda-go/internal/bindings"
)

// DataObserver receives asynchronous data-change notifications. The backend
// invokes observers from threads it owns, concurrently with caller-thread
// execution, so implementations must be safe for concurrent use and any
// mutable state must be internally synchronized.
type DataObserver interface {
	OnDataChange(groupName, itemName string, value Value, quality Quality, timestamp time.Time)
}

// observerContainer is the only object the opaque user-data pointer ever
// refers to. It satisfies the bindings-side handler contract and carries the
// unsafe half of the notification bridge: raw value pointers stop here.
type observerContainer struct {
	api bindings.API
	obs DataObserver
}

// HandleDataChange decodes one native notification and forwards it to the
// observer. Callback-supplied string buffers are callee-owned, so they are
// released after copying. A malformed value degrades to a zero Int32 so one
// bad notification never stops the stream.
func (oc *observerContainer) HandleDataChange(groupName, itemName string, value unsafe.Pointer, quality int32, valueType uint16, timestampMS uint64) {
	v, err := decodeValue(value, Type(valueType), oc.api)
	if err != nil {
		v = Int32Value(0)
	}
	oc.obs.OnDataChange(groupName, itemName, v, QualityFromRaw(quality), time.UnixMilli(int64(timestampMS)))
}

// Subscribe registers obs for data-change notifications on the group. At
// most one observer can be live per group, and the subscription persists
// until the group is closed; there is no cancellation primitive, matching
// the native contract. If registration fails the observer container is torn
// down before the error returns.
func (g *Group) Subscribe(obs DataObserver) error {
	if obs == nil {
		return fmt.Errorf("%w: nil observer", ErrInvalidParameters)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.handle == 0 {
		return fmt.Errorf("%w: group is closed", ErrSubscriptionFailed)
	}
	if g.sub != 0 {
		return fmt.Errorf("%w: group %q already has an observer", ErrSubscriptionFailed, g.name)
	}
	key := bindings.Register(&observerContainer{api: g.api, obs: obs})
	if code := g.api.EnableAsync(g.handle, key); code != bindings.Success {
		bindings.Unregister(key)
		return fmt.Errorf("%w: group %q (code %d)", ErrSubscriptionFailed, g.name, code)
	}
	g.sub = key
	g.log.Debug("async subscription enabled")
	return nil
}
