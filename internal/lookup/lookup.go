// Package lookup debounces phone-triggered client lookups. Keystrokes within
// the debounce window collapse into one request, and responses carry a
// monotonic sequence id so a stale response can never overwrite fields
// populated by a newer one.
package lookup

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/protektor-crm/orderdesk/internal/api"
)

// DefaultDelay mirrors the form's 400ms input debounce.
const DefaultDelay = 400 * time.Millisecond

// Func performs the actual lookup. A (nil, nil) result means not-found,
// which is a normal, silent outcome.
type Func func(ctx context.Context, phone string) (*api.ClientRecord, error)

// Apply receives the record of the winning (highest-sequence) response.
type Apply func(rec *api.ClientRecord)

// Debouncer issues at most one lookup per quiet period and applies only the
// most recent response.
type Debouncer struct {
	delay  time.Duration
	lookup Func
	apply  Apply

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
	applied uint64
}

// New creates a Debouncer. A non-positive delay falls back to DefaultDelay.
func New(delay time.Duration, lookup Func, apply Apply) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, lookup: lookup, apply: apply}
}

// Input registers a keystroke. The pending lookup is rescheduled so only the
// last value within the window is issued; a blank value cancels it.
func (d *Debouncer) Input(ctx context.Context, phone string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	phone = strings.TrimSpace(phone)
	d.pending = phone
	if phone == "" {
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(ctx)
	})
}

// Flush issues any pending lookup immediately and synchronously. Used when
// the operator leaves the field, and by tests.
func (d *Debouncer) Flush(ctx context.Context) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire(ctx)
}

// Stop cancels any pending lookup.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = ""
}

func (d *Debouncer) fire(ctx context.Context) {
	d.mu.Lock()
	phone := d.pending
	if phone == "" {
		d.mu.Unlock()
		return
	}
	d.pending = ""
	d.seq++
	id := d.seq
	d.mu.Unlock()

	d.resolve(ctx, phone, id)
}

// resolve runs the lookup and applies the result unless a newer request was
// issued in the meantime. Transport failures and not-found resolve silently.
func (d *Debouncer) resolve(ctx context.Context, phone string, id uint64) {
	rec, err := d.lookup(ctx, phone)
	if err != nil || rec == nil {
		return
	}

	d.mu.Lock()
	if id != d.seq || id <= d.applied {
		d.mu.Unlock()
		return
	}
	d.applied = id
	d.mu.Unlock()

	d.apply(rec)
}
