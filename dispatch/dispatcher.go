package dispatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/s4mli/farola/model"
	"github.com/sirupsen/logrus"
)

// Handle identifies one observer registration; unique within the owning
// Dispatcher's lifetime.
type Handle uint64

type registration struct {
	handle   Handle
	observer model.Observer
	minLevel model.Level
}

// Dispatcher logs messages for one identity against one Backend and fans each
// message out to attached observers whose threshold is satisfied.
type Dispatcher struct {
	identity string
	backend  model.Backend
	logger   logrus.FieldLogger

	mu         sync.Mutex
	closed     bool
	lastHandle Handle
	observers  []registration // insertion order
}

func newDispatcher(identity string, b model.Backend, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		identity: identity,
		backend:  b,
		logger:   logger.WithField("#", identity),
	}
}

// NewDispatcher binds an already-built backend, opening it first. Composite
// backends reach a Dispatcher this way; the kind table cannot express them.
func NewDispatcher(identity string, b model.Backend, logger logrus.FieldLogger) (*Dispatcher, error) {
	if err := b.Open(); err != nil {
		return nil, err
	}
	return newDispatcher(identity, b, logger), nil
}

func (d *Dispatcher) Identity() string { return d.identity }

// Composite reports whether the bound backend aggregates child backends.
func (d *Dispatcher) Composite() bool { return d.backend.Composite() }

// Log writes one message at the given priority and notifies observers whether
// or not the backend write succeeded; the write error is returned unchanged.
// A Log racing Close either completes against the still-open backend or fails
// with ErrClosed.
func (d *Dispatcher) Log(text string, priority model.Level) error {
	if !priority.Valid() {
		return fmt.Errorf("%w ( %d )", model.ErrInvalidLevel, int(priority))
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return model.ErrClosed
	}
	snapshot := make([]registration, len(d.observers))
	copy(snapshot, d.observers)
	d.mu.Unlock()

	msg := model.Message{
		Text:     text,
		Priority: priority,
		Identity: d.identity,
		At:       time.Now(),
	}
	err := d.backend.Write(msg)
	d.notifyAll(snapshot, msg)
	return err
}

// Attach registers an observer at its declared threshold and returns a handle
// for Detach.
func (d *Dispatcher) Attach(o model.Observer) (Handle, error) {
	if o == nil {
		return 0, model.ErrInvalidObserver
	}
	min := o.Threshold()
	if !min.Valid() {
		return 0, fmt.Errorf("%w ( %d )", model.ErrInvalidLevel, int(min))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastHandle++
	d.observers = append(d.observers, registration{d.lastHandle, o, min})
	return d.lastHandle, nil
}

// Detach removes a registration; unknown or stale handles are a no-op.
func (d *Dispatcher) Detach(h Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, reg := range d.observers {
		if reg.handle == h {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) notifyAll(snapshot []registration, msg model.Message) {
	for _, reg := range snapshot {
		if msg.Priority > reg.minLevel {
			continue
		}
		d.notify(reg, msg)
	}
}

// notify isolates one observer: a panicking Notify must not block delivery to
// the remaining observers nor fail the Log call.
func (d *Dispatcher) notify(reg registration, msg model.Message) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorf("observer ( %d ) notify failed ( %+v )", reg.handle, r)
		}
	}()
	reg.observer.Notify(msg)
}

// Close shuts the backend and drops every registration. Safe to call
// repeatedly and concurrently with Log.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.observers = nil
	d.mu.Unlock()
	return d.backend.Close()
}
