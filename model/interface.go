package model

// Backend is the uniform write contract every concrete sink implements.
type Backend interface {
	// Open establishes the underlying channel; opening an open backend is a
	// no-op success.
	Open() error
	Write(Message) error
	// Close releases underlying resources; safe to call repeatedly.
	Close() error
	// Composite reports whether this backend aggregates child backends.
	Composite() bool
}

// Observer is notified of every message at least as severe as its threshold.
type Observer interface {
	Notify(Message)
	Threshold() Level
}

// Constructor builds a Backend for one (target, identity, config) tuple.
type Constructor func(target, identity string, config map[string]string) (Backend, error)
