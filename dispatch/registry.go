package dispatch

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/s4mli/farola/cleaner"
	"github.com/s4mli/farola/model"
	"github.com/sirupsen/logrus"
)

var (
	constructorsMu sync.RWMutex
	constructors   = make(map[string]model.Constructor)
)

// RegisterBackend registers a backend constructor under a lowercase kind.
// Backend packages call it from init(); pick a backend by blank import.
func RegisterBackend(kind string, c model.Constructor) {
	constructorsMu.Lock()
	defer constructorsMu.Unlock()
	if _, exists := constructors[kind]; exists {
		panic(fmt.Sprintf("backend ( %s ) already registered", kind))
	}
	constructors[kind] = c
}

func constructor(kind string) (model.Constructor, bool) {
	constructorsMu.RLock()
	defer constructorsMu.RUnlock()
	c, ok := constructors[kind]
	return c, ok
}

// Signature derives the cache identity of one logical backend configuration,
// a pure function of its inputs so identical configurations collapse to one
// Dispatcher across independent call sites.
func Signature(kind, target, identity string, config map[string]string) string {
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+config[k])
	}
	return strings.Join([]string{kind, target, identity, strings.Join(pairs, ",")}, "|")
}

// Registry builds Dispatchers and memoizes shared instances by Signature.
// Cache lifetime is the Registry's own; it registers with the cleaner so a
// shutdown closes whatever it still holds.
type Registry struct {
	logger logrus.FieldLogger
	mu     sync.Mutex
	cache  map[string]*Dispatcher
}

func (r *Registry) Name() string { return "registry" }
func (r *Registry) Stop()        { r.Close() }

func NewRegistry(logger logrus.FieldLogger) *Registry {
	r := &Registry{
		logger: logger,
		cache:  make(map[string]*Dispatcher),
	}
	cleaner.Register(r)
	return r
}

// Create always builds a fresh Dispatcher, opening its backend.
func (r *Registry) Create(kind, target, identity string, config map[string]string) (*Dispatcher, error) {
	build, ok := constructor(kind)
	if !ok {
		return nil, &model.UnknownBackendError{Kind: kind}
	}
	b, err := build(target, identity, config)
	if err != nil {
		return nil, err
	}
	if err := b.Open(); err != nil {
		return nil, err
	}
	return newDispatcher(identity, b, r.logger), nil
}

// GetOrCreate memoizes Dispatchers by Signature. The cache lock is held
// across first-time construction so concurrent callers with the same
// signature get exactly one Dispatcher and one backend Open.
func (r *Registry) GetOrCreate(kind, target, identity string, config map[string]string) (*Dispatcher, error) {
	sig := Signature(kind, target, identity, config)
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.cache[sig]; ok {
		return d, nil
	}
	d, err := r.Create(kind, target, identity, config)
	if err != nil {
		return nil, err
	}
	r.cache[sig] = d
	return d, nil
}

// Close shuts down every cached Dispatcher and clears the cache.
func (r *Registry) Close() {
	r.mu.Lock()
	cached := make([]*Dispatcher, 0, len(r.cache))
	for _, d := range r.cache {
		cached = append(cached, d)
	}
	r.cache = make(map[string]*Dispatcher)
	r.mu.Unlock()
	for _, d := range cached {
		if err := d.Close(); err != nil {
			r.logger.Errorf("close ( %s ) failed ( %s )", d.Identity(), err.Error())
		}
	}
}
