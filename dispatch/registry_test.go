package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/s4mli/farola/backend/composite"
	"github.com/s4mli/farola/model"
	"github.com/stretchr/testify/assert"
)

// consoleFactory stands in for a real backend package, recording what it
// builds so construction counts can be asserted.
type consoleFactory struct {
	mu    sync.Mutex
	built []*fakeBackend
}

func (cf *consoleFactory) construct(target, identity string, config map[string]string) (model.Backend, error) {
	fb := &fakeBackend{}
	cf.mu.Lock()
	defer cf.mu.Unlock()
	cf.built = append(cf.built, fb)
	return fb, nil
}

func (cf *consoleFactory) count() int {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	return len(cf.built)
}

func (cf *consoleFactory) last() *fakeBackend {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	return cf.built[len(cf.built)-1]
}

var console = &consoleFactory{}

func init() { RegisterBackend("console", console.construct) }

func TestCreateUnknownBackend(t *testing.T) {
	r := NewRegistry(testLogger())
	_, err := r.Create("nosuch", "", "app1", nil)
	var unknown *model.UnknownBackendError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nosuch", unknown.Kind)

	_, err = r.GetOrCreate("nosuch", "", "app1", nil)
	assert.True(t, errors.As(err, &unknown))
}

func TestCreateAlwaysFresh(t *testing.T) {
	r := NewRegistry(testLogger())
	a, err := r.Create("console", "", "fresh", nil)
	assert.Nil(t, err)
	b, err := r.Create("console", "", "fresh", nil)
	assert.Nil(t, err)
	assert.False(t, a == b)
}

func TestGetOrCreateMemoizes(t *testing.T) {
	r := NewRegistry(testLogger())
	config := map[string]string{"stream": "stderr"}
	a, err := r.GetOrCreate("console", "", "memo", config)
	assert.Nil(t, err)
	b, err := r.GetOrCreate("console", "", "memo", config)
	assert.Nil(t, err)
	assert.True(t, a == b)

	c, err := r.GetOrCreate("console", "", "memo-other", config)
	assert.Nil(t, err)
	assert.False(t, a == c)

	d, err := r.GetOrCreate("console", "", "memo", map[string]string{"stream": "stdout"})
	assert.Nil(t, err)
	assert.False(t, a == d)
}

func TestSignatureDeterministic(t *testing.T) {
	one := Signature("console", "t", "app1", map[string]string{"a": "1", "b": "2", "c": "3"})
	two := Signature("console", "t", "app1", map[string]string{"c": "3", "a": "1", "b": "2"})
	assert.Equal(t, one, two)
	assert.NotEqual(t, one, Signature("console", "t", "app1", map[string]string{"a": "1", "b": "2"}))
	assert.NotEqual(t, one, Signature("console", "t", "app2", map[string]string{"a": "1", "b": "2", "c": "3"}))
	assert.NotEqual(t, one, Signature("file", "t", "app1", map[string]string{"a": "1", "b": "2", "c": "3"}))
}

func TestGetOrCreateConcurrent(t *testing.T) {
	r := NewRegistry(testLogger())
	before := console.count()

	var wg sync.WaitGroup
	dispatchers := make([]*Dispatcher, 16)
	for i := 0; i < len(dispatchers); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := r.GetOrCreate("console", "", "concurrent", nil)
			assert.Nil(t, err)
			dispatchers[i] = d
		}(i)
	}
	wg.Wait()

	for _, d := range dispatchers {
		assert.True(t, d == dispatchers[0])
	}
	assert.Equal(t, before+1, console.count())
	assert.Equal(t, int32(1), atomic.LoadInt32(&console.last().opens))
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry(testLogger())
	a, err := r.GetOrCreate("console", "", "closing", nil)
	assert.Nil(t, err)
	backend := console.last()

	r.Close()
	assert.True(t, backend.closed)
	assert.ErrorIs(t, a.Log("hello", model.INFO), model.ErrClosed)

	b, err := r.GetOrCreate("console", "", "closing", nil)
	assert.Nil(t, err)
	assert.False(t, a == b)
}

func TestCompositeDispatcher(t *testing.T) {
	one, two := &fakeBackend{}, &fakeBackend{}
	d, err := NewDispatcher("multi", composite.New(one, two), testLogger())
	assert.Nil(t, err)
	assert.True(t, d.Composite())
	assert.Nil(t, d.Log("hello", model.INFO))
	assert.Equal(t, 1, one.writeCount())
	assert.Equal(t, 1, two.writeCount())
}

func TestEndToEnd(t *testing.T) {
	r := NewRegistry(testLogger())
	d, err := r.GetOrCreate("console", "", "app1", map[string]string{})
	assert.Nil(t, err)

	o := &fakeObserver{threshold: model.DEBUG}
	_, err = d.Attach(o)
	assert.Nil(t, err)

	assert.Nil(t, d.Log("hello", model.INFO))
	assert.Equal(t, 1, o.count())
	m := o.received[0]
	assert.Equal(t, "hello", m.Text)
	assert.Equal(t, model.INFO, m.Priority)
	assert.Equal(t, "app1", m.Identity)
}
