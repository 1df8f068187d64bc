package file

import (
	"os"
	"sync"

	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
)

type file struct {
	path string
	mu   sync.Mutex
	f    *os.File
}

func (b *file) Composite() bool { return false }

func (b *file) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.f != nil {
		return nil
	}
	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &model.ConnectError{Backend: "file", Err: err}
	}
	b.f = f
	return nil
}

func (b *file) Write(m model.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.f == nil {
		return &model.WriteError{Backend: "file", Err: model.ErrClosed}
	}
	name, err := m.Priority.Name()
	if err != nil {
		return &model.WriteError{Backend: "file", Err: err}
	}
	line := m.At.Format("2006/01/02 15:04:05") + " " + name + " " + m.Identity + ": " + m.Text + "\n"
	if _, err := b.f.WriteString(line); err != nil {
		return &model.WriteError{Backend: "file", Err: err}
	}
	return nil
}

func (b *file) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.f == nil {
		return nil
	}
	err := b.f.Close()
	b.f = nil
	return err
}

func New(target, identity string, config map[string]string) (model.Backend, error) {
	return &file{path: target}, nil
}

func init() { dispatch.RegisterBackend("file", New) }
