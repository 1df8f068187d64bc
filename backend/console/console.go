package console

import (
	"log"
	"os"
	"sync"

	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
)

type console struct {
	stream string
	mu     sync.Mutex
	log    *log.Logger
}

func (c *console) Composite() bool { return false }

func (c *console) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.log != nil {
		return nil
	}
	out := os.Stdout
	if c.stream == "stderr" {
		out = os.Stderr
	}
	c.log = log.New(out, "", log.LstdFlags)
	return nil
}

func (c *console) Write(m model.Message) error {
	c.mu.Lock()
	sink := c.log
	c.mu.Unlock()
	if sink == nil {
		return &model.WriteError{Backend: "console", Err: model.ErrClosed}
	}
	name, err := m.Priority.Name()
	if err != nil {
		return &model.WriteError{Backend: "console", Err: err}
	}
	sink.Println(name + " " + m.Identity + ": " + m.Text)
	return nil
}

func (c *console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = nil
	return nil
}

func New(target, identity string, config map[string]string) (model.Backend, error) {
	return &console{stream: config["stream"]}, nil
}

func init() { dispatch.RegisterBackend("console", New) }
