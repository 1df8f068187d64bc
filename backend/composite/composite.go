package composite

import (
	"github.com/s4mli/farola/model"
)

// composite fans one Write out to the child backends it owns. Children are
// fixed at construction and are not expressible in the string config map, so
// this backend has no kind in the registry table; bind it to a Dispatcher
// through dispatch.NewDispatcher.
type composite struct {
	children []model.Backend
}

func New(children ...model.Backend) model.Backend {
	return &composite{children: children}
}

func (c *composite) Composite() bool { return true }

func (c *composite) Open() error {
	for _, child := range c.children {
		if err := child.Open(); err != nil {
			return err
		}
	}
	return nil
}

// Write delivers to every child; a failing child does not stop the rest, the
// first failure is reported.
func (c *composite) Write(m model.Message) error {
	var first error
	for _, child := range c.children {
		if err := child.Write(m); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *composite) Close() error {
	var first error
	for _, child := range c.children {
		if err := child.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
