package logrus

import (
	"os"
	"sync"

	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
	sirupsen "github.com/sirupsen/logrus"
)

// adapter forwards messages into a logrus logger. The façade scale is wider
// than the logrus one, so everything above error severity still lands on
// ErrorLevel and the canonical name travels as a field.
type adapter struct {
	mu  sync.Mutex
	log *sirupsen.Logger
}

// Severity maps a façade level onto the logrus scale.
func Severity(l model.Level) sirupsen.Level {
	switch l {
	case model.EMERGENCY, model.ALERT, model.CRITICAL, model.ERROR:
		return sirupsen.ErrorLevel
	case model.WARNING:
		return sirupsen.WarnLevel
	case model.NOTICE, model.INFO:
		return sirupsen.InfoLevel
	default:
		return sirupsen.DebugLevel
	}
}

func (a *adapter) Composite() bool { return false }

func (a *adapter) Open() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.log != nil {
		return nil
	}
	log := sirupsen.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(sirupsen.DebugLevel)
	a.log = log
	return nil
}

func (a *adapter) Write(m model.Message) error {
	a.mu.Lock()
	sink := a.log
	a.mu.Unlock()
	if sink == nil {
		return &model.WriteError{Backend: "logrus", Err: model.ErrClosed}
	}
	name, err := m.Priority.Name()
	if err != nil {
		return &model.WriteError{Backend: "logrus", Err: err}
	}
	sink.WithField("#", m.Identity).WithField("priority", name).
		WithTime(m.At).Log(Severity(m.Priority), m.Text)
	return nil
}

func (a *adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.log = nil
	return nil
}

func New(target, identity string, config map[string]string) (model.Backend, error) {
	return &adapter{}, nil
}

func init() { dispatch.RegisterBackend("logrus", New) }
