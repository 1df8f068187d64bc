package rabbit

import (
	"fmt"
	"sync"

	"github.com/s4mli/farola/cleaner"
	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
	"github.com/streadway/amqp"
	"golang.org/x/net/context"
)

// rabbit publishes each message to a topic exchange; routing key is
// identity.level so consumers can bind as narrowly as they like.
type rabbit struct {
	uri      string
	exchange string

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func (r *rabbit) Composite() bool { return false }
func (r *rabbit) Name() string    { return fmt.Sprintf("⚡(%s)", r.exchange) }
func (r *rabbit) Stop()           { r.Close() }

func (r *rabbit) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connect()
}

// connect is called with mu held.
func (r *rabbit) connect() error {
	if r.ctx.Err() != nil {
		return &model.ConnectError{Backend: "rabbit", Err: model.ErrClosed}
	}
	if r.conn != nil && !r.conn.IsClosed() {
		return nil
	}
	conn, err := amqp.Dial(r.uri)
	if err != nil {
		return &model.ConnectError{Backend: "rabbit", Err: err}
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return &model.ConnectError{Backend: "rabbit", Err: err}
	}
	if err := ch.ExchangeDeclare(r.exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return &model.ConnectError{Backend: "rabbit", Err: err}
	}
	r.conn, r.ch = conn, ch
	r.monitor(conn)
	return nil
}

// monitor re-establishes a dropped connection until the backend is closed.
func (r *rabbit) monitor(conn *amqp.Connection) {
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		select {
		case <-r.ctx.Done():
		case err := <-closed:
			if err == nil {
				return
			}
			r.mu.Lock()
			r.conn, r.ch = nil, nil
			r.connect()
			r.mu.Unlock()
		}
	}()
}

func (r *rabbit) Write(m model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx.Err() != nil {
		return &model.WriteError{Backend: "rabbit", Err: model.ErrClosed}
	}
	if err := r.connect(); err != nil {
		return &model.WriteError{Backend: "rabbit", Err: err}
	}
	name, err := m.Priority.Name()
	if err != nil {
		return &model.WriteError{Backend: "rabbit", Err: err}
	}
	if err := r.ch.Publish(r.exchange, m.Identity+"."+name, false, false,
		amqp.Publishing{
			ContentType: "text/plain",
			Timestamp:   m.At,
			Body:        []byte(m.Text),
		}); err != nil {
		return &model.WriteError{Backend: "rabbit", Err: err}
	}
	return nil
}

func (r *rabbit) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancel()
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn, r.ch = nil, nil
	return err
}

func New(target, identity string, config map[string]string) (model.Backend, error) {
	exchange := config["exchange"]
	if exchange == "" {
		exchange = "logs"
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &rabbit{
		uri:      fmt.Sprintf("amqp://%s:%s@%s/", config["user"], config["password"], target),
		exchange: exchange,
		ctx:      ctx,
		cancel:   cancel,
	}
	cleaner.Register(r)
	return r, nil
}

func init() { dispatch.RegisterBackend("rabbit", New) }
