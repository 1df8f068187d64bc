package sqldb

import (
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/s4mli/farola/cleaner"
	"github.com/s4mli/farola/model"
)

// helper persists one table row per message; driver specifics live in the
// per-driver constructors.
type helper struct {
	kind   string
	driver string
	dsn    string
	table  string

	mu sync.Mutex
	db *sqlx.DB
}

func (h *helper) Composite() bool { return false }
func (h *helper) Name() string    { return h.kind }
func (h *helper) Stop()           { h.Close() }

func (h *helper) Open() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db != nil {
		return nil
	}
	db, err := sqlx.Connect(h.driver, h.dsn)
	if err != nil {
		return &model.ConnectError{Backend: h.kind, Err: err}
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(50)
	h.db = db
	cleaner.Register(h)
	return nil
}

func (h *helper) Write(m model.Message) error {
	h.mu.Lock()
	db := h.db
	h.mu.Unlock()
	if db == nil {
		return &model.WriteError{Backend: h.kind, Err: model.ErrClosed}
	}
	name, err := m.Priority.Name()
	if err != nil {
		return &model.WriteError{Backend: h.kind, Err: err}
	}
	query := db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (at, identity, priority, message) VALUES (?, ?, ?, ?)", h.table))
	if _, err := db.Exec(query, m.At, m.Identity, name, m.Text); err != nil {
		return &model.WriteError{Backend: h.kind, Err: err}
	}
	return nil
}

func (h *helper) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

func tableFrom(config map[string]string) string {
	if t, ok := config["table"]; ok {
		return t
	}
	return "logs"
}
