package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/s4mli/farola/model"
	"github.com/stretchr/testify/assert"
)

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	b, err := New(path, "app1", nil)
	assert.Nil(t, err)
	assert.False(t, b.Composite())

	assert.Nil(t, b.Open())
	assert.Nil(t, b.Open())

	msg := model.Message{Text: "hello", Priority: model.INFO, Identity: "app1", At: time.Now()}
	assert.Nil(t, b.Write(msg))

	assert.Nil(t, b.Close())
	assert.Nil(t, b.Close())

	raw, err := os.ReadFile(path)
	assert.Nil(t, err)
	assert.Contains(t, string(raw), "info app1: hello")
}

func TestFileWriteBeforeOpen(t *testing.T) {
	b, err := New(filepath.Join(t.TempDir(), "app.log"), "app1", nil)
	assert.Nil(t, err)
	werr := b.Write(model.Message{Text: "x", Priority: model.INFO})
	var write *model.WriteError
	assert.True(t, errors.As(werr, &write))
	assert.ErrorIs(t, werr, model.ErrClosed)
}

func TestFileOpenUnwritablePath(t *testing.T) {
	b, err := New(filepath.Join(t.TempDir(), "missing", "app.log"), "app1", nil)
	assert.Nil(t, err)
	oerr := b.Open()
	var connect *model.ConnectError
	assert.True(t, errors.As(oerr, &connect))
}
