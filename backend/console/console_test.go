package console

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/s4mli/farola/model"
	"github.com/stretchr/testify/assert"
)

func TestConsoleBackend(t *testing.T) {
	c := &console{}
	assert.False(t, c.Composite())
	assert.Nil(t, c.Open())
	assert.Nil(t, c.Open())
	c.log.SetOutput(io.Discard)

	msg := model.Message{Text: "hello", Priority: model.INFO, Identity: "app1", At: time.Now()}
	assert.Nil(t, c.Write(msg))

	assert.Nil(t, c.Close())
	assert.Nil(t, c.Close())
	werr := c.Write(msg)
	var write *model.WriteError
	assert.True(t, errors.As(werr, &write))
	assert.ErrorIs(t, werr, model.ErrClosed)
}

func TestConsoleWriteRacingClose(t *testing.T) {
	c := &console{}
	assert.Nil(t, c.Open())
	c.log.SetOutput(io.Discard)

	msg := model.Message{Text: "hello", Priority: model.INFO, Identity: "app1", At: time.Now()}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if err := c.Write(msg); err != nil {
				assert.ErrorIs(t, err, model.ErrClosed)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.Nil(t, c.Close())
		}
	}()
	wg.Wait()
}
