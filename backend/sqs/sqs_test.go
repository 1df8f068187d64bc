package sqs

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/s4mli/farola/model"
	"github.com/stretchr/testify/assert"
)

func TestSqsMissingRegion(t *testing.T) {
	_, err := New("http://127.0.0.1:1/q", "app1", nil)
	assert.NotNil(t, err)
	_, err = New("http://127.0.0.1:1/q", "app1", map[string]string{"region": ""})
	assert.NotNil(t, err)
}

func TestSqsWriteBeforeOpen(t *testing.T) {
	b, err := New("http://127.0.0.1:1/q", "app1", map[string]string{"region": "nowhere"})
	assert.Nil(t, err)
	werr := b.Write(model.Message{Text: "x", Priority: model.INFO})
	var write *model.WriteError
	assert.True(t, errors.As(werr, &write))
	assert.ErrorIs(t, werr, model.ErrClosed)
}

// an unroutable endpoint so SendMessage fails locally and fast
func unreachableQueue(t *testing.T) *queue {
	config := &aws.Config{
		Region:      aws.String("nowhere"),
		Endpoint:    aws.String("http://127.0.0.1:1"),
		Credentials: credentials.NewStaticCredentials("k", "s", ""),
		MaxRetries:  aws.Int(0),
		LogLevel:    aws.LogLevel(aws.LogOff),
	}
	s, err := session.NewSession(config)
	assert.Nil(t, err)
	return &queue{url: "http://127.0.0.1:1/q", region: "nowhere", service: sqs.New(s, config)}
}

func TestSqsWriteRacingClose(t *testing.T) {
	q := unreachableQueue(t)
	msg := model.Message{Text: "hello", Priority: model.INFO, Identity: "app1", At: time.Now()}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			err := q.Write(msg)
			var write *model.WriteError
			assert.True(t, errors.As(err, &write))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			assert.Nil(t, q.Close())
		}
	}()
	wg.Wait()
	assert.ErrorIs(t, q.Write(msg), model.ErrClosed)
}
