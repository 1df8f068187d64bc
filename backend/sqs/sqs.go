package sqs

import (
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/s4mli/farola/common"
	"github.com/s4mli/farola/dispatch"
	"github.com/s4mli/farola/model"
)

type queue struct {
	url    string
	region string

	mu      sync.Mutex
	service *sqs.SQS
}

func (q *queue) Composite() bool { return false }

func (q *queue) Open() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.service != nil {
		return nil
	}
	config := &aws.Config{
		Region:   &q.region,
		LogLevel: aws.LogLevel(aws.LogOff),
	}
	var s *session.Session
	var err error
	for retry := 1; retry <= 3; retry++ {
		if s, err = session.NewSession(config); err == nil {
			break
		}
		time.Sleep(common.RandomDuration(retry))
	}
	if err != nil {
		return &model.ConnectError{Backend: "sqs", Err: err}
	}
	q.service = sqs.New(s, config)
	return nil
}

func (q *queue) Write(m model.Message) error {
	q.mu.Lock()
	service := q.service
	q.mu.Unlock()
	if service == nil {
		return &model.WriteError{Backend: "sqs", Err: model.ErrClosed}
	}
	name, err := m.Priority.Name()
	if err != nil {
		return &model.WriteError{Backend: "sqs", Err: err}
	}
	params := &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.url),
		MessageBody: aws.String(m.Text),
		MessageAttributes: map[string]*sqs.MessageAttributeValue{
			"priority": {DataType: aws.String("String"), StringValue: aws.String(name)},
			"identity": {DataType: aws.String("String"), StringValue: aws.String(m.Identity)},
		},
	}
	if _, err := service.SendMessage(params); err != nil {
		return &model.WriteError{Backend: "sqs", Err: err}
	}
	return nil
}

func (q *queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.service = nil
	return nil
}

func New(target, identity string, config map[string]string) (model.Backend, error) {
	region, ok := config["region"]
	if !ok || region == "" {
		return nil, fmt.Errorf("missing region for ( %s )", target)
	}
	return &queue{url: target, region: region}, nil
}

func init() { dispatch.RegisterBackend("sqs", New) }
