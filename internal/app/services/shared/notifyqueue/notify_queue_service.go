package notifyqueue

import (
	"context"
	"sync"

	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	notifyQueueInstance contracts.NotificationPublisher
	onceNotifyQueue     sync.Once
)

type notifyQueueService struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	mu        sync.Mutex
}

// NewNotifyQueueService opens a channel and declares the durable
// notification queue. The mailer worker on the other side consumes it.
func NewNotifyQueueService(conn *amqp.Connection, log *zap.Logger, queueName string) (contracts.NotificationPublisher, error) {
	var initErr error
	onceNotifyQueue.Do(func() {
		ch, err := conn.Channel()
		if err != nil {
			initErr = err
			return
		}

		_, err = ch.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			nil,       // args
		)
		if err != nil {
			initErr = err
			return
		}

		notifyQueueInstance = &notifyQueueService{
			ch:        ch,
			log:       log,
			queueName: queueName,
		}
	})
	return notifyQueueInstance, initErr
}

func (s *notifyQueueService) PublishNotification(ctx context.Context, message *contracts.NotificationMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("notifyQueueService.PublishNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, s.queueName),
	)

	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	s.log.Info("notifyQueueService.PublishNotification succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, s.queueName),
	)
	return nil
}
