package kafka

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer decouples the request path from the broker: Publish drops a
// message into a buffered inbox and a single goroutine drains it. A slow or
// down broker therefore never delays an HTTP response.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				close(p.inbox)
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.w.Close()
				close(p.closeCh)
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					close(p.closeCh)
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		log.Printf("kafka write: %v", err)
	}
}

// Publish never blocks the caller for long; when the inbox is full the
// message is dropped, since order events are advisory, not the source of truth.
func (p *Producer) Publish(key, value []byte) {
	m := kafka.Message{Key: key, Value: value, Time: time.Now()}
	select {
	case p.inbox <- m:
	default:
		log.Printf("kafka inbox full, dropping message key=%s", key)
	}
}

// Close stops intake; the drain goroutine flushes what is left.
func (p *Producer) Close() { close(p.inbox) }

// WaitClosed blocks until the drain goroutine has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
