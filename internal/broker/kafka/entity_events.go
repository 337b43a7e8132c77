package kafka

import (
	"context"
	"encoding/json"

	"github.com/BearBump/CargoBox/internal/broker/messages"
	"github.com/pkg/errors"
)

type publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// EntityEvents пишет EntityChanged в топик, ключ сообщения — вид сущности
// (все изменения одного вида попадают в одну партицию).
type EntityEvents struct {
	p     publisher
	topic string
}

func NewEntityEvents(p publisher, topic string) *EntityEvents {
	if topic == "" {
		topic = messages.TopicEntityChanged
	}
	return &EntityEvents{p: p, topic: topic}
}

func (e *EntityEvents) PublishEntityChanged(ctx context.Context, msg messages.EntityChanged) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal entity changed")
	}
	return e.p.Publish(ctx, e.topic, []byte(msg.Kind), b)
}
