package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/BearBump/CargoBox/internal/broker/messages"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	last []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.last = append([]kafka.Message{}, msgs...)
	return w.err
}

func TestProducer_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := newProducerWithWriter(fw)

	require.NoError(t, p.Publish(context.Background(), messages.TopicEntityChanged, []byte("orders"), []byte(`{}`)))
	require.Len(t, fw.last, 1)
	require.Equal(t, messages.TopicEntityChanged, fw.last[0].Topic)
	require.Equal(t, []byte("orders"), fw.last[0].Key)
	require.Equal(t, []byte(`{}`), fw.last[0].Value)
	require.NoError(t, p.Close())
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:0"})
	require.NotNil(t, p)
	require.NoError(t, p.Close())
}

func TestEntityEvents_KeyedByKind(t *testing.T) {
	fw := &fakeWriter{}
	ev := NewEntityEvents(newProducerWithWriter(fw), "")

	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	err := ev.PublishEntityChanged(context.Background(), messages.EntityChanged{
		Kind: "orders", Op: messages.OpDeleted, IDs: []string{"1", "2"}, Mode: "local", At: at, Identity: "77",
	})
	require.NoError(t, err)
	require.Len(t, fw.last, 1)
	require.Equal(t, messages.TopicEntityChanged, fw.last[0].Topic)
	require.Equal(t, "orders", string(fw.last[0].Key))

	var got messages.EntityChanged
	require.NoError(t, json.Unmarshal(fw.last[0].Value, &got))
	require.Equal(t, []string{"1", "2"}, got.IDs)
	require.Equal(t, messages.OpDeleted, got.Op)
	require.True(t, at.Equal(got.At))
}
