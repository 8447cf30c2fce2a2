package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// newOutboxEvent собирает событие outbox. Полезная нагрузка кодируется
// как google.protobuf.Struct.
func newOutboxEvent(eventType OutboxEventType, aggregateID int64, fields map[string]any) (*OutboxEvent, error) {
	now := time.Now().UTC()
	fields["event_type"] = string(eventType)
	fields["occurred_at"] = now.Format(time.RFC3339Nano)

	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	data, err := proto.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     data,
		Status:      Pending,
		CreatedAt:   now,
	}, nil
}

// DecodeEventPayload разбирает полезную нагрузку события обратно в map.
func DecodeEventPayload(data []byte) (map[string]any, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload.AsMap(), nil
}

// appendEvent записывает событие в outbox в рамках текущей транзакции ctx.
func appendEvent(ctx context.Context, repo OutboxRepository, eventType OutboxEventType, aggregateID int64, fields map[string]any) error {
	event, err := newOutboxEvent(eventType, aggregateID, fields)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, event)
	return err
}
