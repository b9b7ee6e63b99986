package services

import (
	"context"
	"encoding/json"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/internal/infrastructure/buffer"
	"github.com/qreport/backend/usecase"
)

// BufferBridge adapts the buffer processor to the use case port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferContact(ctx context.Context, operation string, contact *domain.Contact) error {
	if b.processor == nil || contact == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(contact)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        contact.ID,
		ClientID:  contact.ClientID,
		Entity:    buffer.EntityContact,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferIntervention(ctx context.Context, operation string, intervention *domain.TechnicalIntervention) error {
	if b.processor == nil || intervention == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(intervention)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        intervention.ID,
		ClientID:  intervention.CustomerData.ClientID,
		Entity:    buffer.EntityIntervention,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
