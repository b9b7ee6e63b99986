package usecase

import (
	"context"

	"github.com/qreport/backend/domain"
)

// Buffered operation kinds.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write-behind buffer so use cases
// stay storage-agnostic. Failed writes are parked there and replayed when
// the primary store is reachable again.
type OperationBuffer interface {
	BufferContact(ctx context.Context, operation string, contact *domain.Contact) error
	BufferIntervention(ctx context.Context, operation string, intervention *domain.TechnicalIntervention) error
}
