package contract

import (
	"context"

	"llamadesk-be/internal/entity"
	"llamadesk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	// DeleteOrphaned removes messages whose session_id no longer resolves;
	// guards databases written before cascade support. Returns rows removed.
	DeleteOrphaned(ctx context.Context) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
