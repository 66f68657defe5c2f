package service

import (
	"context"
	"errors"
	"time"

	"llamadesk-be/internal/constant"
	"llamadesk-be/internal/dto"
	"llamadesk-be/internal/entity"
	"llamadesk-be/internal/pkg/apperror"
	"llamadesk-be/internal/pkg/logger"
	"llamadesk-be/internal/repository/specification"
	"llamadesk-be/internal/repository/unitofwork"
	"llamadesk-be/pkg/database"
	"llamadesk-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.ChatResponse, error)
	Status(ctx context.Context) *dto.StatusResponse
}

// chatService assembles a session's history into the context handed to the
// inference engine and persists both sides of the exchange.
type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     llm.Engine
	log        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	engine llm.Engine,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		engine:     engine,
		log:        log,
	}
}

// SendChat persists the user message first, in its own transaction, so a
// failed generation never loses input. The full ordered history (no
// truncation window; context-length limits stay the runtime's concern) is
// stripped to role/content pairs and submitted; the single reply is
// persisted as the assistant message and returned. Inference failures come
// back as a sentinel reply envelope, never as an HTTP error.
func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.ChatResponse, error) {
	role := req.Role
	if role == "" {
		role = constant.ChatMessageRoleUser
	}
	if !constant.IsValidRole(role) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid role: "+role)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session", req.SessionId.String())
	}

	userMsg := entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Role:      role,
		Content:   req.Content,
		Timestamp: time.Now(),
	}
	if err := s.appendMessage(ctx, &userMsg); err != nil {
		return nil, err
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: req.SessionId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	promptContext := make([]llm.Message, len(history))
	for i, m := range history {
		promptContext[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	reply, err := s.engine.Chat(ctx, promptContext)
	if err != nil {
		return s.sentinelResponse(req.SessionId, err), nil
	}

	assistantMsg := entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Role:      constant.ChatMessageRoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}
	if err := s.appendMessage(ctx, &assistantMsg); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Role:    assistantMsg.Role,
		Content: assistantMsg.Content,
	}, nil
}

// appendMessage commits a single message in its own transaction. The
// sessions foreign key is the only existence check here: a session deleted
// between lookup and insert surfaces as a ConstraintViolation.
func (s *chatService) appendMessage(ctx context.Context, msg *entity.ChatMessage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperror.NewConstraintViolation("session " + msg.SessionId.String() + " no longer exists")
		}
		return err
	}

	return uow.Commit()
}

// sentinelResponse turns an inference failure into in-band reply content.
// The user message stays persisted; no assistant message is written.
func (s *chatService) sentinelResponse(sessionId uuid.UUID, err error) *dto.ChatResponse {
	content := constant.SentinelGenerationError

	var loadErr *llm.LoadError
	if errors.As(err, &loadErr) {
		content = constant.SentinelModelNotLoaded
	}

	s.log.Warn("chat", "inference failed, returning sentinel reply", map[string]interface{}{
		"session_id": sessionId.String(),
		"error":      err.Error(),
	})

	return &dto.ChatResponse{
		Role:    constant.ChatMessageRoleAssistant,
		Content: content,
	}
}

// Status reports the configured device only once the runtime has actually
// come up; before that the backend has no evidence the device exists.
func (s *chatService) Status(ctx context.Context) *dto.StatusResponse {
	loaded := s.engine.IsLoaded()

	device := ""
	if loaded {
		device = s.engine.Device()
	}

	return &dto.StatusResponse{
		Status:      "running",
		ModelLoaded: loaded,
		Device:      device,
	}
}
