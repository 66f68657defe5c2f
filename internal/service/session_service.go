package service

import (
	"context"
	"time"

	"llamadesk-be/internal/constant"
	"llamadesk-be/internal/dto"
	"llamadesk-be/internal/entity"
	"llamadesk-be/internal/pkg/apperror"
	"llamadesk-be/internal/repository/specification"
	"llamadesk-be/internal/repository/unitofwork"
	"llamadesk-be/pkg/database"

	"github.com/google/uuid"
)

type ISessionService interface {
	GetAll(ctx context.Context) ([]*dto.SessionResponse, error)
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Update(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Move(ctx context.Context, req *dto.MoveSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetMessages(ctx context.Context, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

// groupWriteError maps the sessions->groups foreign-key rejection to a
// ConstraintViolation; a missing target group is user-correctable, not a
// server fault.
func groupWriteError(groupId *uuid.UUID, err error) error {
	if groupId != nil && database.IsForeignKeyViolation(err) {
		return apperror.NewConstraintViolation("group " + groupId.String() + " does not exist")
	}
	return err
}

func sessionToResponse(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		GroupId:   s.GroupId,
		Order:     s.Order,
	}
}

// GetAll returns every session sorted by (group_id, order) ascending.
// SQLite places the NULL group_id bucket first; ungrouped sessions lead
// the list.
func (s *sessionService) GetAll(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "group_id"},
		specification.OrderBy{Field: "order"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, sessionToResponse(session))
	}
	return result, nil
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	title := req.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	// Rank within the target group, the NULL bucket included.
	count, err := uow.ChatSessionRepository().Count(ctx, specification.InGroup{GroupID: req.GroupId})
	if err != nil {
		return nil, err
	}

	session := entity.ChatSession{
		Id:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
		GroupId:   req.GroupId,
		Order:     int(count),
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, groupWriteError(req.GroupId, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return sessionToResponse(&session), nil
}

func (s *sessionService) Update(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session", req.Id.String())
	}

	session.Title = req.Title

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

// Move overwrites group_id and order unconditionally. Siblings are not
// renumbered; a caller that cares about strict ranking supplies consistent
// orders itself.
func (s *sessionService) Move(ctx context.Context, req *dto.MoveSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session", req.Id.String())
	}

	session.GroupId = req.GroupId
	session.Order = req.Order

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, groupWriteError(req.GroupId, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

// Delete cascades: every message of the session goes first, then the
// session row, in one transaction.
func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NewNotFound("session", id.String())
	}

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}

	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *sessionService) GetMessages(ctx context.Context, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session", sessionId.String())
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, &dto.MessageResponse{
			Id:        m.Id,
			SessionId: m.SessionId,
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return result, nil
}
