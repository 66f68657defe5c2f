package service

import (
	"context"

	"llamadesk-be/internal/constant"
	"llamadesk-be/internal/dto"
	"llamadesk-be/internal/entity"
	"llamadesk-be/internal/pkg/apperror"
	"llamadesk-be/internal/repository/specification"
	"llamadesk-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IGroupService interface {
	GetAll(ctx context.Context) ([]*dto.GroupResponse, error)
	Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	Update(ctx context.Context, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type groupService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGroupService(uowFactory unitofwork.RepositoryFactory) IGroupService {
	return &groupService{
		uowFactory: uowFactory,
	}
}

func (s *groupService) GetAll(ctx context.Context) ([]*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	groups, err := uow.GroupRepository().FindAll(ctx, specification.OrderBy{Field: "order"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, &dto.GroupResponse{
			Id:    g.Id,
			Name:  g.Name,
			Order: g.Order,
		})
	}
	return result, nil
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	name := req.Name
	if name == "" {
		name = constant.DefaultGroupName
	}

	// Rank among groups is the sibling count at creation time; it is never
	// renumbered afterwards, so gaps and duplicates are legal.
	count, err := uow.GroupRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	group := entity.Group{
		Id:    uuid.New(),
		Name:  name,
		Order: int(count),
	}

	if err := uow.GroupRepository().Create(ctx, &group); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.GroupResponse{Id: group.Id, Name: group.Name, Order: group.Order}, nil
}

func (s *groupService) Update(ctx context.Context, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	group, err := uow.GroupRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NewNotFound("group", req.Id.String())
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Order != nil {
		group.Order = *req.Order
	}

	if err := uow.GroupRepository().Update(ctx, group); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.GroupResponse{Id: group.Id, Name: group.Name, Order: group.Order}, nil
}

// Delete reassigns every child session to the uncategorized bucket, then
// removes the group, in one transaction: a crash in between must not leave
// sessions pointing at a half-deleted group. Sessions are never cascaded.
func (s *groupService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	group, err := uow.GroupRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NewNotFound("group", id.String())
	}

	if err := uow.ChatSessionRepository().ReleaseGroup(ctx, id); err != nil {
		return err
	}

	if err := uow.GroupRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
