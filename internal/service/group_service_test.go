package service

import (
	"context"
	"testing"

	"llamadesk-be/internal/dto"
	"llamadesk-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCreateAssignsSequentialOrder(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewGroupService(factory)
	ctx := context.Background()

	first, err := svc.Create(ctx, &dto.CreateGroupRequest{Name: "Work"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &dto.CreateGroupRequest{Name: "Personal"})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
}

func TestGroupCreateDefaultsName(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewGroupService(factory)

	group, err := svc.Create(context.Background(), &dto.CreateGroupRequest{})
	require.NoError(t, err)
	assert.Equal(t, "uncategorized", group.Name)
}

func TestGroupUpdatePartial(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewGroupService(factory)
	ctx := context.Background()

	group, err := svc.Create(ctx, &dto.CreateGroupRequest{Name: "Work"})
	require.NoError(t, err)

	newOrder := 7
	updated, err := svc.Update(ctx, &dto.UpdateGroupRequest{Id: group.Id, Order: &newOrder})
	require.NoError(t, err)

	assert.Equal(t, "Work", updated.Name, "name must be untouched by a partial update")
	assert.Equal(t, 7, updated.Order)
}

func TestGroupUpdateNotFound(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewGroupService(factory)

	name := "ghost"
	_, err := svc.Update(context.Background(), &dto.UpdateGroupRequest{Id: uuid.New(), Name: &name})
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGroupDeleteReassignsSessions(t *testing.T) {
	factory := newTestFactory(t)
	groups := NewGroupService(factory)
	sessions := NewSessionService(factory)
	ctx := context.Background()

	group, err := groups.Create(ctx, &dto.CreateGroupRequest{Name: "Work"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := sessions.Create(ctx, &dto.CreateSessionRequest{Title: "Notes", GroupId: &group.Id})
		require.NoError(t, err)
	}

	require.NoError(t, groups.Delete(ctx, group.Id))

	remaining, err := groups.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining, "group row must be gone")

	all, err := sessions.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, s := range all {
		assert.Nil(t, s.GroupId, "sessions must be reassigned to the uncategorized bucket, not deleted")
	}
}

func TestGroupDeleteLeavesMovedSessionsAlone(t *testing.T) {
	factory := newTestFactory(t)
	groups := NewGroupService(factory)
	sessions := NewSessionService(factory)
	ctx := context.Background()

	work, err := groups.Create(ctx, &dto.CreateGroupRequest{Name: "Work"})
	require.NoError(t, err)
	personal, err := groups.Create(ctx, &dto.CreateGroupRequest{Name: "Personal"})
	require.NoError(t, err)

	session, err := sessions.Create(ctx, &dto.CreateSessionRequest{Title: "Notes", GroupId: &work.Id})
	require.NoError(t, err)

	_, err = sessions.Move(ctx, &dto.MoveSessionRequest{Id: session.Id, GroupId: &personal.Id, Order: 0})
	require.NoError(t, err)

	require.NoError(t, groups.Delete(ctx, work.Id))

	all, err := sessions.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].GroupId)
	assert.Equal(t, personal.Id, *all[0].GroupId, "a moved session must not be touched by the old group's deletion")
}

func TestGroupDeleteNotFound(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewGroupService(factory)

	err := svc.Delete(context.Background(), uuid.New())
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGroupGetAllSortedByOrder(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewGroupService(factory)
	ctx := context.Background()

	a, err := svc.Create(ctx, &dto.CreateGroupRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &dto.CreateGroupRequest{Name: "B"})
	require.NoError(t, err)

	// Push A behind B; ranks are client-driven after creation.
	order := 5
	_, err = svc.Update(ctx, &dto.UpdateGroupRequest{Id: a.Id, Order: &order})
	require.NoError(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.Id, all[0].Id)
	assert.Equal(t, a.Id, all[1].Id)
}
