package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tabibito/portfolio-api/internal/models"
)

type moderationRepoStub struct {
	messages   []models.Message
	total      int64
	listCalls  int
	lastLimit  int
	lastOffset int
	marked     []uint
	deleted    []uint
}

func (m *moderationRepoStub) Save(context.Context, *models.Message) error { return nil }

func (m *moderationRepoStub) List(_ context.Context, limit, offset int) ([]models.Message, error) {
	m.listCalls++
	m.lastLimit = limit
	m.lastOffset = offset
	return m.messages, nil
}

func (m *moderationRepoStub) Count(context.Context) (int64, error) {
	return m.total, nil
}

func (m *moderationRepoStub) MarkRead(_ context.Context, id uint) error {
	m.marked = append(m.marked, id)
	return nil
}

func (m *moderationRepoStub) Delete(_ context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

var admin = Actor{OpenID: "owner-1", Role: models.RoleAdmin}

func TestAdminMessageServiceForbiddenWithoutAdminRole(t *testing.T) {
	actors := []Actor{
		{},
		{OpenID: "visitor-1", Role: models.RoleUser},
		{OpenID: "visitor-2", Role: "moderator"},
	}

	for _, actor := range actors {
		repo := &moderationRepoStub{}
		svc := NewAdminMessageService(repo, testLogger())

		_, err := svc.List(context.Background(), actor, 10, 0)
		require.ErrorIs(t, err, ErrForbidden)
		require.ErrorIs(t, svc.MarkAsRead(context.Background(), actor, 1), ErrForbidden)
		require.ErrorIs(t, svc.Delete(context.Background(), actor, 1), ErrForbidden)

		require.Zero(t, repo.listCalls)
		require.Empty(t, repo.marked)
		require.Empty(t, repo.deleted)
	}
}

func TestAdminMessageServiceListClampsPaging(t *testing.T) {
	repo := &moderationRepoStub{total: 3}
	svc := NewAdminMessageService(repo, testLogger())

	_, err := svc.List(context.Background(), admin, 0, -5)
	require.NoError(t, err)
	require.Equal(t, defaultPageSize, repo.lastLimit)
	require.Zero(t, repo.lastOffset)

	_, err = svc.List(context.Background(), admin, 10_000, 20)
	require.NoError(t, err)
	require.Equal(t, maxPageSize, repo.lastLimit)
	require.Equal(t, 20, repo.lastOffset)
}

func TestAdminMessageServiceListMapsMessages(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &moderationRepoStub{
		messages: []models.Message{
			{ID: 2, Name: "Jo", Email: "jo@example.com", Message: "Hello there, I love your work!", CreatedAt: created},
			{ID: 1, Name: "Sam", Email: "sam@example.com", Message: "Interested in a collaboration.", Read: true, CreatedAt: created.Add(-time.Hour)},
		},
		total: 25,
	}
	svc := NewAdminMessageService(repo, testLogger())

	result, err := svc.List(context.Background(), admin, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(25), result.Total)
	require.Len(t, result.Messages, 2)
	require.Equal(t, uint(2), result.Messages[0].ID)
	require.False(t, result.Messages[0].Read)
	require.True(t, result.Messages[1].Read)
}

func TestAdminMessageServiceMutationsDelegate(t *testing.T) {
	repo := &moderationRepoStub{}
	svc := NewAdminMessageService(repo, testLogger())

	require.NoError(t, svc.MarkAsRead(context.Background(), admin, 7))
	require.NoError(t, svc.MarkAsRead(context.Background(), admin, 7))
	require.Equal(t, []uint{7, 7}, repo.marked)

	require.NoError(t, svc.Delete(context.Background(), admin, 9))
	require.Equal(t, []uint{9}, repo.deleted)
}
