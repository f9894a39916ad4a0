package handler_test

import (
	"context"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tabibito/portfolio-api/internal/dto"
	"github.com/tabibito/portfolio-api/internal/handler"
	"github.com/tabibito/portfolio-api/internal/models"
	"github.com/tabibito/portfolio-api/internal/service"
	"github.com/tabibito/portfolio-api/internal/utils"
)

type mockAdminMessageService struct {
	lastActor  service.Actor
	lastLimit  int
	lastOffset int
	marked     []uint
	deleted    []uint
	listResult dto.MessageListResponse
	err        error
}

func (m *mockAdminMessageService) List(_ context.Context, actor service.Actor, limit, offset int) (dto.MessageListResponse, error) {
	m.lastActor = actor
	m.lastLimit = limit
	m.lastOffset = offset
	if m.err != nil {
		return dto.MessageListResponse{}, m.err
	}
	return m.listResult, nil
}

func (m *mockAdminMessageService) MarkAsRead(_ context.Context, actor service.Actor, id uint) error {
	m.lastActor = actor
	if m.err != nil {
		return m.err
	}
	m.marked = append(m.marked, id)
	return nil
}

func (m *mockAdminMessageService) Delete(_ context.Context, actor service.Actor, id uint) error {
	m.lastActor = actor
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func newAdminApp(svc service.AdminMessageService, role string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin/messages", func(c *fiber.Ctx) error {
		c.Locals("open_id", "owner-open-id")
		c.Locals("user_role", role)
		return c.Next()
	})
	validate := validator.New(validator.WithRequiredStructEnabled())
	handler.NewAdminMessageHandler(svc, validate, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestAdminMessageHandlerList(t *testing.T) {
	svc := &mockAdminMessageService{
		listResult: dto.MessageListResponse{
			Messages: []dto.MessageResponse{{ID: 3, Name: "Jo"}},
			Total:    25,
		},
	}
	app := newAdminApp(svc, models.RoleAdmin)

	resp := postJSON(t, app, "/api/admin/messages/list", dto.MessageListRequest{Limit: 10, Offset: 20})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.MessageListResponse
	decodeResponse(t, resp, &result)
	require.Equal(t, int64(25), result.Total)
	require.Len(t, result.Messages, 1)

	require.Equal(t, models.RoleAdmin, svc.lastActor.Role)
	require.Equal(t, 10, svc.lastLimit)
	require.Equal(t, 20, svc.lastOffset)
}

func TestAdminMessageHandlerForbidden(t *testing.T) {
	for _, path := range []string{
		"/api/admin/messages/list",
		"/api/admin/messages/markAsRead",
		"/api/admin/messages/delete",
	} {
		svc := &mockAdminMessageService{err: service.ErrForbidden}
		app := newAdminApp(svc, models.RoleUser)

		resp := postJSON(t, app, path, dto.MessageActionRequest{ID: 1})
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode, path)

		var response utils.ErrorResponse
		decodeResponse(t, resp, &response)
		require.Equal(t, "forbidden", response.Error)
	}
}

func TestAdminMessageHandlerMarkAsRead(t *testing.T) {
	svc := &mockAdminMessageService{}
	app := newAdminApp(svc, models.RoleAdmin)

	resp := postJSON(t, app, "/api/admin/messages/markAsRead", dto.MessageActionRequest{ID: 7})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response utils.AckResponse
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, []uint{7}, svc.marked)
}

func TestAdminMessageHandlerDelete(t *testing.T) {
	svc := &mockAdminMessageService{}
	app := newAdminApp(svc, models.RoleAdmin)

	resp := postJSON(t, app, "/api/admin/messages/delete", dto.MessageActionRequest{ID: 9})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, []uint{9}, svc.deleted)
}

func TestAdminMessageHandlerRejectsMissingID(t *testing.T) {
	svc := &mockAdminMessageService{}
	app := newAdminApp(svc, models.RoleAdmin)

	resp := postJSON(t, app, "/api/admin/messages/markAsRead", map[string]interface{}{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Empty(t, svc.marked)
}

func TestAdminMessageHandlerListDefaultsOnEmptyBody(t *testing.T) {
	svc := &mockAdminMessageService{}
	app := newAdminApp(svc, models.RoleAdmin)

	resp := postJSON(t, app, "/api/admin/messages/list", map[string]interface{}{})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Zero(t, svc.lastLimit)
	require.Zero(t, svc.lastOffset)
}
