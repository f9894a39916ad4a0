package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tabibito/portfolio-api/internal/config"
	"github.com/tabibito/portfolio-api/internal/dto"
	"github.com/tabibito/portfolio-api/internal/handler"
	"github.com/tabibito/portfolio-api/internal/mailer"
	"github.com/tabibito/portfolio-api/internal/middleware"
	"github.com/tabibito/portfolio-api/internal/models"
	"github.com/tabibito/portfolio-api/internal/repository"
	"github.com/tabibito/portfolio-api/internal/router"
	"github.com/tabibito/portfolio-api/internal/service"
)

const (
	jwtSecret   = "integration-secret"
	ownerOpenID = "owner-open-id"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Message{}))

	logger := zerolog.New(io.Discard)
	notifier := mailer.New(config.SMTP{}, logger)
	validate := validator.New(validator.WithRequiredStructEnabled())

	messageRepo := repository.NewMessageRepository(db, logger)
	userRepo := repository.NewUserRepository(db, ownerOpenID, logger)

	cfg := config.Config{
		AppName:          "Portfolio API",
		JWTSecret:        jwtSecret,
		OwnerOpenID:      ownerOpenID,
		ContactRateLimit: 1000,
	}

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler:      handler.NewContactHandler(service.NewContactService(messageRepo, notifier, nil, logger), logger),
		AdminMessageHandler: handler.NewAdminMessageHandler(service.NewAdminMessageService(messageRepo, logger), validate, logger),
		AuthHandler:         handler.NewAuthHandler(userRepo, validate, logger),
		Notifier:            notifier,
		SessionMiddleware:   middleware.VerifySession(cfg.JWTSecret),
		UserMiddleware:      middleware.LoadUser(userRepo, logger),
	})

	return app
}

func signToken(t *testing.T, openID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": openID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestContactAndModerationFlow(t *testing.T) {
	app := newTestApp(t)

	// Health reports the relay is not configured in this setup.
	resp := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health handler.HealthResponse
	decode(t, resp, &health)
	require.Equal(t, "ok", health.Status)
	require.False(t, health.EmailConfigured)

	// A short message is rejected with the exact wire string.
	resp = doJSON(t, app, http.MethodPost, "/api/contact", "", dto.ContactRequest{
		Name: "Jo", Email: "jo@example.com", Message: "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var failure struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decode(t, resp, &failure)
	require.Equal(t, "Message must be at least 10 characters long", failure.Error)

	// Three valid submissions.
	for i := 1; i <= 3; i++ {
		resp = doJSON(t, app, http.MethodPost, "/api/contact", "", dto.ContactRequest{
			Name:    fmt.Sprintf("Sender %d", i),
			Email:   fmt.Sprintf("sender%d@example.com", i),
			Message: fmt.Sprintf("Message number %d with enough length.", i),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// The owner signs in; sync provisions the admin user record.
	ownerToken := signToken(t, ownerOpenID)
	resp = doJSON(t, app, http.MethodPost, "/api/auth/sync", ownerToken, dto.SyncUserRequest{Name: "Tabibito"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	decode(t, resp, &me)
	require.Equal(t, models.RoleAdmin, me.Role)

	// Moderation list returns newest first with the grand total.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/messages/list", ownerToken, dto.MessageListRequest{Limit: 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.MessageListResponse
	decode(t, resp, &page)
	require.Equal(t, int64(3), page.Total)
	require.Len(t, page.Messages, 3)
	require.Equal(t, "Sender 3", page.Messages[0].Name)
	require.False(t, page.Messages[0].Read)

	// Mark as read is idempotent.
	target := page.Messages[0].ID
	for i := 0; i < 2; i++ {
		resp = doJSON(t, app, http.MethodPost, "/api/admin/messages/markAsRead", ownerToken, dto.MessageActionRequest{ID: target})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/admin/messages/list", ownerToken, dto.MessageListRequest{Limit: 10})
	decode(t, resp, &page)
	require.True(t, page.Messages[0].Read)

	// Delete, then delete again: still a success.
	for i := 0; i < 2; i++ {
		resp = doJSON(t, app, http.MethodPost, "/api/admin/messages/delete", ownerToken, dto.MessageActionRequest{ID: target})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/admin/messages/list", ownerToken, dto.MessageListRequest{Limit: 10})
	decode(t, resp, &page)
	require.Equal(t, int64(2), page.Total)
}

func TestModerationForbiddenForVisitors(t *testing.T) {
	app := newTestApp(t)

	// A visitor signs in; their record defaults to the user role.
	visitorToken := signToken(t, "visitor-1")
	resp := doJSON(t, app, http.MethodPost, "/api/auth/sync", visitorToken, dto.SyncUserRequest{Name: "Visitor"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{
		"/api/admin/messages/list",
		"/api/admin/messages/markAsRead",
		"/api/admin/messages/delete",
	} {
		resp = doJSON(t, app, http.MethodPost, path, visitorToken, dto.MessageActionRequest{ID: 1})
		require.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}

	// No token at all never reaches the service.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/messages/list", "", dto.MessageListRequest{})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
