package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bloodlink-service/internal/auth"
	"github.com/spec-kit/bloodlink-service/internal/config"
	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/observability"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (r *stubUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }
func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}
func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubUserRepo) ListDonors(_ context.Context, _ repository.DonorFilter) ([]domain.User, error) {
	return nil, nil
}
func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) { return nil, nil }

type stubBankRepo struct {
	banks map[string]*domain.BloodBank
}

func (r *stubBankRepo) Create(_ context.Context, _ *domain.BloodBank) error { return nil }
func (r *stubBankRepo) Update(_ context.Context, _ *domain.BloodBank) error { return nil }
func (r *stubBankRepo) GetByID(_ context.Context, id string) (*domain.BloodBank, error) {
	bank, ok := r.banks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return bank, nil
}
func (r *stubBankRepo) GetByEmail(_ context.Context, _ string) (*domain.BloodBank, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubBankRepo) GetByLicense(_ context.Context, _ string) (*domain.BloodBank, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubBankRepo) List(_ context.Context, _ bool) ([]domain.BloodBank, error) {
	return nil, nil
}
func (r *stubBankRepo) UpdateInventory(_ context.Context, _ string, _ []domain.InventoryItem) error {
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tokens := auth.NewTokenManager("test-secret", 7)
	users := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "asha@example.com", Role: domain.UserRoleUser},
	}}
	banks := &stubBankRepo{banks: map[string]*domain.BloodBank{
		"bank-1": {ID: "bank-1", Email: "bank@example.com"},
	}}
	middleware := auth.NewAuthMiddleware(tokens, users, banks)

	cfg := &config.Config{}
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, nil, cfg)

	app.Get("/protected", middleware.Handle, auth.RequireUser(), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"data": principal.Actor().ID})
	})

	return app, tokens
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestProtectedRouteWithUnknownSubject(t *testing.T) {
	app, tokens := newTestApp(t)

	token, _, err := tokens.GenerateToken("ghost", "ghost@example.com", domain.ActorKindUser, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestProtectedRouteRejectsWrongActorKind(t *testing.T) {
	app, tokens := newTestApp(t)

	token, _, err := tokens.GenerateToken("bank-1", "bank@example.com", domain.ActorKindBloodBank, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "WRONG_ACTOR_KIND", errorCode(t, resp))
}

func TestRequestMetricsRecordErrorStatus(t *testing.T) {
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, nil, &config.Config{})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("resource", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)

	found := false
	for _, family := range families {
		if family.GetName() != "bloodlink_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" && label.GetValue() == "404" {
					found = true
					assert.Equal(t, float64(1), metric.GetCounter().GetValue())
				}
			}
		}
	}
	assert.True(t, found, "requests_total should carry the handler error status")
}

func TestProtectedRouteWithValidToken(t *testing.T) {
	app, tokens := newTestApp(t)

	token, _, err := tokens.GenerateToken("user-1", "asha@example.com", domain.ActorKindUser, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-1", body.Data)
}
