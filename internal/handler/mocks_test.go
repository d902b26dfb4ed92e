package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lingo-days/internal/config"
	"lingo-days/internal/domain"
	"lingo-days/internal/dto"
	"lingo-days/internal/middleware"
	"lingo-days/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testToken  = "good-token"
	testUserID = "01HZXUSER0000000000000000"
)

// --- MockAuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*domain.Profile), args.Error(2)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) AcceptTerms(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) CreateJWT(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthClaims), args.Error(1)
}

func (m *MockAuthService) GetGoogleLoginURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*domain.User, string, error) {
	args := m.Called(ctx, code, receivedState, expectedState)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ProvisionFromOrder(ctx context.Context, email, name string) (*service.ProvisionResult, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProvisionResult), args.Error(1)
}

// --- MockLessonService ---
type MockLessonService struct {
	mock.Mock
}

func (m *MockLessonService) ListLessons(ctx context.Context) ([]domain.LessonSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LessonSummary), args.Error(1)
}

func (m *MockLessonService) GetLesson(ctx context.Context, userID string, day int) (*domain.Lesson, *domain.LessonProgress, error) {
	args := m.Called(ctx, userID, day)
	var progress *domain.LessonProgress
	if p := args.Get(1); p != nil {
		progress = p.(*domain.LessonProgress)
	}
	if args.Get(0) == nil {
		return nil, progress, args.Error(2)
	}
	return args.Get(0).(*domain.Lesson), progress, args.Error(2)
}

func (m *MockLessonService) BulkInitialData(ctx context.Context, userID string) (*service.BulkData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BulkData), args.Error(1)
}

func (m *MockLessonService) CompleteLesson(ctx context.Context, in domain.CompletionInput) (*domain.LessonProgress, *domain.Profile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.LessonProgress), args.Get(1).(*domain.Profile), args.Error(2)
}

func (m *MockLessonService) SaveProgress(ctx context.Context, userID string, day int, answers json.RawMessage) error {
	args := m.Called(ctx, userID, day, answers)
	return args.Error(0)
}

func (m *MockLessonService) VocabularyGame(ctx context.Context, userID string) (int, []domain.VocabularyItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(1) == nil {
		return args.Int(0), nil, args.Error(2)
	}
	return args.Int(0), args.Get(1).([]domain.VocabularyItem), args.Error(2)
}

// staticTokens accepts testToken only.
type staticTokens struct{}

func (staticTokens) ValidateJWT(_ context.Context, token string) (*dto.AuthClaims, error) {
	if token != testToken {
		return nil, service.ErrInvalidJWTToken
	}
	return &dto.AuthClaims{UserID: testUserID, Email: "learner@example.com"}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeCache struct {
	domain.Cache
	pingErr error
}

func (c fakeCache) Ping(context.Context) error { return c.pingErr }

type testApp struct {
	app     *fiber.App
	auth    *MockAuthService
	lessons *MockLessonService
	cfg     *config.Config
}

type appOption func(*config.Config, *Handlers)

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()
	cfg := &config.Config{
		Env:     config.EnvDevelopment,
		JWT:     config.JWTConfig{SecretKey: "x", TTL: 7 * 24 * time.Hour, CookieName: "token"},
		Webhook: config.WebhookConfig{SallaSecret: "salla-secret"},
	}
	ta := &testApp{
		auth:    new(MockAuthService),
		lessons: new(MockLessonService),
		cfg:     cfg,
	}
	h := Handlers{
		Lessons: NewLessonHandler(ta.lessons),
		Health:  NewHealthHandler(fakePinger{}, fakeCache{}),
	}
	for _, opt := range opts {
		opt(cfg, &h)
	}
	h.Auth = NewAuthHandler(ta.auth, cfg)
	h.Webhook = NewWebhookHandler(ta.auth, cfg.Webhook.SallaSecret)

	ta.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(true)})
	RegisterRoutes(ta.app, h, staticTokens{}, cfg.JWT.CookieName)
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var errBoom = errors.New("boom")
