package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"lingo-days/internal/config"
	"lingo-days/internal/domain"
	"lingo-days/internal/dto"
	"lingo-days/internal/logger"
	"lingo-days/internal/middleware"
	"lingo-days/internal/service"
	"lingo-days/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	oauthStateCookieName = "oauthstate"
	oauthStateTTL        = 10 * time.Minute
)

type AuthHandler struct {
	authService service.AuthService
	appConfig   *config.Config
	validator   *validation.Validator
}

func NewAuthHandler(authService service.AuthService, appConfig *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		appConfig:   appConfig,
		validator:   validation.NewValidator(),
	}
}

// sessionCookie builds the session cookie. Production serves the API cross-site, so it
// needs SameSite=None with Secure.
func (h *AuthHandler) sessionCookie(value string, maxAge time.Duration) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     h.appConfig.JWT.CookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if !h.appConfig.IsDevelopment() {
		cookie.Secure = true
		cookie.SameSite = fiber.CookieSameSiteNoneMode
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
		cookie.Expires = time.Now().Add(maxAge)
	} else {
		cookie.MaxAge = -1
		cookie.Expires = time.Now().Add(-time.Hour)
	}
	return cookie
}

func (h *AuthHandler) setSession(c *fiber.Ctx, token string) {
	c.Cookie(h.sessionCookie(token, h.appConfig.JWT.TTL))
}

func (h *AuthHandler) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		logger.Get().Debug("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	return h.validator.Struct(out)
}

// Register creates an account and signs it in.
// @Summary Register
// @Description Creates a user and its A1 profile atomically, then sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	h.setSession(c, token)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Success: true,
		User:    dto.FromUser(user),
		Token:   token,
	})
}

// Login signs in with email and password.
// @Summary Login
// @Description Verifies the credentials and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSession(c, token)
	return c.JSON(dto.AuthResponse{
		Success: true,
		User:    dto.FromUser(user),
		Token:   token,
	})
}

// Logout clears the session cookie.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.sessionCookie("", 0))
	return c.JSON(dto.MessageResponse{Success: true, Message: "Logged out"})
}

// Me returns the caller merged with its profile.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, profile, err := h.authService.Me(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.MeResponse{
		Success:         true,
		UserResponse:    dto.FromUser(user),
		ProfileResponse: dto.FromProfile(profile),
	})
}

// ChangePassword replaces the caller's password.
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.UserContext(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Password changed"})
}

// AcceptTerms records the caller's acceptance of the terms of service.
// @Summary Accept terms
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.AuthResponse "Token is empty"
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/accept-terms [put]
func (h *AuthHandler) AcceptTerms(c *fiber.Ctx) error {
	user, err := h.authService.AcceptTerms(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{Success: true, User: dto.FromUser(user)})
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Redirects the user to Google's OAuth2 consent page.
// @Tags auth
// @Success 307 {string} string "Redirects to Google"
// @Failure 503 {object} middleware.ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return domain.NewInternalError("could not generate oauth state", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	loginURL, err := h.authService.GetGoogleLoginURL(state)
	if err != nil {
		return mapOAuthError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Expires:  time.Now().Add(oauthStateTTL),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.Redirect(loginURL, fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Signs in the Google account's email and sets the session cookie. Redirects to the frontend when one is configured.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 200 {object} dto.AuthResponse
// @Success 307 {string} string "Redirects to the frontend"
// @Failure 400 {object} middleware.ErrorResponse "Invalid state or code"
// @Failure 503 {object} middleware.ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	if code == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("code")}
	}

	user, token, err := h.authService.HandleGoogleCallback(c.UserContext(), code, receivedState, expectedState)
	if err != nil {
		logger.Get().Warn("Google callback failed", zap.Error(err))
		return mapOAuthError(err)
	}

	h.setSession(c, token)
	logger.Get().Info("Google sign-in succeeded", zap.String("userID", user.ID))

	if frontend := h.appConfig.GoogleOAuth.FrontendURL; frontend != "" {
		return c.Redirect(frontend, fiber.StatusTemporaryRedirect)
	}
	return c.JSON(dto.AuthResponse{
		Success: true,
		User:    dto.FromUser(user),
		Token:   token,
	})
}

func mapOAuthError(err error) error {
	switch {
	case errors.Is(err, service.ErrGoogleLoginDisabled):
		return domain.NewError(domain.CodeUnavailable, "Google sign-in is not configured", err)
	case errors.Is(err, service.ErrInvalidAuthState):
		return domain.NewInvalidInputError("OAuth state mismatch or missing")
	case errors.Is(err, service.ErrFailedToExchangeToken):
		return domain.NewInvalidInputError("Authorization code was rejected")
	default:
		return err
	}
}
