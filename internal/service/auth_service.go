package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lingo-days/internal/config"
	"lingo-days/internal/domain"
	"lingo-days/internal/dto"
	"lingo-days/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// PasswordHashCost is the bcrypt cost factor for stored passwords.
	PasswordHashCost = 10

	temporaryPasswordBytes = 9 // 12 base64url characters
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrGoogleLoginDisabled   = errors.New("google sign-in is not configured")
)

// ProvisionResult describes an account provisioned from an external order.
type ProvisionResult struct {
	User              *domain.User
	Created           bool
	TemporaryPassword string
}

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	AcceptTerms(ctx context.Context, userID string) (*domain.User, error)
	CreateJWT(user *domain.User) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	GetGoogleLoginURL(state string) (string, error)
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*domain.User, string, error)
	ProvisionFromOrder(ctx context.Context, email, name string) (*ProvisionResult, error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	profileRepo  domain.ProfileRepository
	txManager    domain.TransactionManager
	jwtConfig    config.JWTConfig
	oauth2Config *oauth2.Config
	// fetchGoogleUser is replaced in tests.
	fetchGoogleUser func(ctx context.Context, code string) (*dto.GoogleUserInfo, error)
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	txManager domain.TransactionManager,
	jwtConfig config.JWTConfig,
	googleConfig config.GoogleOAuthConfig,
) (AuthService, error) {
	if jwtConfig.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	if jwtConfig.TTL <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}

	s := &authServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		txManager:   txManager,
		jwtConfig:   jwtConfig,
	}
	if googleConfig.Enabled() {
		s.oauth2Config = &oauth2.Config{
			ClientID:     googleConfig.ClientID,
			ClientSecret: googleConfig.ClientSecret,
			RedirectURL:  googleConfig.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}
	s.fetchGoogleUser = s.exchangeGoogleUser
	return s, nil
}

// HashPassword returns the bcrypt hash stored for password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", domain.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// createAccount inserts the user and its starting profile in one transaction.
func (s *authServiceImpl) createAccount(ctx context.Context, user *domain.User) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.CreateUser(txCtx, user); err != nil {
			return err
		}
		return s.profileRepo.CreateProfile(txCtx, domain.NewProfile(user.ID))
	})
}

func (s *authServiceImpl) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.NewEmailTakenError(existing.Email)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := domain.NewUser(email, hash, name)
	user.PasswordChanged = true

	if err := s.createAccount(ctx, user); err != nil {
		return nil, "", err
	}
	logger.Get().Info("User registered", zap.String("userID", user.ID))

	token, err := s.CreateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the password and refreshes last_login_at. An unknown email and a wrong
// password produce the same error.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Get().Info("Password login rejected", zap.String("userID", user.ID))
		return nil, "", domain.NewInvalidCredentialsError()
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", err
	}
	user.LastLoginAt = &now

	token, err := s.CreateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authServiceImpl) Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.NewUserNotFoundError(userID)
	}
	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, domain.NewNotFoundError("Learning profile not found").WithContext("user_id", userID)
	}
	return user, profile, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewUserNotFoundError(userID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.NewInvalidInputError("Current password is incorrect")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	logger.Get().Info("Password changed", zap.String("userID", userID))
	return nil
}

func (s *authServiceImpl) AcceptTerms(ctx context.Context, userID string) (*domain.User, error) {
	if err := s.userRepo.AcceptTerms(ctx, userID, time.Now()); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return user, nil
}

func (s *authServiceImpl) CreateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.SecretKey))
	if err != nil {
		return "", domain.NewInternalError("failed to sign session token", err)
	}
	return signed, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})
	if err != nil {
		logger.Get().Debug("JWT validation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) (string, error) {
	if s.oauth2Config == nil {
		return "", ErrGoogleLoginDisabled
	}
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (s *authServiceImpl) exchangeGoogleUser(ctx context.Context, code string) (*dto.GoogleUserInfo, error) {
	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &userInfo, nil
}

// HandleGoogleCallback signs in the Google account's email, provisioning the user and
// profile on first use.
func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*domain.User, string, error) {
	if s.oauth2Config == nil {
		return nil, "", ErrGoogleLoginDisabled
	}
	if receivedState == "" || receivedState != expectedState {
		return nil, "", ErrInvalidAuthState
	}

	userInfo, err := s.fetchGoogleUser(ctx, code)
	if err != nil {
		return nil, "", err
	}
	if userInfo.Email == "" || !userInfo.VerifiedEmail {
		return nil, "", domain.NewUnauthorizedError("Google account has no verified email")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, userInfo.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		// Google users get an unusable random password until they set one.
		secret, err := GenerateTemporaryPassword()
		if err != nil {
			return nil, "", err
		}
		hash, err := HashPassword(secret)
		if err != nil {
			return nil, "", err
		}
		user = domain.NewUser(userInfo.Email, hash, userInfo.Name)
		if err := s.createAccount(ctx, user); err != nil {
			return nil, "", err
		}
		logger.Get().Info("New user created via Google OAuth", zap.String("userID", user.ID))
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", err
	}
	user.LastLoginAt = &now

	token, err := s.CreateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateTemporaryPassword returns 12 URL-safe random characters.
func GenerateTemporaryPassword() (string, error) {
	buf := make([]byte, temporaryPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", domain.NewInternalError("failed to generate temporary password", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ProvisionFromOrder creates an account for a purchaser. An existing email is left untouched
// and reported with Created=false.
func (s *authServiceImpl) ProvisionFromOrder(ctx context.Context, email, name string) (*ProvisionResult, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ProvisionResult{User: existing}, nil
	}

	temp, err := GenerateTemporaryPassword()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(temp)
	if err != nil {
		return nil, err
	}
	user := domain.NewUser(email, hash, name)

	if err := s.createAccount(ctx, user); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeEmailTaken {
			// A concurrent delivery of the same order won the insert.
			existing, getErr := s.userRepo.GetUserByEmail(ctx, email)
			if getErr != nil {
				return nil, getErr
			}
			if existing != nil {
				return &ProvisionResult{User: existing}, nil
			}
		}
		return nil, err
	}

	logger.Get().Info("User provisioned from order", zap.String("userID", user.ID))
	return &ProvisionResult{User: user, Created: true, TemporaryPassword: temp}, nil
}
