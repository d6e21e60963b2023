package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/model"
)

const (
	tokenType       = "bearer"
	apiTokenSubject = "api-token"
	defaultRole     = model.RoleTeacher
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrModeNotAllowed = fmt.Errorf("%w: mode not allowed", ErrForbidden)
	ErrSignupDisabled = fmt.Errorf("%w: signup disabled", ErrForbidden)
	ErrConflict       = errors.New("conflict")
	ErrMisconfigured  = errors.New("auth config invalid")
)

// TokenError is a rejected bearer token. Detail is safe to show to the caller.
type TokenError struct {
	Detail string
}

func (e *TokenError) Error() string {
	return e.Detail
}

func (e *TokenError) Is(target error) bool {
	return target == ErrUnauthorized
}

// IDTokenVerifier checks tokens issued by an external identity provider.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*model.AuthUser, error)
}

type AuthService struct {
	users       *UserStore
	jwtSecret   []byte
	apiToken    []byte
	accessTTL   time.Duration
	allowSignup bool
	external    IDTokenVerifier
	logger      zerolog.Logger
	now         func() time.Time
}

type authClaims struct {
	Role string `json:"role"`
	Mode string `json:"mode"`
	jwt.RegisteredClaims
}

func NewAuthService(users *UserStore, cfg config.AuthConfig, external IDTokenVerifier, logger zerolog.Logger) (*AuthService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: KIDDOLAND_AUTH_SECRET is required", ErrMisconfigured)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid KIDDOLAND_AUTH_TTL_SECONDS", ErrMisconfigured)
	}

	return &AuthService{
		users:       users,
		jwtSecret:   []byte(cfg.Secret),
		apiToken:    []byte(cfg.APIToken),
		accessTTL:   cfg.TokenTTL,
		allowSignup: cfg.AllowSignup,
		external:    external,
		logger:      logger.With().Str("component", "auth").Logger(),
		now:         time.Now,
	}, nil
}

func (s *AuthService) AllowSignup() bool {
	return s.allowSignup
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || !model.IsValidMode(req.Mode) {
		return nil, ErrInvalidInput
	}

	user, ok := s.users.Get(email)
	if !ok || !verifyPassword(user, req.Password) {
		s.logger.Info().Str("email", email).Msg("login rejected")
		return nil, ErrUnauthorized
	}

	if !user.AllowsMode(req.Mode) {
		s.logger.Info().Str("user_id", user.ID).Str("mode", req.Mode).Msg("login rejected for mode")
		return nil, ErrModeNotAllowed
	}

	return s.issueToken(user, req.Mode)
}

// Register creates an in-memory account allowed to use exactly the requested mode.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.TokenResponse, error) {
	if !s.allowSignup {
		return nil, ErrSignupDisabled
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || !model.IsValidMode(req.Mode) {
		return nil, ErrInvalidInput
	}
	role := req.Role
	if role == "" {
		role = defaultRole
	}
	if !model.IsValidRole(role) {
		return nil, ErrInvalidInput
	}

	if _, exists := s.users.Get(email); exists {
		return nil, ErrConflict
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Modes:        []string{req.Mode},
	}
	if err := s.users.Add(user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Str("role", role).Str("mode", req.Mode).Msg("user registered")

	return s.issueToken(user, req.Mode)
}

// Authenticate resolves a bearer credential. The static API token is checked first,
// then locally issued tokens, then the external identity provider when configured.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*model.AuthUser, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, &TokenError{Detail: "Missing authorization token."}
	}

	if len(s.apiToken) > 0 && subtle.ConstantTimeCompare([]byte(rawToken), s.apiToken) == 1 {
		return &model.AuthUser{UserID: apiTokenSubject, Role: model.RoleAdmin, Mode: model.ModeInstitution}, nil
	}

	user, err := s.ParseAccessToken(rawToken)
	if err == nil {
		return user, nil
	}

	if s.external != nil {
		extUser, extErr := s.external.Verify(ctx, rawToken)
		if extErr == nil {
			return extUser, nil
		}
		s.logger.Debug().Err(extErr).Msg("external token rejected")
	}

	return nil, err
}

func (s *AuthService) ParseAccessToken(tokenStr string) (*model.AuthUser, error) {
	claims := &authClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, tokenError(err)
	}

	if claims.Subject == "" || claims.Role == "" || claims.Mode == "" {
		return nil, &TokenError{Detail: "Token is missing required claims."}
	}
	if !model.IsValidRole(claims.Role) {
		return nil, &TokenError{Detail: "Token has an invalid role."}
	}
	if !model.IsValidMode(claims.Mode) {
		return nil, &TokenError{Detail: "Token has an invalid mode."}
	}

	return &model.AuthUser{
		UserID: claims.Subject,
		Role:   claims.Role,
		Mode:   claims.Mode,
	}, nil
}

func (s *AuthService) issueToken(user *model.User, mode string) (*model.TokenResponse, error) {
	accessToken, expiresIn, err := s.generateAccessToken(user, mode)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresIn:   expiresIn,
		Role:        user.Role,
		Mode:        mode,
	}, nil
}

func (s *AuthService) generateAccessToken(user *model.User, mode string) (string, int64, error) {
	now := s.now()
	claims := authClaims{
		Role: user.Role,
		Mode: mode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

func tokenError(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Detail: "Token has expired."}
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return &TokenError{Detail: "Token is missing required claims."}
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &TokenError{Detail: "Invalid token format."}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return &TokenError{Detail: "Invalid token signature."}
	default:
		return &TokenError{Detail: "Invalid token."}
	}
}
