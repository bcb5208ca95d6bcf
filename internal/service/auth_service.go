package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/mentorhub-api/internal/models"
	appErrors "github.com/noah-isme/mentorhub-api/pkg/errors"
)

type authMentorRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Mentor, error)
	FindByID(ctx context.Context, id string) (*models.Mentor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, mentor *models.Mentor) error
}

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthConfig defines configuration for authentication flows. A zero
// TokenExpiry issues tokens without an exp claim, matching the legacy
// backend's expiry-less tokens.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
}

// AuthService provides signup and signin for both account types and owns
// token issue/resolve.
type AuthService struct {
	mentors   authMentorRepository
	users     authUserRepository
	verifier  CredentialVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(mentors authMentorRepository, users authUserRepository, verifier CredentialVerifier, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if verifier == nil {
		verifier = BcryptVerifier{}
	}
	return &AuthService{mentors: mentors, users: users, verifier: verifier, validator: validate, logger: logger, config: config}
}

// SignupMentor registers a mentor account and returns a token for it.
func (s *AuthService) SignupMentor(ctx context.Context, req models.SignupRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	exists, err := s.mentors.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check mentor email")
	}
	if exists {
		return "", appErrors.Clone(appErrors.ErrConflict, "Email already registered")
	}

	hash, err := s.verifier.Hash(req.Password)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	mentor := &models.Mentor{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
	}
	if err := s.mentors.Create(ctx, mentor); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mentor")
	}

	return s.IssueToken(mentor.ID, models.RoleMentor, mentor.Email)
}

// SigninMentor authenticates a mentor and returns a token.
func (s *AuthService) SigninMentor(ctx context.Context, req models.SigninRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	mentor, err := s.mentors.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.ErrUserNotFound
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch mentor")
	}

	if err := s.verifier.Compare(mentor.PasswordHash, req.Password); err != nil {
		return "", appErrors.ErrIncorrectPassword
	}

	return s.IssueToken(mentor.ID, models.RoleMentor, mentor.Email)
}

// SignupStudent registers a student account and returns a token for it.
func (s *AuthService) SignupStudent(ctx context.Context, req models.SignupRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user email")
	}
	if exists {
		return "", appErrors.Clone(appErrors.ErrConflict, "Email already registered")
	}

	hash, err := s.verifier.Hash(req.Password)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	return s.IssueToken(user.ID, models.RoleStudent, user.Email)
}

// SigninStudent authenticates a student and returns a token.
func (s *AuthService) SigninStudent(ctx context.Context, req models.SigninRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrMissingFields.Code, appErrors.ErrMissingFields.Status, appErrors.ErrMissingFields.Message)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.ErrUserNotFound
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := s.verifier.Compare(user.PasswordHash, req.Password); err != nil {
		return "", appErrors.ErrIncorrectPassword
	}

	return s.IssueToken(user.ID, models.RoleStudent, user.Email)
}

// IssueToken signs an access token for the given account.
func (s *AuthService) IssueToken(accountID string, role models.Role, email string) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		AccountID: accountID,
		Role:      role,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  accountID,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if s.config.TokenExpiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return signed, nil
}

// Resolve parses and validates an access token returning the claims.
func (s *AuthService) Resolve(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// ResolveMentor resolves a token and loads the mentor it refers to.
func (s *AuthService) ResolveMentor(ctx context.Context, tokenString string) (*models.Mentor, error) {
	claims, err := s.Resolve(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != models.RoleMentor {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token is not a mentor token")
	}

	mentor, err := s.mentors.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mentor")
	}
	return mentor, nil
}

// ResolveStudent resolves a token and loads the student it refers to.
func (s *AuthService) ResolveStudent(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.Resolve(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token is not a student token")
	}

	user, err := s.users.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}
