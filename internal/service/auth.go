package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tubarao/storefront/internal/hash"
	"github.com/tubarao/storefront/internal/logging"
	"github.com/tubarao/storefront/internal/models"
	"github.com/tubarao/storefront/internal/repo"
	"github.com/tubarao/storefront/internal/tokens"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// Session is the authenticated identity the rest of the app sees.
type Session struct {
	UserID uuid.UUID
	Name   string
}

type TokenPair struct {
	Access     string
	Refresh    string
	AccessExp  time.Time
	RefreshExp time.Time
}

type AuthRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveRefresh(ctx context.Context, jti string, userID uuid.UUID, expiresAt time.Time) error
	RefreshUsable(ctx context.Context, jti string) (bool, error)
	RevokeRefresh(ctx context.Context, jti string) error
}

type AuthService struct {
	Repo          AuthRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

// SignUp registers the user and opens a session. The caller validates the
// form (field presence, password length and match) before this is reached.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*Session, *TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash password", "error", err)
		return nil, nil, err
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("signup_rejected", "reason", "email taken", "email", email)
			return nil, nil, ErrEmailTaken
		}
		l.Error("signup_error", "error", err)
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, &user)
	if err != nil {
		return nil, nil, err
	}

	l.Info("user registered", "user_id", user.ID)
	return &Session{UserID: user.ID, Name: user.Name}, pair, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, *TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin", "email", email)

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("signin_rejected", "reason", "unknown email")
			return nil, nil, ErrInvalidCredentials
		}
		l.Error("signin_error", "error", err)
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("signin_rejected", "reason", "wrong password")
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	l.Info("user signed in", "user_id", user.ID)
	return &Session{UserID: user.ID, Name: user.Name}, pair, nil
}

// SignOut revokes the refresh token so the pair cannot be rotated again. An
// unparsable token is already unusable and not an error worth surfacing.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil
	}
	return s.Repo.RevokeRefresh(ctx, claims.ID)
}

// Refresh rotates a usable refresh token into a fresh pair, revoking the old
// one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, accessToken string) (*Session, *TokenPair, error) {
	refreshClaims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	usable, err := s.Repo.RefreshUsable(ctx, refreshClaims.ID)
	if err != nil {
		return nil, nil, err
	}
	if !usable {
		return nil, nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(refreshClaims.Subject)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	// The display name travels in the access token; an expired one still
	// carries it.
	name := ""
	if accessClaims, err := tokens.AccessClaimsIgnoringExpiry(accessToken, s.JWTSecret); err == nil {
		name = accessClaims.Name
	}

	if err := s.Repo.RevokeRefresh(ctx, refreshClaims.ID); err != nil {
		return nil, nil, err
	}

	user := models.User{ID: userID, Name: name}
	pair, err := s.issueTokens(ctx, &user)
	if err != nil {
		return nil, nil, err
	}
	return &Session{UserID: userID, Name: name}, pair, nil
}

// SessionFromAccess reads the session out of an access token without any
// repository call.
func (s *AuthService) SessionFromAccess(accessToken string) (*Session, error) {
	claims, err := tokens.AccessClaimsFromToken(accessToken, s.JWTSecret)
	if err != nil || claims == nil {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Session{UserID: userID, Name: claims.Name}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessExp := time.Now().Add(tokens.AccessTTL)
	access, err := tokens.NewAccessToken(user.ID, user.Name, s.JWTSecret, accessExp)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	jti := tokens.NewJTI()
	refresh, err := tokens.NewRefreshToken(user.ID, jti, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.Repo.SaveRefresh(ctx, jti, user.ID, refreshExp); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		Access:     access,
		Refresh:    refresh,
		AccessExp:  accessExp,
		RefreshExp: refreshExp,
	}, nil
}
