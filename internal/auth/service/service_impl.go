package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/auth/password"
	"github.com/etiquetou/etiquetou/internal/clock"
	"github.com/etiquetou/etiquetou/internal/plan"
	"github.com/etiquetou/etiquetou/internal/usercontext"
	"github.com/etiquetou/etiquetou/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionTTL = 30 * 24 * time.Hour

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Sessions domain.SessionRepository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	sessions domain.SessionRepository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		sessions: p.Sessions,
	}
}

func (s *Service) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidPassword
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Plan:         plan.TierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.String()))
	return &user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        req.UserAgent,
		IPAddress:        req.IPAddress,
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}

	if err := s.sessions.Create(ctx, s.db, &session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		User:      user,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.sessions.FindByTokenHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.sessions.Revoke(ctx, s.db, session.ID, s.clock.Now())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessions.FindByTokenHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrInvalidSession
	}

	now := s.clock.Now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessions.UpdateLastSeen(ctx, s.db, session.ID, now); err != nil {
		s.log.Warn("update session last seen", zap.Error(err))
	}

	return session, nil
}

func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidSession
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now()
	if err := s.repo.UpdateFields(ctx, s.db, user.ID, map[string]any{
		"name":       name,
		"updated_at": now,
	}); err != nil {
		return nil, err
	}

	user.Name = name
	user.UpdatedAt = now
	return user, nil
}

func newSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
