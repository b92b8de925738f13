package service

import (
	"context"
	"strings"
	"time"

	authdomain "github.com/TwinexTecnologia/bodybrothers/internal/auth/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/auth/password"
	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	"github.com/TwinexTecnologia/bodybrothers/internal/config"
	"github.com/TwinexTecnologia/bodybrothers/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Config config.Config
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	trainerrepo repository.Repository[authdomain.Trainer]
	sessionrepo repository.Repository[authdomain.Session]
	sessionTTL  time.Duration
}

func NewService(p ServiceParam) authdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		genID: p.GenID,
		clock: p.Clock,

		trainerrepo: repository.ProvideStore[authdomain.Trainer](p.DB),
		sessionrepo: repository.ProvideStore[authdomain.Session](p.DB),
		sessionTTL:  time.Duration(p.Config.SessionTTLHours) * time.Hour,
	}
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, authdomain.ErrInvalidCredentials
	}

	trainer, err := s.trainerrepo.FindOne(ctx, &authdomain.Trainer{Email: email})
	if err != nil {
		return nil, err
	}
	if trainer == nil || !password.Verify(req.Password, trainer.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	sess := &authdomain.Session{
		ID:        s.genID.Generate(),
		TrainerID: trainer.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionrepo.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info("trainer logged in", zap.String("trainer_id", trainer.ID.String()))
	return &authdomain.LoginResponse{Trainer: trainer, Session: sess}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sess, err := s.sessionrepo.FindOne(ctx, &authdomain.Session{Token: token})
	if err != nil {
		return err
	}
	if sess == nil || sess.RevokedAt != nil {
		return nil
	}

	now := s.clock.Now()
	return s.db.WithContext(ctx).Model(&authdomain.Session{}).
		Where("id = ?", sess.ID).
		Update("revoked_at", now).Error
}

func (s *Service) Authenticate(ctx context.Context, token string) (*authdomain.Trainer, error) {
	if token == "" {
		return nil, authdomain.ErrInvalidSession
	}

	sess, err := s.sessionrepo.FindOne(ctx, &authdomain.Session{Token: token})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, authdomain.ErrInvalidSession
	}
	if sess.RevokedAt != nil {
		return nil, authdomain.ErrSessionRevoked
	}
	if !s.clock.Now().Before(sess.ExpiresAt) {
		return nil, authdomain.ErrSessionExpired
	}

	trainer, err := s.trainerrepo.FindOne(ctx, &authdomain.Trainer{ID: sess.TrainerID})
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, authdomain.ErrInvalidSession
	}
	return trainer, nil
}

func (s *Service) EnsureTrainer(ctx context.Context, name, email, pass string) (*authdomain.Trainer, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.trainerrepo.FindOne(ctx, &authdomain.Trainer{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	trainer := &authdomain.Trainer{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.trainerrepo.Create(ctx, trainer); err != nil {
		return nil, err
	}

	s.log.Info("trainer account created", zap.String("email", email))
	return trainer, nil
}
