package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/TwinexTecnologia/bodybrothers/internal/auth/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/clock"
	"github.com/TwinexTecnologia/bodybrothers/pkg/repository"
)

type fixture struct {
	svc   *Service
	clock *clock.FakeClock
}

func setupService(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.Trainer{}, &authdomain.Session{}))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))
	svc := &Service{
		db:          db,
		log:         zap.NewNop(),
		genID:       node,
		clock:       fake,
		trainerrepo: repository.ProvideStore[authdomain.Trainer](db),
		sessionrepo: repository.ProvideStore[authdomain.Session](db),
		sessionTTL:  24 * time.Hour,
	}
	return &fixture{svc: svc, clock: fake}
}

func (f *fixture) ensureTrainer(t *testing.T) *authdomain.Trainer {
	t.Helper()
	trainer, err := f.svc.EnsureTrainer(context.Background(), "Coach", "coach@example.com", "s3cret")
	require.NoError(t, err)
	return trainer
}

func TestLoginIssuesSession(t *testing.T) {
	f := setupService(t)
	trainer := f.ensureTrainer(t)

	resp, err := f.svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "Coach@Example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.Equal(t, trainer.ID, resp.Trainer.ID)
	require.NotEmpty(t, resp.Session.Token)
	require.Equal(t, f.clock.Now().Add(24*time.Hour), resp.Session.ExpiresAt)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := setupService(t)
	f.ensureTrainer(t)

	_, err := f.svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "coach@example.com",
		Password: "wrong",
	})
	require.True(t, errors.Is(err, authdomain.ErrInvalidCredentials))
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	f := setupService(t)

	_, err := f.svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})
	require.True(t, errors.Is(err, authdomain.ErrInvalidCredentials))
}

func TestAuthenticateResolvesTrainer(t *testing.T) {
	f := setupService(t)
	trainer := f.ensureTrainer(t)

	resp, err := f.svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "coach@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	got, err := f.svc.Authenticate(context.Background(), resp.Session.Token)
	require.NoError(t, err)
	require.Equal(t, trainer.ID, got.ID)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	f := setupService(t)
	f.ensureTrainer(t)

	resp, err := f.svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "coach@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)

	_, err = f.svc.Authenticate(context.Background(), resp.Session.Token)
	require.True(t, errors.Is(err, authdomain.ErrSessionExpired))
}

func TestAuthenticateRevokedSession(t *testing.T) {
	f := setupService(t)
	f.ensureTrainer(t)

	resp, err := f.svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "coach@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), resp.Session.Token))

	_, err = f.svc.Authenticate(context.Background(), resp.Session.Token)
	require.True(t, errors.Is(err, authdomain.ErrSessionRevoked))
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := setupService(t)
	f.ensureTrainer(t)

	resp, err := f.svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "coach@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), resp.Session.Token))
	require.NoError(t, f.svc.Logout(context.Background(), resp.Session.Token))
	require.NoError(t, f.svc.Logout(context.Background(), "unknown-token"))
}

func TestEnsureTrainerIsIdempotent(t *testing.T) {
	f := setupService(t)

	first, err := f.svc.EnsureTrainer(context.Background(), "Coach", "coach@example.com", "s3cret")
	require.NoError(t, err)

	second, err := f.svc.EnsureTrainer(context.Background(), "Coach", "COACH@example.com", "different")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}
