package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	appModels "github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

type personStore interface {
	Create(ctx context.Context, person *appModels.Person) (int64, error)
	GetByGameName(ctx context.Context, gameName string) (*appModels.Person, error)
}

type seasonStore interface {
	Create(ctx context.Context, season *appModels.Season) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
}

// Options selects what CreateDefaultData puts in place.
type Options struct {
	AdminGameName string
	AdminPassword string
	CreateSeason  bool
}

// CreateDefaultData creates the admin person and a first active season when they
// are missing. Running it again changes nothing. Errors are collected, not fatal.
func CreateDefaultData(ctx context.Context, people personStore, seasons seasonStore, hasher passwordHasher, clock clockwork.Clock, opts Options) error {
	lgr := logger.Ctx(ctx)
	lgr.Info().Msg("Checking/Creating default data (admin, season)...")

	var finalErr error

	if opts.AdminGameName != "" {
		if err := ensureAdmin(ctx, people, hasher, opts); err != nil {
			lgr.Error().Err(err).Msg("Error creating default admin person")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if opts.CreateSeason {
		if err := ensureSeason(ctx, seasons, clock); err != nil {
			lgr.Error().Err(err).Msg("Error creating initial season")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func ensureAdmin(ctx context.Context, people personStore, hasher passwordHasher, opts Options) error {
	_, err := people.GetByGameName(ctx, opts.AdminGameName)
	if err == nil {
		logger.Ctx(ctx).Info().Str("gameName", opts.AdminGameName).Msg("Admin person already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrPersonNotFound) {
		return err
	}

	admin := &appModels.Person{
		GameName: opts.AdminGameName,
		Name:     "Administrator",
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}
	if opts.AdminPassword != "" {
		hash, err := hasher.Hash(opts.AdminPassword)
		if err != nil {
			return err
		}
		admin.PasswordHash = hash
	}

	adminID, err := people.Create(ctx, admin)
	if err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int64("adminID", adminID).Msg("Default admin person created successfully")
	return nil
}

// ensureSeason only acts on an empty seasons table so that a deliberately
// deactivated history is left alone.
func ensureSeason(ctx context.Context, seasons seasonStore, clock clockwork.Clock) error {
	total, err := seasons.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	now := clock.Now().UTC()
	season := &appModels.Season{
		StartDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	seasonID, err := seasons.Create(ctx, season)
	if err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int64("seasonID", seasonID).Msg("Initial season created")
	return nil
}
