package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"

	"github.com/yijuchen/cwabot/internal/domain/place"
)

// Repository persists profiles.
type Repository interface {
	Get(ctx context.Context, id string) (Profile, bool, error)
	Upsert(ctx context.Context, profile Profile) (Profile, error)
	// PushTargets lists every profile subscribed to the given stream.
	PushTargets(ctx context.Context, kind PushKind) ([]Profile, error)
}

// Service exposes the user-facing settings operations.
type Service interface {
	Profile(ctx context.Context, id string) (Profile, error)
	SetDefaultCity(ctx context.Context, id, city string) (Profile, error)
	BeginCitySelection(ctx context.Context, id string) error
	ClearState(ctx context.Context, id string) error
	SetPush(ctx context.Context, id string, kind PushKind, enabled bool) (Profile, error)
	MarkTyphoonPushed(ctx context.Context, id, typhoonID string) error
	PushTargets(ctx context.Context, kind PushKind) ([]Profile, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds the user settings service.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "user_service"),
		now:    time.Now,
	}
}

// Profile loads the stored profile, or a fresh one for first contact.
func (s *service) Profile(ctx context.Context, id string) (Profile, error) {
	profile, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Profile{}, apperrors.Wrap("user_store_error", "load profile", err)
	}
	if !ok {
		return Profile{ID: id}, nil
	}
	return profile, nil
}

func (s *service) SetDefaultCity(ctx context.Context, id, city string) (Profile, error) {
	normalized := place.Normalize(city)
	if !place.IsValid(normalized) {
		return Profile{}, apperrors.Wrap("place_invalid", fmt.Sprintf("unknown city %q", city), nil)
	}
	profile, err := s.Profile(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	profile.DefaultCity = normalized
	profile.State = ""
	profile.UpdatedAt = s.now()
	saved, err := s.repo.Upsert(ctx, profile)
	if err != nil {
		return Profile{}, apperrors.Wrap("user_store_error", "save default city", err)
	}
	s.logger.Info("default city updated", "user", id, "city", normalized)
	return saved, nil
}

func (s *service) BeginCitySelection(ctx context.Context, id string) error {
	return s.setState(ctx, id, StateAwaitingCity)
}

func (s *service) ClearState(ctx context.Context, id string) error {
	return s.setState(ctx, id, "")
}

func (s *service) setState(ctx context.Context, id, state string) error {
	profile, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	profile.State = state
	profile.UpdatedAt = s.now()
	if _, err := s.repo.Upsert(ctx, profile); err != nil {
		return apperrors.Wrap("user_store_error", "save state", err)
	}
	return nil
}

func (s *service) SetPush(ctx context.Context, id string, kind PushKind, enabled bool) (Profile, error) {
	profile, err := s.Profile(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	switch kind {
	case PushDaily:
		profile.DailyPush = enabled
	case PushWeekend:
		profile.WeekendPush = enabled
	case PushTyphoon:
		profile.TyphoonPush = enabled
	default:
		return Profile{}, apperrors.Wrap("push_invalid", fmt.Sprintf("unknown push kind %q", kind), nil)
	}
	profile.UpdatedAt = s.now()
	saved, err := s.repo.Upsert(ctx, profile)
	if err != nil {
		return Profile{}, apperrors.Wrap("user_store_error", "save push setting", err)
	}
	s.logger.Info("push setting updated", "user", id, "kind", string(kind), "enabled", enabled)
	return saved, nil
}

func (s *service) MarkTyphoonPushed(ctx context.Context, id, typhoonID string) error {
	profile, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	profile.LastTyphoonID = typhoonID
	profile.UpdatedAt = s.now()
	if _, err := s.repo.Upsert(ctx, profile); err != nil {
		return apperrors.Wrap("user_store_error", "save typhoon marker", err)
	}
	return nil
}

func (s *service) PushTargets(ctx context.Context, kind PushKind) ([]Profile, error) {
	targets, err := s.repo.PushTargets(ctx, kind)
	if err != nil {
		return nil, apperrors.Wrap("user_store_error", "list push targets", err)
	}
	return targets, nil
}
