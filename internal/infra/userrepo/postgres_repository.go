package userrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yijuchen/cwabot/internal/domain/user"
)

// PostgresRepository persists user profiles in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get fetches a profile by LINE user ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (user.Profile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT line_user_id, default_city, state,
		       daily_push, weekend_push, typhoon_push,
		       last_typhoon_id, created_at, updated_at
		FROM user_profiles
		WHERE line_user_id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return user.Profile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return user.Profile{}, false, rows.Err()
	}
	profile, err := scanProfile(rows)
	if err != nil {
		return user.Profile{}, false, err
	}
	return profile, true, rows.Err()
}

// Upsert stores the profile, inserting on first contact.
func (r *PostgresRepository) Upsert(ctx context.Context, profile user.Profile) (user.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles
			(line_user_id, default_city, state,
			 daily_push, weekend_push, typhoon_push, last_typhoon_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (line_user_id) DO UPDATE SET
			default_city    = EXCLUDED.default_city,
			state           = EXCLUDED.state,
			daily_push      = EXCLUDED.daily_push,
			weekend_push    = EXCLUDED.weekend_push,
			typhoon_push    = EXCLUDED.typhoon_push,
			last_typhoon_id = EXCLUDED.last_typhoon_id,
			updated_at      = now()
		RETURNING line_user_id, default_city, state,
		          daily_push, weekend_push, typhoon_push,
		          last_typhoon_id, created_at, updated_at
	`, profile.ID, profile.DefaultCity, profile.State,
		profile.DailyPush, profile.WeekendPush, profile.TyphoonPush, profile.LastTyphoonID)
	return scanProfile(row)
}

// PushTargets lists the profiles subscribed to one push stream.
func (r *PostgresRepository) PushTargets(ctx context.Context, kind user.PushKind) ([]user.Profile, error) {
	var column string
	switch kind {
	case user.PushDaily:
		column = "daily_push"
	case user.PushWeekend:
		column = "weekend_push"
	case user.PushTyphoon:
		column = "typhoon_push"
	default:
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT line_user_id, default_city, state,
		       daily_push, weekend_push, typhoon_push,
		       last_typhoon_id, created_at, updated_at
		FROM user_profiles
		WHERE `+column+` = TRUE
		ORDER BY line_user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []user.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, profile)
	}
	return targets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (user.Profile, error) {
	var profile user.Profile
	if err := row.Scan(
		&profile.ID, &profile.DefaultCity, &profile.State,
		&profile.DailyPush, &profile.WeekendPush, &profile.TyphoonPush,
		&profile.LastTyphoonID, &profile.CreatedAt, &profile.UpdatedAt,
	); err != nil {
		return user.Profile{}, err
	}
	profile.CreatedAt = profile.CreatedAt.UTC()
	profile.UpdatedAt = profile.UpdatedAt.UTC()
	return profile, nil
}

var _ user.Repository = (*PostgresRepository)(nil)
