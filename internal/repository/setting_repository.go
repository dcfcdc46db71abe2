package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// SettingRepository encapsulates key/value settings persistence.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
	List(ctx context.Context) ([]domain.Setting, error)
}

type settingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository instantiates repository.
func NewSettingRepository(pool *pgxpool.Pool) SettingRepository {
	return &settingRepository{pool: pool}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	const query = `SELECT id, key, value, type, updated_at FROM settings WHERE key=$1`

	var setting domain.Setting
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&setting.ID,
		&setting.Key,
		&setting.Value,
		&setting.Type,
		&setting.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	const query = `
        INSERT INTO settings (key, value, type)
        VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, type=EXCLUDED.type, updated_at=NOW()
        RETURNING id, updated_at`

	return r.pool.QueryRow(ctx, query,
		setting.Key,
		setting.Value,
		setting.Type,
	).Scan(&setting.ID, &setting.UpdatedAt)
}

func (r *settingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	const query = `SELECT id, key, value, type, updated_at FROM settings ORDER BY key`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Setting
	for rows.Next() {
		var setting domain.Setting
		if err := rows.Scan(
			&setting.ID,
			&setting.Key,
			&setting.Value,
			&setting.Type,
			&setting.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, setting)
	}
	return result, rows.Err()
}
