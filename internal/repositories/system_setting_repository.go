package repositories

import (
	"context"

	"garment-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SystemSettingRepository struct {
	DB *pgxpool.Pool
}

func NewSystemSettingRepository(db *pgxpool.Pool) *SystemSettingRepository {
	return &SystemSettingRepository{DB: db}
}

// Get returns pgx.ErrNoRows when the key is not stored
func (r *SystemSettingRepository) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	query := `
		SELECT id, setting_key, setting_value, COALESCE(description, ''), updated_at
		FROM system_settings
		WHERE setting_key = $1
	`

	setting := &models.SystemSetting{}
	err := r.DB.QueryRow(ctx, query, key).Scan(
		&setting.ID,
		&setting.SettingKey,
		&setting.SettingValue,
		&setting.Description,
		&setting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return setting, nil
}

func (r *SystemSettingRepository) List(ctx context.Context) ([]*models.SystemSetting, error) {
	query := `
		SELECT id, setting_key, setting_value, COALESCE(description, ''), updated_at
		FROM system_settings
		ORDER BY setting_key
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []*models.SystemSetting{}
	for rows.Next() {
		setting := &models.SystemSetting{}
		err := rows.Scan(
			&setting.ID,
			&setting.SettingKey,
			&setting.SettingValue,
			&setting.Description,
			&setting.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	return settings, rows.Err()
}

// Upsert creates a new setting or updates an existing one
func (r *SystemSettingRepository) Upsert(ctx context.Context, key, value, description string) (*models.SystemSetting, error) {
	query := `
		INSERT INTO system_settings (setting_key, setting_value, description, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = $2,
			description = COALESCE(NULLIF($3, ''), system_settings.description),
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, setting_key, setting_value, COALESCE(description, ''), updated_at
	`

	setting := &models.SystemSetting{}
	err := r.DB.QueryRow(ctx, query, key, value, description).Scan(
		&setting.ID,
		&setting.SettingKey,
		&setting.SettingValue,
		&setting.Description,
		&setting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return setting, nil
}
