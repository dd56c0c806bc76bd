package repositories

import (
	"context"

	"garment-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SaveLogRepository struct {
	DB *pgxpool.Pool
}

func NewSaveLogRepository(db *pgxpool.Pool) *SaveLogRepository {
	return &SaveLogRepository{DB: db}
}

// Create records one worksheet save attempt
func (r *SaveLogRepository) Create(ctx context.Context, log *models.WorksheetSaveLog) error {
	query := `
		INSERT INTO worksheet_save_logs (
			save_id, work_date, sections, total_present_workers, total_ot_hours,
			salary_grand_total, outcome, error_message, archive_key, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NOW())
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		log.SaveID, log.WorkDate, log.Sections, log.TotalPresentWorkers, log.TotalOtHours,
		log.SalaryGrandTotal, log.Outcome, log.ErrorMessage, log.ArchiveKey,
	).Scan(&log.ID, &log.CreatedAt)
}

// ListByDate returns the save attempts of one work date, newest first.
// An empty date lists the latest attempts across all dates.
func (r *SaveLogRepository) ListByDate(ctx context.Context, date string, limit int) ([]*models.WorksheetSaveLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, save_id, to_char(work_date, 'YYYY-MM-DD'), sections, total_present_workers,
			total_ot_hours, salary_grand_total, outcome,
			COALESCE(error_message, ''), COALESCE(archive_key, ''), created_at
		FROM worksheet_save_logs
		WHERE ($1::text = '' OR work_date = NULLIF($1::text, '')::date)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.Query(ctx, query, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.WorksheetSaveLog{}
	for rows.Next() {
		log := &models.WorksheetSaveLog{}
		err := rows.Scan(
			&log.ID,
			&log.SaveID,
			&log.WorkDate,
			&log.Sections,
			&log.TotalPresentWorkers,
			&log.TotalOtHours,
			&log.SalaryGrandTotal,
			&log.Outcome,
			&log.ErrorMessage,
			&log.ArchiveKey,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
