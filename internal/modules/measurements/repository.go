// Package measurements stores and serves raw measurements.
package measurements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/dailychart/internal/database"
	"github.com/aristath/dailychart/internal/domain"
	"github.com/rs/zerolog"
)

// ErrUnknownField is returned when a filter names a column that is not a date column
var ErrUnknownField = errors.New("unknown date field")

// dateColumns whitelists the fields a DateFilter may reference
var dateColumns = map[string]string{
	"date":       "date",
	"created_at": "created_at",
}

// Repository persists measurements in SQLite. Dates are stored as unix seconds.
type Repository struct {
	db  *sql.DB
	now func() time.Time
	log zerolog.Logger
}

// NewRepository creates a new measurements repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		now: time.Now,
		log: log.With().Str("repo", "measurements").Logger(),
	}
}

// Query returns measurements matching filter, ordered by date
func (r *Repository) Query(ctx context.Context, filter domain.DateFilter, order domain.SortOrder) ([]domain.Measurement, error) {
	column, ok := dateColumns[filter.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, filter.Field)
	}

	direction := "DESC"
	if order == domain.SortDateAscending {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, date, value
		FROM measurements
		WHERE %s >= ? AND %s < ?
		ORDER BY date %s, id
	`, column, column, direction)

	rows, err := r.db.QueryContext(ctx, query, filter.From.Unix(), filter.To.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var out []domain.Measurement
	for rows.Next() {
		var m domain.Measurement
		var dateUnix int64
		if err := rows.Scan(&m.ID, &dateUnix, &m.Value); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		m.Date = time.Unix(dateUnix, 0)
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating measurements: %w", err)
	}

	return out, nil
}

// Insert stores a single measurement
func (r *Repository) Insert(ctx context.Context, m domain.Measurement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO measurements (id, date, value, created_at)
		VALUES (?, ?, ?, ?)
	`, m.ID, m.Date.Unix(), m.Value, r.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert measurement %s: %w", m.ID, err)
	}
	return nil
}

// InsertBatch stores measurements in one transaction; either all or none are saved
func (r *Repository) InsertBatch(ctx context.Context, ms []domain.Measurement) error {
	if len(ms) == 0 {
		return nil
	}

	createdAt := r.now().Unix()
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO measurements (id, date, value, created_at)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, m := range ms {
			if _, err := stmt.ExecContext(ctx, m.ID, m.Date.Unix(), m.Value, createdAt); err != nil {
				return fmt.Errorf("failed to insert measurement %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

// Count returns the number of stored measurements
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM measurements`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count measurements: %w", err)
	}
	return count, nil
}

// DeleteBefore removes measurements dated strictly before cutoff
func (r *Repository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE date < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete measurements: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	r.log.Debug().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Deleted old measurements")
	return deleted, nil
}
