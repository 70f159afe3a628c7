package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

type logRow struct {
	ID        string         `db:"id"`
	Action    string         `db:"action"`
	UserID    sql.NullString `db:"user_id"`
	Timestamp int64          `db:"timestamp"`
}

type logsRepo struct {
	q querier
}

func (r *logsRepo) CreateLog(ctx context.Context, e domain.LogEntry) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO logs (id, action, user_id, timestamp) VALUES (?, ?, ?, ?)`,
		e.ID, e.Action, toNullString(e.UserID), toMillis(e.Timestamp),
	)
	return mapConstraint(err)
}

func (r *logsRepo) ListLogs(ctx context.Context, f domain.LogFilter) ([]domain.LogEntry, error) {
	query := `SELECT id, action, user_id, timestamp FROM logs`
	var args []any
	if f.UserID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *f.UserID)
	}
	query += ` ORDER BY timestamp DESC, id DESC`

	var rows []logRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.LogEntry, len(rows))
	for i, row := range rows {
		out[i] = domain.LogEntry{
			ID:        row.ID,
			Action:    row.Action,
			UserID:    fromNullString(row.UserID),
			Timestamp: fromMillis(row.Timestamp),
		}
	}
	return out, nil
}
