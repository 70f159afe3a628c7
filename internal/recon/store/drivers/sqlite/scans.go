package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

type scanRow struct {
	ID           string `db:"id"`
	URLOrIP      string `db:"url_or_ip"`
	ScanType     string `db:"scan_type"`
	ScanCategory string `db:"scan_category"`
	ScanResults  string `db:"scan_results"`
	UserID       string `db:"user_id"`
	CreatedAt    int64  `db:"created_at"`
}

func (r scanRow) domain() domain.ScanRecord {
	return domain.ScanRecord{
		ID:           r.ID,
		URLOrIP:      r.URLOrIP,
		ScanType:     domain.ScanType(r.ScanType),
		ScanCategory: domain.ScanCategory(r.ScanCategory),
		Results:      json.RawMessage(r.ScanResults),
		UserID:       r.UserID,
		CreatedAt:    fromMillis(r.CreatedAt),
	}
}

const scanColumns = `id, url_or_ip, scan_type, scan_category, scan_results, user_id, created_at`

type scansRepo struct {
	q querier
}

func (r *scansRepo) CreateScan(ctx context.Context, s domain.ScanRecord) error {
	results := string(s.Results)
	if results == "" {
		results = "null"
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO scans (`+scanColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.URLOrIP, string(s.ScanType), string(s.ScanCategory), results, s.UserID, toMillis(s.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *scansRepo) GetScan(ctx context.Context, id string) (domain.ScanRecord, error) {
	var row scanRow
	if err := r.q.GetContext(ctx, &row, `SELECT `+scanColumns+` FROM scans WHERE id = ?`, id); err != nil {
		return domain.ScanRecord{}, mapNotFound(err)
	}
	return row.domain(), nil
}

func (r *scansRepo) ListScans(ctx context.Context, f domain.ScanFilter) ([]domain.ScanRecord, error) {
	var (
		where []string
		args  []any
	)
	if f.ScanType != nil {
		where = append(where, "scan_type = ?")
		args = append(args, string(*f.ScanType))
	}
	if f.ScanCategory != nil {
		where = append(where, "scan_category = ?")
		args = append(args, string(*f.ScanCategory))
	}
	if f.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *f.UserID)
	}

	query := `SELECT ` + scanColumns + ` FROM scans`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	// ULIDs sort by creation time, which breaks ties within a millisecond.
	query += ` ORDER BY created_at DESC, id DESC`

	var rows []scanRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.ScanRecord, len(rows))
	for i, row := range rows {
		out[i] = row.domain()
	}
	return out, nil
}

func (r *scansRepo) CountScans(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.GetContext(ctx, &n, `SELECT COUNT(*) FROM scans`)
	return n, err
}
