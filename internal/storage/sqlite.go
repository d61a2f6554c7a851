package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Campaign is one persisted campaign row. The derived metric columns
// are written at creation time; readers that need fresh values
// recompute them from the raw counters instead of trusting the columns.
type Campaign struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Budget         float64   `json:"budget"`
	Impressions    int64     `json:"impressions"`
	Clicks         int64     `json:"clicks"`
	Conversions    int64     `json:"conversions"`
	CTR            float64   `json:"ctr"`
	CPC            float64   `json:"cpc"`
	ConversionRate float64   `json:"conversion_rate"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store provides SQLite-backed campaign persistence.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) and migrates the campaign database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS campaigns (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			name            TEXT NOT NULL,
			budget          REAL NOT NULL,
			impressions     INTEGER NOT NULL,
			clicks          INTEGER NOT NULL,
			conversions     INTEGER NOT NULL,
			ctr             REAL NOT NULL DEFAULT 0,
			cpc             REAL NOT NULL DEFAULT 0,
			conversion_rate REAL NOT NULL DEFAULT 0,
			status          TEXT NOT NULL DEFAULT 'active',
			created_at      INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS performance_logs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			campaign_id INTEGER NOT NULL REFERENCES campaigns(id),
			metric      TEXT NOT NULL,
			value       REAL NOT NULL,
			logged_at   INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_performance_logs_campaign
			ON performance_logs(campaign_id);
	`)
	return err
}

// CreateCampaign inserts a campaign and an initial performance log row
// per derived metric, in one transaction.
func (s *Store) CreateCampaign(ctx context.Context, c Campaign) (Campaign, error) {
	if c.Status == "" {
		c.Status = "active"
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Campaign{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO campaigns (name, budget, impressions, clicks, conversions, ctr, cpc, conversion_rate, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Budget, c.Impressions, c.Clicks, c.Conversions,
		c.CTR, c.CPC, c.ConversionRate, c.Status, c.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Campaign{}, fmt.Errorf("insert campaign: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return Campaign{}, fmt.Errorf("last insert id: %w", err)
	}

	now := c.CreatedAt.UnixMilli()
	for metric, value := range map[string]float64{
		"ctr":             c.CTR,
		"cpc":             c.CPC,
		"conversion_rate": c.ConversionRate,
	} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO performance_logs (campaign_id, metric, value, logged_at)
			VALUES (?, ?, ?, ?)`,
			c.ID, metric, value, now,
		); err != nil {
			return Campaign{}, fmt.Errorf("insert performance log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Campaign{}, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

const campaignColumns = `id, name, budget, impressions, clicks, conversions, ctr, cpc, conversion_rate, status, created_at`

// ListCampaigns returns all campaigns, newest first.
func (s *Store) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	defer rows.Close()

	var out []Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return out, nil
}

// GetCampaign loads one campaign by id. The second return reports
// whether the row exists.
func (s *Store) GetCampaign(ctx context.Context, id int64) (Campaign, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE id = ?`, id)

	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return Campaign{}, false, nil
	}
	if err != nil {
		return Campaign{}, false, err
	}
	return c, true, nil
}

// DeleteCampaign removes a campaign and its performance logs. It
// reports whether the campaign existed.
func (s *Store) DeleteCampaign(ctx context.Context, id int64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM performance_logs WHERE campaign_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete performance logs: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return n > 0, nil
}

// CountCampaigns returns the number of stored campaigns.
func (s *Store) CountCampaigns(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count campaigns: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (Campaign, error) {
	var c Campaign
	var createdAt int64
	err := row.Scan(
		&c.ID, &c.Name, &c.Budget,
		&c.Impressions, &c.Clicks, &c.Conversions,
		&c.CTR, &c.CPC, &c.ConversionRate,
		&c.Status, &createdAt,
	)
	if err == sql.ErrNoRows {
		return Campaign{}, err
	}
	if err != nil {
		return Campaign{}, fmt.Errorf("scan campaign: %w", err)
	}
	c.CreatedAt = time.UnixMilli(createdAt).UTC()
	return c, nil
}
