// Package store provides a SQLite-backed history of past evaluations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/wealthyways/wealthyways/internal/advisor"
)

// Record is one stored evaluation.
type Record struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Snapshot  advisor.Snapshot `json:"snapshot"`
	Category  advisor.Category `json:"category"`
	Score     float64          `json:"score"`
	Tier      advisor.Tier     `json:"tier"`
	ModelPath string           `json:"model_path,omitempty"`
}

// NewRecord captures an evaluation outcome for storage.
func NewRecord(adv advisor.Advice, modelPath string) Record {
	return Record{
		Snapshot:  adv.Snapshot,
		Category:  adv.Category,
		Score:     adv.Score,
		Tier:      adv.Tier,
		ModelPath: modelPath,
	}
}

// History stores evaluations in SQLite.
type History struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Save stores r, filling in the ID and timestamp when they are empty, and
// returns the stored record.
func (h *History) Save(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	_, err := h.db.ExecContext(ctx, `INSERT INTO evaluations
		(id, created_at_ns, income, expenses, savings, debt, category, score, tier, model_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixNano(),
		r.Snapshot.Income, r.Snapshot.Expenses, r.Snapshot.Savings, r.Snapshot.Debt,
		string(r.Category), r.Score, string(r.Tier), r.ModelPath,
	)
	if err != nil {
		return Record{}, fmt.Errorf("saving evaluation: %w", err)
	}
	return r, nil
}

// Recent returns up to limit records, newest first. A limit <= 0 returns all.
func (h *History) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := h.db.QueryContext(ctx, `SELECT
		id, created_at_ns, income, expenses, savings, debt, category, score, tier, model_path
		FROM evaluations
		ORDER BY created_at_ns DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		var createdNs int64
		var category, tier string
		var modelPath sql.NullString

		err := rows.Scan(&r.ID, &createdNs,
			&r.Snapshot.Income, &r.Snapshot.Expenses, &r.Snapshot.Savings, &r.Snapshot.Debt,
			&category, &r.Score, &tier, &modelPath)
		if err != nil {
			return nil, err
		}

		r.CreatedAt = time.Unix(0, createdNs).UTC()
		r.Category = advisor.Category(category)
		r.Tier = advisor.Tier(tier)
		if modelPath.Valid {
			r.ModelPath = modelPath.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountByCategory returns how many stored evaluations fell in each category.
func (h *History) CountByCategory(ctx context.Context) (map[advisor.Category]int, error) {
	rows, err := h.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM evaluations GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("counting history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[advisor.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		counts[advisor.Category(category)] = n
	}
	return counts, rows.Err()
}

// Clear deletes every stored evaluation and reports how many were removed.
func (h *History) Clear(ctx context.Context) (int64, error) {
	res, err := h.db.ExecContext(ctx, "DELETE FROM evaluations")
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}
