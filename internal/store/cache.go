// Package store provides a SQLite-backed cache of the last fetched
// receipts and budgets, so pages can keep rendering stale data when the
// API is unreachable.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pantry/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache is the local read-through copy of server data.
type Cache struct {
	db *sql.DB
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "pantry")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "pantry")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "pantry.db")
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveReceipts replaces the cached receipt set wholesale.
func (c *Cache) SaveReceipts(receipts []model.Receipt) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM receipt_items"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM receipts"); err != nil {
		return err
	}

	for _, r := range receipts {
		_, err := tx.Exec(`INSERT INTO receipts
			(id, store_name, purchase_date, total_amount, status, image_url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.StoreName, r.PurchaseDate.UTC().Format(time.RFC3339),
			r.TotalAmount, string(r.Status), r.ImageURL,
			timeOrEmpty(r.CreatedAt), timeOrEmpty(r.UpdatedAt),
		)
		if err != nil {
			return err
		}

		for _, item := range r.Items {
			_, err := tx.Exec(`INSERT INTO receipt_items
				(id, receipt_id, name, quantity, unit_price, total_price, category)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				item.ID, r.ID, item.Name, item.Quantity,
				item.UnitPrice, item.TotalPrice, item.Category,
			)
			if err != nil {
				return err
			}
		}
	}

	if err := touchResource(tx, "receipts"); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadReceipts reads the cached receipts and when they were fetched.
func (c *Cache) LoadReceipts() ([]model.Receipt, time.Time, error) {
	fetchedAt, err := c.resourceFetchedAt("receipts")
	if err != nil {
		return nil, time.Time{}, err
	}

	rows, err := c.db.Query(`SELECT
		id, store_name, purchase_date, total_amount, status, image_url, created_at, updated_at
		FROM receipts`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = rows.Close() }()

	var receipts []model.Receipt
	for rows.Next() {
		var r model.Receipt
		var purchased, status string
		var imageURL, createdAt, updatedAt sql.NullString

		err := rows.Scan(&r.ID, &r.StoreName, &purchased, &r.TotalAmount,
			&status, &imageURL, &createdAt, &updatedAt)
		if err != nil {
			return nil, time.Time{}, err
		}

		r.Status = model.ReceiptStatus(status)
		r.PurchaseDate, _ = time.Parse(time.RFC3339, purchased)
		if imageURL.Valid {
			r.ImageURL = imageURL.String
		}
		if createdAt.Valid && createdAt.String != "" {
			r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt.String)
		}
		if updatedAt.Valid && updatedAt.String != "" {
			r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	// Batch-load line items
	itemRows, err := c.db.Query(`SELECT
		id, receipt_id, name, quantity, unit_price, total_price, category
		FROM receipt_items`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = itemRows.Close() }()

	receiptIdx := make(map[string]int)
	for i, r := range receipts {
		receiptIdx[r.ID] = i
	}

	for itemRows.Next() {
		var item model.ReceiptItem
		var receiptID string
		var category sql.NullString
		err := itemRows.Scan(&item.ID, &receiptID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice, &category)
		if err != nil {
			return nil, time.Time{}, err
		}
		if category.Valid {
			item.Category = category.String
		}
		if idx, ok := receiptIdx[receiptID]; ok {
			receipts[idx].Items = append(receipts[idx].Items, item)
		}
	}

	return receipts, fetchedAt, itemRows.Err()
}

// SaveBudgets replaces the cached budget set wholesale.
func (c *Cache) SaveBudgets(budgets []model.Budget) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM budgets"); err != nil {
		return err
	}

	for _, b := range budgets {
		endDate := ""
		if b.EndDate != nil {
			endDate = b.EndDate.UTC().Format(time.RFC3339)
		}
		_, err := tx.Exec(`INSERT INTO budgets
			(id, category, amount, period, start_date, end_date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.Category, b.Amount, string(b.Period),
			b.StartDate.UTC().Format(time.RFC3339), endDate,
		)
		if err != nil {
			return err
		}
	}

	if err := touchResource(tx, "budgets"); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadBudgets reads the cached budgets and when they were fetched.
func (c *Cache) LoadBudgets() ([]model.Budget, time.Time, error) {
	fetchedAt, err := c.resourceFetchedAt("budgets")
	if err != nil {
		return nil, time.Time{}, err
	}

	rows, err := c.db.Query(`SELECT id, category, amount, period, start_date, end_date FROM budgets`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var period, startDate string
		var endDate sql.NullString

		if err := rows.Scan(&b.ID, &b.Category, &b.Amount, &period, &startDate, &endDate); err != nil {
			return nil, time.Time{}, err
		}

		b.Period = model.BudgetPeriod(period)
		b.StartDate, _ = time.Parse(time.RFC3339, startDate)
		if endDate.Valid && endDate.String != "" {
			t, err := time.Parse(time.RFC3339, endDate.String)
			if err == nil {
				b.EndDate = &t
			}
		}
		budgets = append(budgets, b)
	}

	return budgets, fetchedAt, rows.Err()
}

func touchResource(tx *sql.Tx, resource string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.Exec(`INSERT OR REPLACE INTO fetch_meta (resource, fetched_at)
		VALUES (?, ?)`, resource, now)
	return err
}

func (c *Cache) resourceFetchedAt(resource string) (time.Time, error) {
	var fetched string
	err := c.db.QueryRow("SELECT fetched_at FROM fetch_meta WHERE resource = ?", resource).Scan(&fetched)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse(time.RFC3339, fetched)
	return t, nil
}

func timeOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
