package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportedTransaction is the flat row shape used by the JSON export and
// import endpoints, keyed by sender id so a restore can rebuild users.
type ExportedTransaction struct {
	ID            string    `json:"id"`
	SenderID      string    `json:"sender_id"`
	AmountCents   int64     `json:"amount_cents"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"payment_method"`
}

// CountTransactions reports the total number of stored transactions.
func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// ExportTransactions returns every stored transaction joined with its
// sender id, oldest first.
func (s *Store) ExportTransactions(ctx context.Context) ([]ExportedTransaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, u.sender_id, t.amount_cents, t.category, t.description, t.date, t.payment_method
		 FROM transactions t JOIN users u ON u.id = t.user_id
		 ORDER BY t.created_at, t.rowid`)
	if err != nil {
		return nil, fmt.Errorf("export transactions: %w", err)
	}
	defer rows.Close()

	var out []ExportedTransaction
	for rows.Next() {
		var t ExportedTransaction
		if err := rows.Scan(&t.ID, &t.SenderID, &t.AmountCents, &t.Category, &t.Description, &t.Date, &t.PaymentMethod); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ImportTransaction restores one exported row, creating the user if
// needed. A row without an id gets a fresh one.
func (s *Store) ImportTransaction(ctx context.Context, t ExportedTransaction) error {
	user, err := s.FindOrCreate(ctx, t.SenderID, "")
	if err != nil {
		return err
	}
	id := t.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, amount_cents, category, description, date, payment_method)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, user.ID, t.AmountCents, t.Category, t.Description, t.Date, t.PaymentMethod)
	if err != nil {
		return fmt.Errorf("import transaction %s: %w", id, err)
	}
	return nil
}
