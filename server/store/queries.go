package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granazap/granazap/server/engine"
)

// FindOrCreate resolves a sender id to a user, creating one on first
// contact. A non-empty profile name refreshes the stored display name.
func (s *Store) FindOrCreate(ctx context.Context, senderID, profileName string) (engine.User, error) {
	var u engine.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, sender_id, name FROM users WHERE sender_id = ?`, senderID,
	).Scan(&u.ID, &u.SenderID, &u.Name)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO users (sender_id, name) VALUES (?, ?)`, senderID, profileName)
		if err != nil {
			return engine.User{}, fmt.Errorf("create user %q: %w", senderID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return engine.User{}, fmt.Errorf("user id for %q: %w", senderID, err)
		}
		return engine.User{ID: id, SenderID: senderID, Name: profileName}, nil

	case err != nil:
		return engine.User{}, fmt.Errorf("find user %q: %w", senderID, err)
	}

	if profileName != "" && profileName != u.Name {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE users SET name = ? WHERE id = ?`, profileName, u.ID); err != nil {
			return engine.User{}, fmt.Errorf("update name of user %d: %w", u.ID, err)
		}
		u.Name = profileName
	}
	return u, nil
}

// Save persists a parsed transaction. Amounts are stored as integer cents.
func (s *Store) Save(ctx context.Context, userID int64, tx engine.ParsedTransaction) (engine.StoredTransaction, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, amount_cents, category, description, date, payment_method)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, userID, toCents(tx.Amount), tx.Category, tx.Description, tx.Date, tx.PaymentMethod)
	if err != nil {
		return engine.StoredTransaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return engine.StoredTransaction{ID: id, ParsedTransaction: tx}, nil
}

// LastForUser fetches the sender's most recently created transaction, the
// one a category correction applies to.
func (s *Store) LastForUser(ctx context.Context, userID int64) (engine.StoredTransaction, bool, error) {
	var (
		tx    engine.StoredTransaction
		cents int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, category, description, date, payment_method
		 FROM transactions WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`, userID,
	).Scan(&tx.ID, &cents, &tx.Category, &tx.Description, &tx.Date, &tx.PaymentMethod)

	if errors.Is(err, sql.ErrNoRows) {
		return engine.StoredTransaction{}, false, nil
	}
	if err != nil {
		return engine.StoredTransaction{}, false, fmt.Errorf("last transaction of user %d: %w", userID, err)
	}
	tx.Amount = fromCents(cents)
	return tx, true, nil
}

// UpdateCategory re-categorizes a stored transaction.
func (s *Store) UpdateCategory(ctx context.Context, id, category string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category = ? WHERE id = ?`, category, id)
	if err != nil {
		return fmt.Errorf("update category of %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

// Summary aggregates a user's spending for the period ending at now, with
// a per-category breakdown ordered by total.
func (s *Store) Summary(ctx context.Context, userID int64, p engine.Period, now time.Time) (engine.Report, error) {
	start := periodStart(p, now)
	report := engine.Report{Period: p, Total: decimal.Zero}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents), COUNT(*)
		 FROM transactions WHERE user_id = ? AND date >= ?
		 GROUP BY category ORDER BY SUM(amount_cents) DESC`, userID, start)
	if err != nil {
		return engine.Report{}, fmt.Errorf("summary of user %d: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			cents    int64
			count    int
		)
		if err := rows.Scan(&category, &cents, &count); err != nil {
			return engine.Report{}, fmt.Errorf("scan summary row: %w", err)
		}
		total := fromCents(cents)
		report.ByCategory = append(report.ByCategory, engine.CategoryTotal{Category: category, Total: total})
		report.Total = report.Total.Add(total)
		report.Count += count
	}
	if err := rows.Err(); err != nil {
		return engine.Report{}, fmt.Errorf("summary rows: %w", err)
	}
	return report, nil
}

// periodStart maps a reporting window to its calendar start: today, the
// last 7 days, the current month or the current year.
func periodStart(p engine.Period, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case engine.PeriodDay:
		return today
	case engine.PeriodWeek:
		return today.AddDate(0, 0, -6)
	case engine.PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}
