package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RawMessage is one inbound chat message. Created per webhook call,
// discarded after the reply is produced.
type RawMessage struct {
	Text        string
	SenderID    string
	ProfileName string
}

// User is the sender identity resolved by the user directory.
type User struct {
	ID       int64
	SenderID string
	Name     string
}

// StoredTransaction is a persisted transaction as the store reports it
// back, identifier included so replies can reference it.
type StoredTransaction struct {
	ID string
	ParsedTransaction
}

// CategoryTotal is one line of a report breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Report is the aggregate the report generator hands back for formatting.
type Report struct {
	Period     Period
	Total      decimal.Decimal
	Count      int
	ByCategory []CategoryTotal
}

// UserDirectory resolves sender ids to users.
type UserDirectory interface {
	FindOrCreate(ctx context.Context, senderID, profileName string) (User, error)
}

// TransactionStore persists transactions. The engine never writes records
// itself; it hands ParsedTransactions to this collaborator.
type TransactionStore interface {
	Save(ctx context.Context, userID int64, tx ParsedTransaction) (StoredTransaction, error)
	LastForUser(ctx context.Context, userID int64) (StoredTransaction, bool, error)
	UpdateCategory(ctx context.Context, id, category string) error
}

// ReportGenerator aggregates spending for a period ending at now.
type ReportGenerator interface {
	Summary(ctx context.Context, userID int64, p Period, now time.Time) (Report, error)
}

// Engine routes messages and extracts transactions. All per-message state
// is local; the dictionaries are read-only, so a single Engine serves
// concurrent callers. Per-sender ordering (a correction applying to the
// immediately preceding transaction) is the caller's responsibility.
type Engine struct {
	dict    *Dictionaries
	users   UserDirectory
	store   TransactionStore
	reports ReportGenerator
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's notion of now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an Engine over immutable dictionaries and its collaborators.
func New(dict *Dictionaries, users UserDirectory, store TransactionStore, reports ReportGenerator, opts ...Option) *Engine {
	e := &Engine{
		dict:    dict,
		users:   users,
		store:   store,
		reports: reports,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of processing one message: the reply to send back
// and, when a transaction was extracted and saved, the stored record.
type Result struct {
	Reply       string
	Intent      Intent
	Transaction *StoredTransaction
}

// Process handles one message end to end: resolve the sender, route the
// text to an intent, run the matching handler and format the reply.
// Unparseable input is a normal outcome, answered with a usage prompt;
// only collaborator failures surface as errors.
func (e *Engine) Process(ctx context.Context, msg RawMessage) (Result, error) {
	user, err := e.users.FindOrCreate(ctx, msg.SenderID, msg.ProfileName)
	if err != nil {
		return Result{}, fmt.Errorf("resolve sender %q: %w", msg.SenderID, err)
	}

	intent := e.DetectIntent(Normalize(msg.Text))
	res := Result{Intent: intent}

	switch intent.Kind {
	case IntentGreeting:
		res.Reply = FormatGreeting(user.Name)

	case IntentHelp:
		res.Reply = FormatHelp()

	case IntentSummary:
		report, err := e.reports.Summary(ctx, user.ID, intent.Period, e.now())
		if err != nil {
			return Result{}, fmt.Errorf("summary for user %d: %w", user.ID, err)
		}
		res.Reply = FormatReport(report)

	case IntentCorrection:
		reply, err := e.applyCorrection(ctx, user.ID, intent)
		if err != nil {
			return Result{}, err
		}
		res.Reply = reply

	case IntentTransaction:
		tx, ok := e.ParseTransaction(msg.Text)
		if !ok {
			res.Reply = FormatNoTransaction()
			break
		}
		saved, err := e.store.Save(ctx, user.ID, tx)
		if err != nil {
			return Result{}, fmt.Errorf("save transaction for user %d: %w", user.ID, err)
		}
		res.Transaction = &saved
		res.Reply = FormatConfirmation(saved.ParsedTransaction)
	}

	return res, nil
}

// applyCorrection re-categorizes the sender's most recent transaction. An
// unknown category performs no mutation and answers with the valid set.
func (e *Engine) applyCorrection(ctx context.Context, userID int64, intent Intent) (string, error) {
	if intent.Category == "" {
		return FormatUnknownCategory(intent.Raw, e.dict.CategoryNames()), nil
	}

	last, found, err := e.store.LastForUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("last transaction for user %d: %w", userID, err)
	}
	if !found {
		return FormatNothingToCorrect(), nil
	}

	if err := e.store.UpdateCategory(ctx, last.ID, intent.Category); err != nil {
		return "", fmt.Errorf("update category of %s: %w", last.ID, err)
	}
	return FormatCorrectionApplied(last.Description, last.Category, intent.Category), nil
}
