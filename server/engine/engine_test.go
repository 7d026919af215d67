package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	calls int
}

func (f *fakeUsers) FindOrCreate(ctx context.Context, senderID, profileName string) (User, error) {
	f.calls++
	return User{ID: 1, SenderID: senderID, Name: profileName}, nil
}

type fakeStore struct {
	saved   []ParsedTransaction
	last    *StoredTransaction
	updated map[string]string
}

func (f *fakeStore) Save(ctx context.Context, userID int64, tx ParsedTransaction) (StoredTransaction, error) {
	f.saved = append(f.saved, tx)
	st := StoredTransaction{ID: "tx-1", ParsedTransaction: tx}
	f.last = &st
	return st, nil
}

func (f *fakeStore) LastForUser(ctx context.Context, userID int64) (StoredTransaction, bool, error) {
	if f.last == nil {
		return StoredTransaction{}, false, nil
	}
	return *f.last, true, nil
}

func (f *fakeStore) UpdateCategory(ctx context.Context, id, category string) error {
	if f.updated == nil {
		f.updated = make(map[string]string)
	}
	f.updated[id] = category
	return nil
}

type fakeReports struct {
	lastPeriod Period
}

func (f *fakeReports) Summary(ctx context.Context, userID int64, p Period, now time.Time) (Report, error) {
	f.lastPeriod = p
	return Report{Period: p, Total: decimal.RequireFromString("100"), Count: 2,
		ByCategory: []CategoryTotal{{Category: CategoryOutros, Total: decimal.RequireFromString("100")}}}, nil
}

func newTestHarness(t *testing.T) (*Engine, *fakeUsers, *fakeStore, *fakeReports) {
	t.Helper()
	users := &fakeUsers{}
	store := &fakeStore{}
	reports := &fakeReports{}
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	e := New(DefaultDictionaries(), users, store, reports,
		WithClock(func() time.Time { return now }))
	return e, users, store, reports
}

func TestProcessTransaction(t *testing.T) {
	e, users, store, _ := newTestHarness(t)

	res, err := e.Process(context.Background(), RawMessage{
		Text: "Almoço R$ 25,90", SenderID: "5511999990000", ProfileName: "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, users.calls)
	require.Len(t, store.saved, 1)
	assert.True(t, decimal.RequireFromString("25.9").Equal(store.saved[0].Amount))
	assert.Equal(t, CategoryAlimentacao, store.saved[0].Category)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, "tx-1", res.Transaction.ID)
	assert.Contains(t, res.Reply, "R$ 25,90")
}

func TestProcessNoAmount(t *testing.T) {
	e, _, store, _ := newTestHarness(t)

	res, err := e.Process(context.Background(), RawMessage{Text: "comprei umas coisas", SenderID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, store.saved, "nothing must be persisted without an amount")
	assert.Nil(t, res.Transaction)
	assert.Contains(t, res.Reply, "Não entendi o valor")
}

func TestProcessSalaryIsNotATransaction(t *testing.T) {
	e, _, store, _ := newTestHarness(t)

	res, err := e.Process(context.Background(), RawMessage{Text: "Recebi meu salário 5000", SenderID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, store.saved)
	assert.Nil(t, res.Transaction)
	assert.Contains(t, res.Reply, "Não entendi o valor")
}

func TestProcessGreetingAndHelp(t *testing.T) {
	e, _, _, _ := newTestHarness(t)

	res, err := e.Process(context.Background(), RawMessage{Text: "Oi", SenderID: "s1", ProfileName: "Ana"})
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "Ana")

	res, err = e.Process(context.Background(), RawMessage{Text: "ajuda", SenderID: "s1"})
	require.NoError(t, err)
	assert.Contains(t, res.Reply, "Como usar")
}

func TestProcessSummary(t *testing.T) {
	e, _, _, reports := newTestHarness(t)

	res, err := e.Process(context.Background(), RawMessage{Text: "resumo da semana", SenderID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, reports.lastPeriod)
	assert.Contains(t, res.Reply, "R$ 100,00")
}

func TestProcessCorrection(t *testing.T) {
	e, _, store, _ := newTestHarness(t)
	ctx := context.Background()

	// register something, then correct its category with a fuzzy name
	_, err := e.Process(ctx, RawMessage{Text: "Mercado 120,50", SenderID: "s1"})
	require.NoError(t, err)

	res, err := e.Process(ctx, RawMessage{Text: "corrigir categoria para transport", SenderID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, CategoryTransporte, store.updated["tx-1"])
	assert.Contains(t, res.Reply, CategoryTransporte)
}

func TestProcessCorrectionUnknownCategory(t *testing.T) {
	e, _, store, _ := newTestHarness(t)
	ctx := context.Background()

	_, err := e.Process(ctx, RawMessage{Text: "Mercado 120,50", SenderID: "s1"})
	require.NoError(t, err)

	res, err := e.Process(ctx, RawMessage{Text: "corrigir categoria para xyz", SenderID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, store.updated, "no mutation on an unknown category")
	assert.Contains(t, res.Reply, CategoryVestuario, "reply lists the valid categories")
}

func TestProcessCorrectionWithoutHistory(t *testing.T) {
	e, _, store, _ := newTestHarness(t)

	res, err := e.Process(context.Background(), RawMessage{Text: "corrigir categoria para lazer", SenderID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, store.updated)
	assert.Contains(t, res.Reply, "não registrou")
}
