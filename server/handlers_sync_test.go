package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, app *Application, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := chi.NewRouter()
	app.setupRoutes(r)
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSyncStatusAndExport(t *testing.T) {
	app := newTestApp(t)

	rec := doRequest(t, app, http.MethodGet, "/api/sync/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status SyncStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, int64(0), status.TransactionCount)

	postWebhook(t, app, WebhookRequest{From: "s1", Text: "Mercado 120,50"})
	postWebhook(t, app, WebhookRequest{From: "s2", Text: "Uber 30 reais"})

	rec = doRequest(t, app, http.MethodGet, "/api/sync/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var export SyncExportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	require.Len(t, export.Transactions, 2)
	assert.Equal(t, "s1", export.Transactions[0].SenderID)
	assert.Equal(t, int64(12050), export.Transactions[0].AmountCents)
}

func TestSyncImport(t *testing.T) {
	source := newTestApp(t)
	postWebhook(t, source, WebhookRequest{From: "s1", Text: "Mercado 120,50"})

	rec := doRequest(t, source, http.MethodGet, "/api/sync/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var export SyncExportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))

	// import into a fresh instance
	dest := newTestApp(t)
	rec = doRequest(t, dest, http.MethodPost, "/api/sync/import", SyncImportRequest{Transactions: export.Transactions})
	require.Equal(t, http.StatusOK, rec.Code)
	var res SyncImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Imported)
	assert.Zero(t, res.Errors)

	// a second import against a non-empty database is skipped entirely
	rec = doRequest(t, dest, http.MethodPost, "/api/sync/import", SyncImportRequest{Transactions: export.Transactions})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Zero(t, res.Imported)
	assert.Equal(t, 1, res.Skipped)
}
