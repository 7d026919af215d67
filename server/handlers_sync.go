package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/granazap/granazap/server/store"
)

// SyncStatusResponse is the response for the sync status endpoint.
type SyncStatusResponse struct {
	TransactionCount int64  `json:"transaction_count"`
	ServerTime       string `json:"server_time"`
}

// SyncExportResponse is the full-dump response for the export endpoint.
type SyncExportResponse struct {
	Transactions []store.ExportedTransaction `json:"transactions"`
	ExportedAt   string                      `json:"exported_at"`
}

// SyncImportRequest is the request body for the import endpoint.
type SyncImportRequest struct {
	Transactions []store.ExportedTransaction `json:"transactions"`
}

// SyncImportResponse reports the outcome of an import.
type SyncImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// HandleSyncStatus returns the transaction count so an operator can tell
// whether a restore is needed.
func (app *Application) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	count, err := app.Store.CountTransactions(r.Context())
	if err != nil {
		http.Error(w, "failed to count transactions", http.StatusInternalServerError)
		return
	}

	resp := SyncStatusResponse{
		TransactionCount: count,
		ServerTime:       time.Now().UTC().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleSyncExport dumps every transaction, keyed by sender id.
func (app *Application) HandleSyncExport(w http.ResponseWriter, r *http.Request) {
	txs, err := app.Store.ExportTransactions(r.Context())
	if err != nil {
		app.Log.Error().Err(err).Msg("sync export")
		http.Error(w, "failed to export transactions", http.StatusInternalServerError)
		return
	}

	resp := SyncExportResponse{
		Transactions: txs,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleSyncImport restores transactions from an export dump. To avoid
// duplicating data it only runs against an empty database.
func (app *Application) HandleSyncImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SyncImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	count, err := app.Store.CountTransactions(ctx)
	if err != nil {
		http.Error(w, "failed to check transaction count", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		resp := SyncImportResponse{Skipped: len(req.Transactions)}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
		return
	}

	imported := 0
	failed := 0
	for _, tx := range req.Transactions {
		if err := app.Store.ImportTransaction(ctx, tx); err != nil {
			app.Log.Warn().Err(err).Str("sender", tx.SenderID).Msg("sync import row")
			failed++
			continue
		}
		imported++
	}

	resp := SyncImportResponse{
		Imported: imported,
		Skipped:  len(req.Transactions) - imported - failed,
		Errors:   failed,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
