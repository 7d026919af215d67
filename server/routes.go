package main

import (
	"github.com/go-chi/chi/v5"
)

func (app *Application) setupRoutes(r chi.Router) {
	r.Get("/healthz", app.HandleHealth)
	r.Post("/webhook", app.HandleWebhook)

	r.Get("/api/sync/status", app.HandleSyncStatus)
	r.Get("/api/sync/export", app.HandleSyncExport)
	r.Post("/api/sync/import", app.HandleSyncImport)

	r.Get("/api/backup/status", app.HandleBackupStatus)
	r.Get("/api/backup/download", app.HandleBackupDownload)
	r.Post("/api/backup/restore", app.HandleBackupRestore)
}
