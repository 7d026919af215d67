package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// BackupStatusResponse is the JSON response for backup status.
type BackupStatusResponse struct {
	Enabled      bool   `json:"enabled"`
	BackupPath   string `json:"backup_path"`
	LastBackupAt string `json:"last_backup_at"`
}

// HandleBackupStatus returns the current backup configuration and last backup time.
func (app *Application) HandleBackupStatus(w http.ResponseWriter, r *http.Request) {
	lastBackup := getLastBackupTime()
	lastBackupStr := ""
	if !lastBackup.IsZero() {
		lastBackupStr = lastBackup.UTC().Format(time.RFC3339)
	}

	resp := BackupStatusResponse{
		Enabled:      app.Config.Backup.Path != "",
		BackupPath:   app.Config.Backup.Path,
		LastBackupAt: lastBackupStr,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleBackupDownload creates a consistent SQLite backup and serves it as a download.
func (app *Application) HandleBackupDownload(w http.ResponseWriter, r *http.Request) {
	tmpFile, err := os.CreateTemp("", "granazap-backup-*.db")
	if err != nil {
		http.Error(w, "failed to create backup", http.StatusInternalServerError)
		return
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := sqliteBackup(app.Store.DB(), tmpPath); err != nil {
		app.Log.Error().Err(err).Msg("backup download")
		http.Error(w, "failed to create backup", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("granazap-backup-%s.db", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/x-sqlite3")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	http.ServeFile(w, r, tmpPath)
}

// HandleBackupRestore accepts a .db file upload and restores it into the live database.
func (app *Application) HandleBackupRestore(w http.ResponseWriter, r *http.Request) {
	// Limit upload size to 100MB
	r.Body = http.MaxBytesReader(w, r.Body, 100<<20)

	file, _, err := r.FormFile("backup")
	if err != nil {
		http.Error(w, "no file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmpFile, err := os.CreateTemp("", "granazap-restore-*.db")
	if err != nil {
		http.Error(w, "failed to process upload", http.StatusInternalServerError)
		return
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, file); err != nil {
		tmpFile.Close()
		http.Error(w, "failed to save upload", http.StatusInternalServerError)
		return
	}
	tmpFile.Close()

	// Validate SQLite magic bytes
	f, err := os.Open(tmpPath)
	if err != nil {
		http.Error(w, "failed to read uploaded file", http.StatusInternalServerError)
		return
	}
	magic := make([]byte, 16)
	_, err = io.ReadFull(f, magic)
	f.Close()
	if err != nil || string(magic) != "SQLite format 3\000" {
		http.Error(w, "invalid file: not a SQLite database", http.StatusBadRequest)
		return
	}

	if err := sqliteRestore(app.Store.DB(), tmpPath); err != nil {
		app.Log.Error().Err(err).Msg("backup restore")
		http.Error(w, "failed to restore backup", http.StatusInternalServerError)
		return
	}

	app.Log.Info().Msg("database restored from uploaded backup")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "restored"})
}
