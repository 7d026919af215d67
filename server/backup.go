package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	lastBackupMu   sync.RWMutex
	lastBackupTime time.Time
)

// getLastBackupTime returns the time of the last successful backup.
func getLastBackupTime() time.Time {
	lastBackupMu.RLock()
	defer lastBackupMu.RUnlock()
	return lastBackupTime
}

func setLastBackupTime(t time.Time) {
	lastBackupMu.Lock()
	defer lastBackupMu.Unlock()
	lastBackupTime = t
}

// startBackupLoop runs periodic backups at the configured interval.
func (app *Application) startBackupLoop() {
	interval := time.Duration(app.Config.Backup.IntervalMinutes) * time.Minute
	app.Log.Info().Str("path", app.Config.Backup.Path).Dur("interval", interval).Msg("backup enabled")

	// Run once immediately on startup
	app.runBackup()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		app.runBackup()
	}
}

func (app *Application) runBackup() {
	if err := app.performBackup(); err != nil {
		app.Log.Error().Err(err).Msg("backup failed (db)")
	}
	if err := app.performJSONExport(); err != nil {
		app.Log.Error().Err(err).Msg("backup failed (json)")
	}
	setLastBackupTime(time.Now())
	app.Log.Info().Str("path", app.Config.Backup.Path).Msg("backup completed")
}

// performBackup creates a consistent SQLite backup using the backup API.
func (app *Application) performBackup() error {
	destPath := filepath.Join(app.Config.Backup.Path, "granazap.db")

	// Ensure backup directory exists
	if err := os.MkdirAll(app.Config.Backup.Path, 0755); err != nil {
		return err
	}

	return sqliteBackup(app.Store.DB(), destPath)
}

// sqliteBackup copies a live SQLite database to destPath using the backup API.
func sqliteBackup(srcDB *sql.DB, destPath string) error {
	srcConn, err := srcDB.Conn(context.Background())
	if err != nil {
		return err
	}
	defer srcConn.Close()

	return srcConn.Raw(func(driverConn interface{}) error {
		src := driverConn.(*sqlite3.SQLiteConn)

		destDB, err := sql.Open("sqlite3", destPath)
		if err != nil {
			return err
		}
		defer destDB.Close()

		destConn, err := destDB.Conn(context.Background())
		if err != nil {
			return err
		}
		defer destConn.Close()

		return destConn.Raw(func(dc interface{}) error {
			dest := dc.(*sqlite3.SQLiteConn)
			backup, err := dest.Backup("main", src, "main")
			if err != nil {
				return err
			}
			_, err = backup.Step(-1)
			if err != nil {
				backup.Finish()
				return err
			}
			return backup.Finish()
		})
	})
}

// sqliteRestore copies a SQLite file into the live database using the backup API.
func sqliteRestore(destDB *sql.DB, srcPath string) error {
	destConn, err := destDB.Conn(context.Background())
	if err != nil {
		return err
	}
	defer destConn.Close()

	return destConn.Raw(func(driverConn interface{}) error {
		dest := driverConn.(*sqlite3.SQLiteConn)

		srcDB, err := sql.Open("sqlite3", srcPath+"?mode=ro")
		if err != nil {
			return err
		}
		defer srcDB.Close()

		srcConn, err := srcDB.Conn(context.Background())
		if err != nil {
			return err
		}
		defer srcConn.Close()

		return srcConn.Raw(func(sc interface{}) error {
			src := sc.(*sqlite3.SQLiteConn)
			backup, err := dest.Backup("main", src, "main")
			if err != nil {
				return err
			}
			_, err = backup.Step(-1)
			if err != nil {
				backup.Finish()
				return err
			}
			return backup.Finish()
		})
	})
}

// performJSONExport writes a human-readable JSON export alongside the DB
// backup, in the same shape the sync export endpoint serves.
func (app *Application) performJSONExport() error {
	txs, err := app.Store.ExportTransactions(context.Background())
	if err != nil {
		return err
	}

	resp := SyncExportResponse{
		Transactions: txs,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	destPath := filepath.Join(app.Config.Backup.Path, "granazap.json")
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
