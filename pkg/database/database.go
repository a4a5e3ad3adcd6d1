package database

import (
	"database/sql"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/migrations"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// Init opens the SQLite database at the configured path and assigns the
// package-level handle used by the batch entry point.
func Init() error {
	db, err := Open(config.AppConfig.Database.Path)
	if err != nil {
		return err
	}

	DB = db
	log.Println("Database connected successfully with WAL mode")
	return nil
}

// Open opens a SQLite database (creating it if needed), applies the
// performance pragmas, and runs the embedded schema scripts.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_temp_store=MEMORY&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, err
	}

	// Single-writer batch pipeline; a small pool is plenty.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = optimizeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	if err = Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// optimizeDatabase configures SQLite for optimal performance
func optimizeDatabase(db *sql.DB) error {
	// Enable WAL mode
	_, err := db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return err
	}

	// Set synchronous mode to NORMAL for better performance
	_, err = db.Exec("PRAGMA synchronous=NORMAL")
	if err != nil {
		return err
	}

	// Increase cache size
	_, err = db.Exec("PRAGMA cache_size=10000")
	if err != nil {
		return err
	}

	// Use memory for temp storage
	_, err = db.Exec("PRAGMA temp_store=MEMORY")
	if err != nil {
		return err
	}

	// Set busy timeout to 30 seconds
	_, err = db.Exec("PRAGMA busy_timeout=30000")
	if err != nil {
		return err
	}

	return nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Migrate executes the embedded SQL scripts in filename order
func Migrate(db *sql.DB) error {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		sqlContent, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}

		if _, err = db.Exec(string(sqlContent)); err != nil {
			return err
		}
	}

	return nil
}
