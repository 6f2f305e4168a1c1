package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Migrate() error {
	migrations := []string{
		migrationPersonas,
		migrationCampaigns,
		migrationContentItems,
		migrationContentVersions,
		migrationScheduleEntries,
		migrationAnalyticsRecords,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const migrationPersonas = `
CREATE TABLE IF NOT EXISTS personas (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    experience TEXT NOT NULL,
    technical_proficiency TEXT,
    tone_preference TEXT,
    content_styles JSON,
    pain_points TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const migrationCampaigns = `
CREATE TABLE IF NOT EXISTS campaigns (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    goal TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const migrationContentItems = `
CREATE TABLE IF NOT EXISTS content_items (
    id TEXT PRIMARY KEY,
    campaign_id TEXT NOT NULL REFERENCES campaigns(id),
    persona_id TEXT NOT NULL REFERENCES personas(id),
    content_type TEXT NOT NULL,
    platform TEXT NOT NULL,
    tone TEXT NOT NULL,
    body TEXT NOT NULL,
    hashtags JSON,
    keywords JSON,
    current_version INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(campaign_id, platform)
);
`

const migrationContentVersions = `
CREATE TABLE IF NOT EXISTS content_versions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    content_id TEXT NOT NULL REFERENCES content_items(id) ON DELETE CASCADE,
    version INTEGER NOT NULL,
    body TEXT NOT NULL,
    hashtags JSON,
    note TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(content_id, version)
);
`

const migrationScheduleEntries = `
CREATE TABLE IF NOT EXISTS schedule_entries (
    id TEXT PRIMARY KEY,
    content_id TEXT NOT NULL REFERENCES content_items(id),
    platform TEXT NOT NULL,
    scheduled_at TIMESTAMP,
    status TEXT NOT NULL DEFAULT 'draft',
    recipients JSON,
    last_attempt_at TIMESTAMP,
    failure_reason TEXT,
    external_ref TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const migrationAnalyticsRecords = `
CREATE TABLE IF NOT EXISTS analytics_records (
    id TEXT PRIMARY KEY,
    schedule_entry_id TEXT NOT NULL REFERENCES schedule_entries(id),
    metric TEXT NOT NULL,
    value REAL NOT NULL,
    observed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
