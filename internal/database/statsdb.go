package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/unlimitedworld/uwstats/internal/model"
)

// StatsDB provides SQLite-based storage for extracted message records.
//
// Design decision: One database file for all threads rather than a file
// per thread. Records carry the thread address, so cross-thread queries
// stay possible and backup is a single file copy.
type StatsDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures StatsDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a StatsDB inside dbDir.
func Open(dbDir string, opts Options) (*StatsDB, error) {
	dbPath := filepath.Join(dbDir, "uwstats.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw prevents creating new files, mode=rwc
	// allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; extra connections buy nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &StatsDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *StatsDB) Close() error {
	return sdb.db.Close()
}

// Path returns the database file path.
func (sdb *StatsDB) Path() string {
	return sdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (sdb *StatsDB) createTables() error {
	schema := `
	-- One row per extracted forum message, keyed by thread, page, and
	-- position within the page.
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		thread_url TEXT NOT NULL,
		page_num INTEGER NOT NULL,
		position INTEGER NOT NULL,
		author TEXT NOT NULL,
		created_at DATETIME,
		content TEXT,
		likes INTEGER NOT NULL DEFAULT 0,
		quotes INTEGER NOT NULL DEFAULT 0,
		quoted TEXT,
		spoilers INTEGER NOT NULL DEFAULT 0,
		mentions INTEGER NOT NULL DEFAULT 0,
		mentioned TEXT,
		words INTEGER NOT NULL DEFAULT 0,
		emojis INTEGER NOT NULL DEFAULT 0,
		emoji_frequency TEXT,
		edited INTEGER NOT NULL DEFAULT 0,
		is_rules_compliant INTEGER NOT NULL DEFAULT 0,
		violations TEXT,
		extracted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(thread_url, page_num, position)
	);

	CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_url);
	CREATE INDEX IF NOT EXISTS idx_messages_author ON messages(author);
	CREATE INDEX IF NOT EXISTS idx_messages_page ON messages(thread_url, page_num);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRecords upserts a thread's record stream. Position is the ordinal
// index within the stream, so re-extraction of a grown page replaces
// its rows instead of duplicating them.
func (sdb *StatsDB) SaveRecords(ctx context.Context, threadURL string, records []model.MessageRecord) error {
	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	query := `
	INSERT INTO messages (
		thread_url, page_num, position, author, created_at, content,
		likes, quotes, quoted, spoilers, mentions, mentioned,
		words, emojis, emoji_frequency, edited, is_rules_compliant, violations
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(thread_url, page_num, position) DO UPDATE SET
		author = excluded.author,
		created_at = excluded.created_at,
		content = excluded.content,
		likes = excluded.likes,
		quotes = excluded.quotes,
		quoted = excluded.quoted,
		spoilers = excluded.spoilers,
		mentions = excluded.mentions,
		mentioned = excluded.mentioned,
		words = excluded.words,
		emojis = excluded.emojis,
		emoji_frequency = excluded.emoji_frequency,
		edited = excluded.edited,
		is_rules_compliant = excluded.is_rules_compliant,
		violations = excluded.violations,
		extracted_at = CURRENT_TIMESTAMP
	`

	position := 0
	lastPage := 0
	for _, record := range records {
		if record.PageNum != lastPage {
			position = 0
			lastPage = record.PageNum
		}

		quoted, err := marshalStrings(record.Quoted)
		if err != nil {
			return err
		}
		mentioned, err := marshalStrings(record.Mentioned)
		if err != nil {
			return err
		}
		violations, err := marshalStrings(record.Violations)
		if err != nil {
			return err
		}
		emojiFreq, err := json.Marshal(record.EmojiFrequency)
		if err != nil {
			return fmt.Errorf("serialize emoji frequencies: %w", err)
		}

		var createdAt any
		if !record.CreatedAt.IsZero() {
			createdAt = record.CreatedAt.UTC()
		}

		if _, err := tx.ExecContext(ctx, query,
			threadURL,
			record.PageNum,
			position,
			record.Author,
			createdAt,
			record.Content,
			record.Likes,
			record.Quotes,
			quoted,
			record.Spoilers,
			record.Mentions,
			mentioned,
			record.Words,
			record.Emojis,
			string(emojiFreq),
			record.Edited,
			record.IsRulesCompliant,
			violations,
		); err != nil {
			return fmt.Errorf("insert message (page %d, position %d): %w", record.PageNum, position, err)
		}
		position++
	}

	return tx.Commit()
}

// ListRecords loads a thread's record stream in page then position
// order. The raw markup snapshot is not persisted; loaded records carry
// an empty Raw field.
func (sdb *StatsDB) ListRecords(ctx context.Context, threadURL string) ([]model.MessageRecord, error) {
	query := `
	SELECT page_num, author, created_at, content,
		likes, quotes, quoted, spoilers, mentions, mentioned,
		words, emojis, emoji_frequency, edited, is_rules_compliant, violations
	FROM messages
	WHERE thread_url = ?
	ORDER BY page_num, position
	`

	rows, err := sdb.db.QueryContext(ctx, query, threadURL)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	records := make([]model.MessageRecord, 0)
	for rows.Next() {
		var (
			record     model.MessageRecord
			createdAt  sql.NullTime
			quoted     sql.NullString
			mentioned  sql.NullString
			violations sql.NullString
			emojiFreq  sql.NullString
		)

		if err := rows.Scan(
			&record.PageNum,
			&record.Author,
			&createdAt,
			&record.Content,
			&record.Likes,
			&record.Quotes,
			&quoted,
			&record.Spoilers,
			&record.Mentions,
			&mentioned,
			&record.Words,
			&record.Emojis,
			&emojiFreq,
			&record.Edited,
			&record.IsRulesCompliant,
			&violations,
		); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}

		if createdAt.Valid {
			record.CreatedAt = createdAt.Time
		}
		if record.Quoted, err = unmarshalStrings(quoted); err != nil {
			return nil, err
		}
		if record.Mentioned, err = unmarshalStrings(mentioned); err != nil {
			return nil, err
		}
		if record.Violations, err = unmarshalStrings(violations); err != nil {
			return nil, err
		}
		if emojiFreq.Valid && emojiFreq.String != "" && emojiFreq.String != "null" {
			if err := json.Unmarshal([]byte(emojiFreq.String), &record.EmojiFrequency); err != nil {
				return nil, fmt.Errorf("deserialize emoji frequencies: %w", err)
			}
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// marshalStrings serializes a string slice to JSON, mapping empty
// slices to NULL.
func marshalStrings(values []string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("serialize string list: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings reverses marshalStrings.
func unmarshalStrings(value sql.NullString) ([]string, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(value.String), &out); err != nil {
		return nil, fmt.Errorf("deserialize string list: %w", err)
	}
	return out, nil
}
