package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	"github.com/vladimiradmaev/sugar-guidance/internal/utils"

	_ "modernc.org/sqlite"
)

// sqliteSchema creates the readings table. Datetimes are stored as text in the persisted layout.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    datetime TEXT NOT NULL,
    reading_type TEXT NOT NULL DEFAULT 'random',
    sugar INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_type ON readings(reading_type);
`

// SQLiteStore keeps the history in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteMemoryStore creates an in-memory store.
func NewSQLiteMemoryStore() (*SQLiteStore, error) {
	return newSQLiteStore(":memory:")
}

// NewSQLiteFileStore creates a file-based store.
func NewSQLiteFileStore(path string) (*SQLiteStore, error) {
	return newSQLiteStore(path)
}

func newSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	has, err := s.hasReadingsTable()
	if err != nil {
		return err
	}
	if has {
		if err := s.addReadingTypeColumn(); err != nil {
			return err
		}
	}
	_, err = s.db.Exec(sqliteSchema)
	return err
}

func (s *SQLiteStore) hasReadingsTable() (bool, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'readings'`).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// addReadingTypeColumn upgrades tables created before readings carried a context
func (s *SQLiteStore) addReadingTypeColumn() error {
	rows, err := s.db.Query(`PRAGMA table_info(readings)`)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == ColumnReadingType {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if found {
		return nil
	}
	_, err = s.db.Exec(`ALTER TABLE readings ADD COLUMN reading_type TEXT DEFAULT 'random'`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, reading domain.Reading) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (datetime, reading_type, sugar) VALUES (?, ?, ?)
	`, utils.FormatTimestamp(reading.Timestamp), string(reading.Context), reading.Value)
	return err
}

func (s *SQLiteStore) All(ctx context.Context) ([]domain.Reading, error) {
	return s.query(ctx, `SELECT datetime, reading_type, sugar FROM readings ORDER BY id`)
}

func (s *SQLiteStore) Tail(ctx context.Context, n int) ([]domain.Reading, error) {
	if n <= 0 {
		return []domain.Reading{}, nil
	}
	readings, err := s.query(ctx, `
		SELECT datetime, reading_type, sugar FROM readings ORDER BY id DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}
	return readings, nil
}

// FilterByContext loads everything and filters after normalization, so
// legacy rows with an unknown or empty context count as random.
func (s *SQLiteStore) FilterByContext(ctx context.Context, readingCtx domain.ReadingContext) ([]domain.Reading, error) {
	readings, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return filterByContext(readings, readingCtx), nil
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]domain.Reading, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []domain.Reading{}
	for rows.Next() {
		var (
			datetime    string
			readingType sql.NullString
			sugar       int
		)
		if err := rows.Scan(&datetime, &readingType, &sugar); err != nil {
			return nil, err
		}
		reading, err := Normalize(RawRecord{
			Datetime:    datetime,
			ReadingType: readingType.String,
			Sugar:       strconv.Itoa(sugar),
		})
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

var _ domain.HistoryStore = (*SQLiteStore)(nil)
