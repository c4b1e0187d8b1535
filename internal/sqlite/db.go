package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/brewlog/internal/repository"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers, so a cascade delete never
	// interleaves with an insert for the same bean. It also keeps a
	// :memory: database to one instance.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// The shape the tables had before any column was added later. Existing
// databases keep whatever they were created with.
const baseSchema = `
CREATE TABLE IF NOT EXISTS beans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    shop TEXT,
    variety TEXT,
    roast_date DATE,
    notes TEXT,
    created_date DATE
);

CREATE TABLE IF NOT EXISTS brewing_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    bean_id INTEGER,
    brew_date DATE,
    grind_size TEXT,
    coffee_amount REAL,
    water_amount REAL,
    water_temp REAL,
    brew_time TEXT,
    method TEXT,
    taste_score INTEGER,
    aroma_score INTEGER,
    body_score INTEGER,
    acidity_score INTEGER,
    overall_score INTEGER,
    tasting_notes TEXT,
    improvements TEXT,
    FOREIGN KEY (bean_id) REFERENCES beans (id)
);

CREATE INDEX IF NOT EXISTS idx_brewing_records_bean ON brewing_records(bean_id);
`

// additiveColumns are applied in order; each is added only if missing.
var additiveColumns = []struct {
	name string
	def  string
}{
	{"equipment", "TEXT"},
	{"adding_water", "REAL"},
	{"pour_schedule", "TEXT"},
}

// EnsureSchema creates the tables if needed and adds columns introduced after
// the first release. It is safe to run on every start. Any failure other than
// an already-present column is wrapped in repository.ErrSchemaMigration.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, baseSchema); err != nil {
		return fmt.Errorf("%w: create tables: %v", repository.ErrSchemaMigration, err)
	}

	for _, col := range additiveColumns {
		stmt := fmt.Sprintf("ALTER TABLE brewing_records ADD COLUMN %s %s", col.name, col.def)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("%w: add column %s: %v", repository.ErrSchemaMigration, col.name, err)
		}
	}

	return nil
}
