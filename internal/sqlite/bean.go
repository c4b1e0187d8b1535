package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/repository"
)

// BeanRepository implements bean.Repository for SQLite
type BeanRepository struct {
	db *DB
}

// NewBeanRepository creates a new BeanRepository
func NewBeanRepository(db *DB) *BeanRepository {
	return &BeanRepository{db: db}
}

// Create inserts a bean and sets its ID
func (r *BeanRepository) Create(ctx context.Context, b *bean.Bean) error {
	query := `
		INSERT INTO beans (name, shop, variety, roast_date, notes, created_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		b.Name,
		nullString(b.Shop),
		nullString(b.Variety),
		nullString(b.RoastDate),
		nullString(b.Notes),
		nullString(b.CreatedDate),
	)
	if err != nil {
		return fmt.Errorf("failed to create bean: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get bean id: %w", err)
	}
	b.ID = id

	return nil
}

const beanColumns = `id, name, shop, variety, roast_date, notes, created_date`

// Get retrieves a bean by ID
func (r *BeanRepository) Get(ctx context.Context, id int64) (*bean.Bean, error) {
	query := `SELECT ` + beanColumns + ` FROM beans WHERE id = ?`

	b, err := scanBean(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bean: %w", err)
	}

	return b, nil
}

// List returns all beans, newest created date first. Beans without a created
// date come last; ties go to the most recently inserted.
func (r *BeanRepository) List(ctx context.Context) ([]bean.Bean, error) {
	query := `
		SELECT ` + beanColumns + `
		FROM beans
		ORDER BY created_date IS NULL, created_date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list beans: %w", err)
	}
	defer rows.Close()

	var beans []bean.Bean
	for rows.Next() {
		b, err := scanBean(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bean: %w", err)
		}
		beans = append(beans, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bean rows: %w", err)
	}

	return beans, nil
}

// Delete removes a bean and its brewing records in one transaction. Missing
// beans are not an error.
func (r *BeanRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM brewing_records WHERE bean_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete brewing records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM beans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete bean: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanBean(row rowScanner) (*bean.Bean, error) {
	var b bean.Bean
	var shop, variety, roastDate, notes, createdDate sql.NullString
	err := row.Scan(
		&b.ID,
		&b.Name,
		&shop,
		&variety,
		&roastDate,
		&notes,
		&createdDate,
	)
	if err != nil {
		return nil, err
	}
	b.Shop = shop.String
	b.Variety = variety.String
	b.RoastDate = dateString(roastDate)
	b.Notes = notes.String
	b.CreatedDate = dateString(createdDate)
	return &b, nil
}
