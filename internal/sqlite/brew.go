package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/repository"
)

// BrewRepository implements brew.Repository for SQLite
type BrewRepository struct {
	db *DB
}

// NewBrewRepository creates a new BrewRepository
func NewBrewRepository(db *DB) *BrewRepository {
	return &BrewRepository{db: db}
}

// Create inserts a brewing record and sets its ID. The owning bean must
// exist; this is checked in the same transaction as the insert.
func (r *BrewRepository) Create(ctx context.Context, rec *brew.Record) error {
	schedule, hasSchedule, err := rec.PourSchedule.Encode()
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM beans WHERE id = ?)`, rec.BeanID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check bean existence: %w", err)
	}
	if !exists {
		return repository.ErrForeignKeyViolation
	}

	query := `
		INSERT INTO brewing_records (
			bean_id, brew_date, grind_size, coffee_amount, water_temp,
			brew_time, method, equipment, adding_water, pour_schedule,
			taste_score, aroma_score, body_score, acidity_score, overall_score,
			tasting_notes, improvements
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var waterTemp sql.NullInt64
	if rec.WaterTemp != nil {
		waterTemp = sql.NullInt64{Int64: int64(*rec.WaterTemp), Valid: true}
	}
	var addingWater sql.NullFloat64
	if rec.AddingWater != nil {
		addingWater = sql.NullFloat64{Float64: *rec.AddingWater, Valid: true}
	}

	result, err := tx.ExecContext(ctx, query,
		rec.BeanID,
		nullString(rec.BrewDate),
		nullString(rec.Grind.String()),
		rec.CoffeeAmount,
		waterTemp,
		nullString(rec.BrewTime),
		nullString(string(rec.Method)),
		nullString(string(rec.Equipment)),
		addingWater,
		sql.NullString{String: schedule, Valid: hasSchedule},
		rec.Scores.Taste,
		rec.Scores.Aroma,
		rec.Scores.Body,
		rec.Scores.Acidity,
		rec.Scores.Overall,
		nullString(rec.TastingNotes),
		nullString(rec.Improvements),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create brewing record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get brewing record id: %w", err)
	}

	var beanName string
	if err := tx.QueryRowContext(ctx, `SELECT name FROM beans WHERE id = ?`, rec.BeanID).Scan(&beanName); err != nil {
		return fmt.Errorf("failed to load bean name: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	rec.ID = id
	rec.BeanName = beanName
	return nil
}

const recordSelect = `
	SELECT
		br.id, br.bean_id, b.name, br.brew_date, br.grind_size,
		br.coffee_amount, br.water_temp, br.brew_time, br.method,
		br.equipment, br.adding_water, br.pour_schedule,
		br.taste_score, br.aroma_score, br.body_score, br.acidity_score,
		br.overall_score, br.tasting_notes, br.improvements
	FROM brewing_records br
	JOIN beans b ON br.bean_id = b.id
`

// Get retrieves a brewing record by ID
func (r *BrewRepository) Get(ctx context.Context, id int64) (*brew.Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, recordSelect+` WHERE br.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get brewing record: %w", err)
	}
	return rec, nil
}

// List returns brewing records with their bean names, newest brew date
// first. Records without a brew date come last; ties go to the most recently
// inserted.
func (r *BrewRepository) List(ctx context.Context, opts brew.ListOptions) ([]brew.Record, error) {
	query := recordSelect
	var args []any

	if opts.BeanID != nil {
		query += ` WHERE br.bean_id = ?`
		args = append(args, *opts.BeanID)
	}
	query += ` ORDER BY br.brew_date IS NULL, br.brew_date DESC, br.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list brewing records: %w", err)
	}
	defer rows.Close()

	var recs []brew.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brewing record: %w", err)
		}
		recs = append(recs, *rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brewing record rows: %w", err)
	}

	return recs, nil
}

// Delete removes a brewing record. Missing records are not an error.
func (r *BrewRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM brewing_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete brewing record: %w", err)
	}
	return nil
}

func scanRecord(row rowScanner) (*brew.Record, error) {
	var (
		rec                                  brew.Record
		brewDate, grind, brewTime, method    sql.NullString
		equipment, schedule, tasting, improv sql.NullString
		coffee, waterTemp, addingWater       sql.NullFloat64
		taste, aroma, body, acidity, overall sql.NullInt64
	)

	err := row.Scan(
		&rec.ID,
		&rec.BeanID,
		&rec.BeanName,
		&brewDate,
		&grind,
		&coffee,
		&waterTemp,
		&brewTime,
		&method,
		&equipment,
		&addingWater,
		&schedule,
		&taste,
		&aroma,
		&body,
		&acidity,
		&overall,
		&tasting,
		&improv,
	)
	if err != nil {
		return nil, err
	}

	rec.BrewDate = dateString(brewDate)
	rec.Grind = brew.ParseGrind(grind.String)
	rec.CoffeeAmount = coffee.Float64
	if waterTemp.Valid {
		t := int(waterTemp.Float64)
		rec.WaterTemp = &t
	}
	rec.BrewTime = brewTime.String
	if method.Valid {
		rec.Method = brew.NormalizeMethod(method.String)
	}
	if equipment.Valid {
		rec.Equipment = brew.NormalizeEquipment(equipment.String)
	}
	if addingWater.Valid {
		w := addingWater.Float64
		rec.AddingWater = &w
	}
	rec.PourSchedule, err = pour.Decode(schedule.String, schedule.Valid)
	if err != nil {
		rec.PourSchedule = nil
		rec.ScheduleInvalid = true
	}
	rec.Scores = brew.Scores{
		Taste:   int(taste.Int64),
		Aroma:   int(aroma.Int64),
		Body:    int(body.Int64),
		Acidity: int(acidity.Int64),
		Overall: int(overall.Int64),
	}
	rec.TastingNotes = tasting.String
	rec.Improvements = improv.String

	return &rec, nil
}
