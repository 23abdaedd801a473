package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/nutri-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
	"github.com/custodia-labs/nutri-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed food catalog.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.nutri/data/foods.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".nutri", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "foods.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FoodStore returns a FoodStore interface backed by this store.
func (s *Store) FoodStore() driven.FoodStore {
	return &foodStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_foods.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Food Store ====================

// foodStore implements driven.FoodStore.
type foodStore struct {
	store *Store
}

var _ driven.FoodStore = (*foodStore)(nil)

const foodColumns = `slug, id, name, description, category,
	calories_per_100g, protein_per_100g, carbs_per_100g, fats_per_100g,
	fiber_per_100g, sugar_per_100g, sodium_per_100g,
	serving_size_g, serving_size_unit, image_url,
	full_nutrients, alt_measures, created_at, updated_at`

type fullNutrientRow struct {
	AttrID *int     `json:"attr_id"`
	Value  *float64 `json:"value"`
}

type altMeasureRow struct {
	Measure       string   `json:"measure"`
	Qty           *float64 `json:"qty"`
	ServingWeight *float64 `json:"serving_weight"`
}

// Save stores or updates a food keyed by slug. A food without an ID is
// given a fresh UUID.
func (s *foodStore) Save(ctx context.Context, food *domain.Food) error {
	if food.Slug == "" {
		return fmt.Errorf("food slug is required: %w", domain.ErrInvalidInput)
	}
	if food.ID == "" {
		food.ID = uuid.New().String()
	}

	fullNutrients := make([]fullNutrientRow, 0, len(food.FullNutrients))
	for _, n := range food.FullNutrients {
		fullNutrients = append(fullNutrients, fullNutrientRow(n))
	}
	fullJSON, err := json.Marshal(fullNutrients)
	if err != nil {
		return fmt.Errorf("marshalling full nutrients: %w", err)
	}
	altMeasures := make([]altMeasureRow, 0, len(food.AltMeasures))
	for _, m := range food.AltMeasures {
		altMeasures = append(altMeasures, altMeasureRow(m))
	}
	altJSON, err := json.Marshal(altMeasures)
	if err != nil {
		return fmt.Errorf("marshalling alt measures: %w", err)
	}

	now := time.Now().UTC()
	if food.CreatedAt.IsZero() {
		food.CreatedAt = now
	}
	if food.UpdatedAt.IsZero() {
		food.UpdatedAt = now
	}

	n := food.Nutrients
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO foods (`+foodColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			calories_per_100g = excluded.calories_per_100g,
			protein_per_100g = excluded.protein_per_100g,
			carbs_per_100g = excluded.carbs_per_100g,
			fats_per_100g = excluded.fats_per_100g,
			fiber_per_100g = excluded.fiber_per_100g,
			sugar_per_100g = excluded.sugar_per_100g,
			sodium_per_100g = excluded.sodium_per_100g,
			serving_size_g = excluded.serving_size_g,
			serving_size_unit = excluded.serving_size_unit,
			image_url = excluded.image_url,
			full_nutrients = excluded.full_nutrients,
			alt_measures = excluded.alt_measures,
			updated_at = excluded.updated_at
	`, food.Slug, food.ID, food.Name, nullString(food.Description), nullString(food.Category),
		nullFloat(n.CaloriesPer100g), nullFloat(n.ProteinPer100g), nullFloat(n.CarbsPer100g),
		nullFloat(n.FatsPer100g), nullFloat(n.FiberPer100g), nullFloat(n.SugarPer100g),
		nullFloat(n.SodiumPer100g),
		food.ServingSizeG, food.ServingSizeUnit, food.ImageURL,
		string(fullJSON), string(altJSON), food.CreatedAt, food.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving food: %w", err)
	}
	return nil
}

// Get retrieves a food by slug.
func (s *foodStore) Get(ctx context.Context, slug string) (*domain.Food, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+foodColumns+" FROM foods WHERE slug = ?", slug)

	food, err := scanFood(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return food, nil
}

// List returns all foods in insertion order.
func (s *foodStore) List(ctx context.Context) ([]domain.Food, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+foodColumns+" FROM foods ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying foods: %w", err)
	}
	defer rows.Close()

	var foods []domain.Food //nolint:prealloc // size unknown from query
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating foods: %w", err)
	}
	return foods, nil
}

// Delete removes a food by slug.
func (s *foodStore) Delete(ctx context.Context, slug string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM foods WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("deleting food: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting food: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of foods.
func (s *foodStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting foods: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*domain.Food, error) {
	var food domain.Food
	var description, category sql.NullString
	var calories, protein, carbs, fats, fiber, sugar, sodium sql.NullFloat64
	var fullJSON, altJSON string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&food.Slug, &food.ID, &food.Name, &description, &category,
		&calories, &protein, &carbs, &fats, &fiber, &sugar, &sodium,
		&food.ServingSizeG, &food.ServingSizeUnit, &food.ImageURL,
		&fullJSON, &altJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning food: %w", err)
	}

	food.Description = stringPtr(description)
	food.Category = stringPtr(category)
	food.Nutrients = domain.NutrientValues{
		CaloriesPer100g: floatPtr(calories),
		ProteinPer100g:  floatPtr(protein),
		CarbsPer100g:    floatPtr(carbs),
		FatsPer100g:     floatPtr(fats),
		FiberPer100g:    floatPtr(fiber),
		SugarPer100g:    floatPtr(sugar),
		SodiumPer100g:   floatPtr(sodium),
	}

	var fullRows []fullNutrientRow
	if err := json.Unmarshal([]byte(fullJSON), &fullRows); err != nil {
		return nil, fmt.Errorf("unmarshaling full nutrients: %w", err)
	}
	for _, r := range fullRows {
		food.FullNutrients = append(food.FullNutrients, domain.FullNutrient(r))
	}
	var altRows []altMeasureRow
	if err := json.Unmarshal([]byte(altJSON), &altRows); err != nil {
		return nil, fmt.Errorf("unmarshaling alt measures: %w", err)
	}
	for _, r := range altRows {
		food.AltMeasures = append(food.AltMeasures, domain.AltMeasure(r))
	}

	if createdAt.Valid {
		food.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		food.UpdatedAt = updatedAt.Time
	}
	return &food, nil
}

// ==================== Helper Functions ====================

// nullString converts an optional string to sql.NullString.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
