package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store defines the interface for recipe and meal-plan data operations.
// It also satisfies shoppinglist.ExclusionStore.
type Store interface {
	CreateRecipe(ctx context.Context, r *Recipe) error
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
	ListRecipes(ctx context.Context, query string) ([]*Recipe, error)
	UpdateRecipe(ctx context.Context, r *Recipe) error
	DeleteRecipe(ctx context.Context, id string) error

	CreatePlan(ctx context.Context, p *MealPlan) error
	GetPlan(ctx context.Context, id string) (*MealPlan, error)
	ListPlans(ctx context.Context) ([]*MealPlan, error)
	DeletePlan(ctx context.Context, id string) error
	GetPlanDayMarkups(ctx context.Context, planID string) ([]DayMarkup, error)

	AddExclusions(ctx context.Context, planID string, names []string) error
	GetExclusions(ctx context.Context, planID string) ([]string, error)

	SaveShoppingList(ctx context.Context, planID, content string) error
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and creates the schema if it
// doesn't exist yet.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			markup TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS meal_plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS meal_plan_days (
			plan_id TEXT NOT NULL REFERENCES meal_plans(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			day_label TEXT NOT NULL,
			recipe_id TEXT REFERENCES recipes(id) ON DELETE SET NULL,
			PRIMARY KEY (plan_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS plan_exclusions (
			plan_id TEXT NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (plan_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS shopping_lists (
			plan_id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	}
	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &PostgresStore{db: db}, nil
}

// CreateRecipe inserts a new recipe.
func (s *PostgresStore) CreateRecipe(ctx context.Context, r *Recipe) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO recipes (id, name, description, markup, price, image_url) VALUES ($1, $2, $3, $4, $5, $6)",
		r.ID, r.Name, r.Description, r.Markup, r.Price, r.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetRecipe retrieves a recipe by id. Returns (nil, nil) when absent.
func (s *PostgresStore) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	var r Recipe
	err := s.db.GetContext(ctx, &r,
		"SELECT id, name, description, markup, price, image_url FROM recipes WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &r, nil
}

// ListRecipes returns all recipes, optionally filtered by a case-insensitive
// name search.
func (s *PostgresStore) ListRecipes(ctx context.Context, query string) ([]*Recipe, error) {
	var recipes []*Recipe
	var err error
	if query != "" {
		err = s.db.SelectContext(ctx, &recipes,
			"SELECT id, name, description, markup, price, image_url FROM recipes WHERE name ILIKE '%' || $1 || '%' ORDER BY name", query)
	} else {
		err = s.db.SelectContext(ctx, &recipes,
			"SELECT id, name, description, markup, price, image_url FROM recipes ORDER BY name")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe overwrites an existing recipe. Returns ErrNotFound when the
// id doesn't exist.
func (s *PostgresStore) UpdateRecipe(ctx context.Context, r *Recipe) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE recipes SET name = $2, description = $3, markup = $4, price = $5, image_url = $6 WHERE id = $1",
		r.ID, r.Name, r.Description, r.Markup, r.Price, r.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return checkAffected(res)
}

// DeleteRecipe removes a recipe. Returns ErrNotFound when the id doesn't
// exist.
func (s *PostgresStore) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return checkAffected(res)
}

// CreatePlan inserts a plan and its ordered day slots in one transaction.
func (s *PostgresStore) CreatePlan(ctx context.Context, p *MealPlan) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := tx.QueryRowContext(ctx,
		"INSERT INTO meal_plans (id, name) VALUES ($1, $2) RETURNING created_at",
		p.ID, p.Name,
	).Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	for i, d := range p.Days {
		var recipeID any
		if d.RecipeID != "" {
			recipeID = d.RecipeID
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO meal_plan_days (plan_id, position, day_label, recipe_id) VALUES ($1, $2, $3, $4)",
			p.ID, i, d.Day, recipeID,
		); err != nil {
			return fmt.Errorf("failed to create plan day: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan with its day slots in order. Returns (nil, nil)
// when absent.
func (s *PostgresStore) GetPlan(ctx context.Context, id string) (*MealPlan, error) {
	var p MealPlan
	err := s.db.GetContext(ctx, &p,
		"SELECT id, name, created_at FROM meal_plans WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT day_label, COALESCE(recipe_id, '') AS recipe_id FROM meal_plan_days WHERE plan_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d PlanDay
		if err := rows.StructScan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan plan day: %w", err)
		}
		p.Days = append(p.Days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return &p, nil
}

// ListPlans returns all saved plans without their day slots, newest first.
func (s *PostgresStore) ListPlans(ctx context.Context) ([]*MealPlan, error) {
	var plans []*MealPlan
	err := s.db.SelectContext(ctx, &plans,
		"SELECT id, name, created_at FROM meal_plans ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// DeletePlan removes a plan; its day slots cascade. Returns ErrNotFound
// when the id doesn't exist.
func (s *PostgresStore) DeletePlan(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM meal_plans WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return checkAffected(res)
}

// GetPlanDayMarkups returns the plan's day labels paired with each planned
// recipe's markup, in day order. Days with no recipe yield empty markup.
func (s *PostgresStore) GetPlanDayMarkups(ctx context.Context, planID string) ([]DayMarkup, error) {
	var days []DayMarkup
	err := s.db.SelectContext(ctx, &days,
		`SELECT d.day_label, COALESCE(r.markup, '') AS markup
		 FROM meal_plan_days d
		 LEFT JOIN recipes r ON r.id = d.recipe_id
		 WHERE d.plan_id = $1
		 ORDER BY d.position`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan day markups: %w", err)
	}
	return days, nil
}

// AddExclusions unions the names into the plan's exclusion set. The inserts
// run in one transaction so a failure leaves the prior set untouched.
func (s *PostgresStore) AddExclusions(ctx context.Context, planID string, names []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, n := range names {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO plan_exclusions (plan_id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			planID, n,
		); err != nil {
			return fmt.Errorf("failed to add exclusion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit exclusions: %w", err)
	}
	return nil
}

// GetExclusions returns the plan's exclusion set in sorted order, empty if
// none has been recorded.
func (s *PostgresStore) GetExclusions(ctx context.Context, planID string) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names,
		"SELECT name FROM plan_exclusions WHERE plan_id = $1 ORDER BY name", planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exclusions: %w", err)
	}
	return names, nil
}

// SaveShoppingList upserts the formatted shopping-list text for a plan.
func (s *PostgresStore) SaveShoppingList(ctx context.Context, planID, content string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO shopping_lists (plan_id, content, generated_at) VALUES ($1, $2, now()) ON CONFLICT (plan_id) DO UPDATE SET content = $2, generated_at = now()",
		planID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
