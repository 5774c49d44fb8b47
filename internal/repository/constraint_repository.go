package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// ConstraintRepository handles persistence of scheduling constraints.
type ConstraintRepository struct {
	db *sqlx.DB
}

// NewConstraintRepository constructs the repository.
func NewConstraintRepository(db *sqlx.DB) *ConstraintRepository {
	return &ConstraintRepository{db: db}
}

// List returns all stored constraints, hard ones first, then by priority.
func (r *ConstraintRepository) List(ctx context.Context) ([]models.Constraint, error) {
	const query = `SELECT id, kind, description, priority, is_hard, params, created_at FROM constraints ORDER BY is_hard DESC, priority DESC, created_at`
	var constraints []models.Constraint
	if err := r.db.SelectContext(ctx, &constraints, query); err != nil {
		return nil, fmt.Errorf("list constraints: %w", err)
	}
	return constraints, nil
}

// Create stores a new constraint and returns it with generated fields set.
func (r *ConstraintRepository) Create(ctx context.Context, constraint *models.Constraint) error {
	constraint.ID = uuid.NewString()
	constraint.CreatedAt = time.Now()
	const query = `INSERT INTO constraints (id, kind, description, priority, is_hard, params, created_at)
        VALUES (:id, :kind, :description, :priority, :is_hard, :params, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, constraint); err != nil {
		return fmt.Errorf("create constraint: %w", err)
	}
	return nil
}
