package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mfiorvanti/stride/internal/core/domain"
)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, title, goal_type, unit, status,
			target_value, deadline, start_date, current_value,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :title, :goal_type, :unit, :status,
			:target_value, :deadline, :start_date, :current_value,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return domain.ErrUserNotFound
			}
			if pqErr.Code == "23505" {
				return domain.ErrGoalConflict
			}
		}
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	var goal domain.Goal
	query := `SELECT * FROM goals WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &goal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string, filter domain.GoalFilter) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}

	query := `
		SELECT * FROM goals
		WHERE user_id = $1 AND deleted_at IS NULL
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR goal_type = $3)
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, userID, filter.Status, filter.Type)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	goal.Version++
	goal.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE goals
		SET title = :title,
		    status = :status,
		    target_value = :target_value,
		    deadline = :deadline,
		    current_value = :current_value,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1
		  AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, goal)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, goal.ID)
		if !exists {
			return domain.ErrGoalNotFound
		}
		return domain.ErrGoalConflict
	}

	return nil
}

func (r *PostgresGoalRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE goals
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

func (r *PostgresGoalRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM goals WHERE id = $1", id)
	return count > 0, err
}
