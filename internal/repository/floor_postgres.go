package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkondratev/housing-assistant/internal/entity"
)

// FloorRepository defines the interface for floor persistence
type FloorRepository interface {
	// GetOrCreateFirst returns the project's floor, creating floor 1 if the
	// project has none yet.
	GetOrCreateFirst(ctx context.Context, projectID string) (*entity.Floor, error)
	// Consolidate replaces all of the project's floors with a single floor 1
	// and re-attaches every room to it.
	Consolidate(ctx context.Context, projectID string) (*entity.Floor, error)
}

var _ FloorRepository = &FloorPostgres{}

type FloorPostgres struct {
	db *pgxpool.Pool
}

func NewFloorPostgres(db *pgxpool.Pool) *FloorPostgres {
	return &FloorPostgres{db: db}
}

func (r *FloorPostgres) GetOrCreateFirst(ctx context.Context, projectID string) (*entity.Floor, error) {
	row := r.db.QueryRow(ctx, `
		SELECT floor_id, project_id, floor_number, created_at
		FROM floors
		WHERE project_id = $1
		ORDER BY floor_number
		LIMIT 1`,
		projectID,
	)

	floor, err := scanFloor(row)
	if err == nil {
		return floor, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get floor: %w", err)
	}

	row = r.db.QueryRow(ctx, `
		INSERT INTO floors (floor_id, project_id, floor_number)
		VALUES ($1, $2, 1)
		RETURNING floor_id, project_id, floor_number, created_at`,
		uuid.New().String(), projectID,
	)

	floor, err = scanFloor(row)
	if err != nil {
		return nil, fmt.Errorf("create floor: %w", err)
	}

	return floor, nil
}

func (r *FloorPostgres) Consolidate(ctx context.Context, projectID string) (*entity.Floor, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin consolidate floors: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO floors (floor_id, project_id, floor_number)
		VALUES ($1, $2, 1)
		RETURNING floor_id, project_id, floor_number, created_at`,
		uuid.New().String(), projectID,
	)

	floor, err := scanFloor(row)
	if err != nil {
		return nil, fmt.Errorf("create consolidated floor: %w", err)
	}

	// Move rooms to the new floor before dropping the old floors; deleting
	// first would cascade the rooms away.
	_, err = tx.Exec(ctx, `
		UPDATE rooms
		SET floor_id = $1
		WHERE floor_id IN (SELECT floor_id FROM floors WHERE project_id = $2 AND floor_id != $1)`,
		floor.ID, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("reattach rooms: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM floors
		WHERE project_id = $1 AND floor_id != $2`,
		projectID, floor.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("drop old floors: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit consolidate floors: %w", err)
	}

	return floor, nil
}

func scanFloor(row pgx.Row) (*entity.Floor, error) {
	var floor entity.Floor
	if err := row.Scan(&floor.ID, &floor.ProjectID, &floor.FloorNumber, &floor.CreatedAt); err != nil {
		return nil, err
	}
	return &floor, nil
}
