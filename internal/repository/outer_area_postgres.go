package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkondratev/housing-assistant/internal/entity"
)

// OuterAreaRepository stores outdoor-feature facts, first-write-wins per
// (project_id, area_type).
type OuterAreaRepository interface {
	InsertIfAbsent(ctx context.Context, projectID, areaType, description string) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.OuterArea, error)
	MapByProject(ctx context.Context, projectID string) (map[string]string, error)
}

var _ OuterAreaRepository = &OuterAreaPostgres{}

type OuterAreaPostgres struct {
	db *pgxpool.Pool
}

func NewOuterAreaPostgres(db *pgxpool.Pool) *OuterAreaPostgres {
	return &OuterAreaPostgres{db: db}
}

func (r *OuterAreaPostgres) InsertIfAbsent(ctx context.Context, projectID, areaType, description string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO outer_areas (area_id, project_id, area_type, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, area_type) DO NOTHING`,
		uuid.New().String(), projectID, areaType, description,
	)
	if err != nil {
		return fmt.Errorf("insert outer area: %w", err)
	}

	return nil
}

func (r *OuterAreaPostgres) ListByProject(ctx context.Context, projectID string) ([]*entity.OuterArea, error) {
	rows, err := r.db.Query(ctx, `
		SELECT area_id, project_id, area_type, description, created_at
		FROM outer_areas
		WHERE project_id = $1
		ORDER BY created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list outer areas: %w", err)
	}
	defer rows.Close()

	areas := make([]*entity.OuterArea, 0)
	for rows.Next() {
		var a entity.OuterArea
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.AreaType, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outer area: %w", err)
		}
		areas = append(areas, &a)
	}

	return areas, rows.Err()
}

func (r *OuterAreaPostgres) MapByProject(ctx context.Context, projectID string) (map[string]string, error) {
	areas, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(areas))
	for _, a := range areas {
		if _, ok := m[a.AreaType]; !ok {
			m[a.AreaType] = a.Description
		}
	}

	return m, nil
}
