package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkondratev/housing-assistant/internal/entity"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	Create(ctx context.Context, project entity.Project) (*entity.Project, error)
	// GetForUser returns the project only when it is owned by userID;
	// a missing or foreign project yields entity.ErrProjectAccess so the
	// caller cannot distinguish (and leak) the two cases.
	GetForUser(ctx context.Context, id, userID string) (*entity.Project, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Project, error)
	Delete(ctx context.Context, id string) error
}

var _ ProjectRepository = &ProjectPostgres{}

type ProjectPostgres struct {
	db *pgxpool.Pool
}

func NewProjectPostgres(db *pgxpool.Pool) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

func (r *ProjectPostgres) Create(ctx context.Context, project entity.Project) (*entity.Project, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO projects (project_id, user_id, project_name)
		VALUES ($1, $2, $3)
		RETURNING project_id, user_id, project_name, created_at`,
		project.ID, project.UserID, project.Name,
	)

	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return created, nil
}

func (r *ProjectPostgres) GetForUser(ctx context.Context, id, userID string) (*entity.Project, error) {
	row := r.db.QueryRow(ctx, `
		SELECT project_id, user_id, project_name, created_at
		FROM projects
		WHERE project_id = $1 AND user_id = $2`,
		id, userID,
	)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrProjectAccess
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

func (r *ProjectPostgres) ListByUser(ctx context.Context, userID string) ([]*entity.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT project_id, user_id, project_name, created_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*entity.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Delete removes the project; every dependent row goes with it through
// ON DELETE CASCADE. Runs in a transaction so a failure leaves the
// project intact.
func (r *ProjectPostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrProjectNotFound
	}

	return tx.Commit(ctx)
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var project entity.Project
	if err := row.Scan(&project.ID, &project.UserID, &project.Name, &project.CreatedAt); err != nil {
		return nil, err
	}
	return &project, nil
}
