package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkondratev/housing-assistant/internal/entity"
)

// HouseDetailRepository stores house-level key/value facts. Inserts are
// first-write-wins: the unique (project_id, detail_type) constraint plus
// ON CONFLICT DO NOTHING drop later contradicting mentions silently.
type HouseDetailRepository interface {
	InsertIfAbsent(ctx context.Context, projectID, detailType, detailValue string) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.Detail, error)
	MapByProject(ctx context.Context, projectID string) (map[string]string, error)
}

// RoomDetailRepository stores room-scoped key/value facts with the same
// first-write-wins contract keyed by (room_id, detail_type).
type RoomDetailRepository interface {
	InsertIfAbsent(ctx context.Context, roomID, detailType, detailValue string) error
	ListByRoom(ctx context.Context, roomID string) ([]*entity.Detail, error)
	MapByRoom(ctx context.Context, roomID string) (map[string]string, error)
}

var (
	_ HouseDetailRepository = &HouseDetailPostgres{}
	_ RoomDetailRepository  = &RoomDetailPostgres{}
)

type HouseDetailPostgres struct {
	db *pgxpool.Pool
}

func NewHouseDetailPostgres(db *pgxpool.Pool) *HouseDetailPostgres {
	return &HouseDetailPostgres{db: db}
}

func (r *HouseDetailPostgres) InsertIfAbsent(ctx context.Context, projectID, detailType, detailValue string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO house_details (detail_id, project_id, detail_type, detail_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, detail_type) DO NOTHING`,
		uuid.New().String(), projectID, detailType, detailValue,
	)
	if err != nil {
		return fmt.Errorf("insert house detail: %w", err)
	}

	return nil
}

func (r *HouseDetailPostgres) ListByProject(ctx context.Context, projectID string) ([]*entity.Detail, error) {
	return listDetails(ctx, r.db, `
		SELECT detail_id, project_id, detail_type, detail_value, created_at
		FROM house_details
		WHERE project_id = $1
		ORDER BY created_at`,
		projectID)
}

func (r *HouseDetailPostgres) MapByProject(ctx context.Context, projectID string) (map[string]string, error) {
	details, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return detailsToMap(details), nil
}

type RoomDetailPostgres struct {
	db *pgxpool.Pool
}

func NewRoomDetailPostgres(db *pgxpool.Pool) *RoomDetailPostgres {
	return &RoomDetailPostgres{db: db}
}

func (r *RoomDetailPostgres) InsertIfAbsent(ctx context.Context, roomID, detailType, detailValue string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO room_details (detail_id, room_id, detail_type, detail_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, detail_type) DO NOTHING`,
		uuid.New().String(), roomID, detailType, detailValue,
	)
	if err != nil {
		return fmt.Errorf("insert room detail: %w", err)
	}

	return nil
}

func (r *RoomDetailPostgres) ListByRoom(ctx context.Context, roomID string) ([]*entity.Detail, error) {
	return listDetails(ctx, r.db, `
		SELECT detail_id, room_id, detail_type, detail_value, created_at
		FROM room_details
		WHERE room_id = $1
		ORDER BY created_at`,
		roomID)
}

func (r *RoomDetailPostgres) MapByRoom(ctx context.Context, roomID string) (map[string]string, error) {
	details, err := r.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return detailsToMap(details), nil
}

func listDetails(ctx context.Context, db *pgxpool.Pool, query string, args ...any) ([]*entity.Detail, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	defer rows.Close()

	details := make([]*entity.Detail, 0)
	for rows.Next() {
		var d entity.Detail
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Type, &d.Value, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		details = append(details, &d)
	}

	return details, rows.Err()
}

func detailsToMap(details []*entity.Detail) map[string]string {
	m := make(map[string]string, len(details))
	for _, d := range details {
		if _, ok := m[d.Type]; !ok {
			m[d.Type] = d.Value
		}
	}
	return m
}
