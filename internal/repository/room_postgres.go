package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkondratev/housing-assistant/internal/entity"
)

// RoomRepository defines the interface for room persistence
type RoomRepository interface {
	// CreateIfAbsent inserts an unconfirmed room unless a room with the same
	// name already exists on the floor. Reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, room entity.Room) (bool, error)
	DeleteByName(ctx context.Context, floorID, name string) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.Room, error)
	ListConfirmed(ctx context.Context, projectID string) ([]*entity.Room, error)
	ListConfirmedExcept(ctx context.Context, projectID, roomID string) ([]*entity.Room, error)
	// GetContextForUser joins the room with its floor and owning project;
	// rooms not owned by userID yield entity.ErrRoomAccess.
	GetContextForUser(ctx context.Context, roomID, userID string) (*entity.RoomContext, error)
	ConfirmAll(ctx context.Context, projectID string) error
	SetDesignPhase(ctx context.Context, roomID string, phase entity.DesignPhase) error
}

var _ RoomRepository = &RoomPostgres{}

type RoomPostgres struct {
	db *pgxpool.Pool
}

func NewRoomPostgres(db *pgxpool.Pool) *RoomPostgres {
	return &RoomPostgres{db: db}
}

func (r *RoomPostgres) CreateIfAbsent(ctx context.Context, room entity.Room) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO rooms (room_id, floor_id, room_name, confirmed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (floor_id, room_name) DO NOTHING`,
		room.ID, room.FloorID, room.Name, room.Confirmed,
	)
	if err != nil {
		return false, fmt.Errorf("create room: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *RoomPostgres) DeleteByName(ctx context.Context, floorID, name string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM rooms
		WHERE floor_id = $1 AND room_name = $2`,
		floorID, name,
	)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	return nil
}

func (r *RoomPostgres) ListByProject(ctx context.Context, projectID string) ([]*entity.Room, error) {
	return r.listRooms(ctx, `
		SELECT r.room_id, r.floor_id, r.room_name, r.confirmed, r.design_phase, r.created_at
		FROM rooms r
		JOIN floors f ON r.floor_id = f.floor_id
		WHERE f.project_id = $1
		ORDER BY f.floor_number, r.room_name`,
		projectID)
}

func (r *RoomPostgres) ListConfirmed(ctx context.Context, projectID string) ([]*entity.Room, error) {
	return r.listRooms(ctx, `
		SELECT r.room_id, r.floor_id, r.room_name, r.confirmed, r.design_phase, r.created_at
		FROM rooms r
		JOIN floors f ON r.floor_id = f.floor_id
		WHERE f.project_id = $1 AND r.confirmed
		ORDER BY f.floor_number, r.room_name`,
		projectID)
}

func (r *RoomPostgres) ListConfirmedExcept(ctx context.Context, projectID, roomID string) ([]*entity.Room, error) {
	return r.listRooms(ctx, `
		SELECT r.room_id, r.floor_id, r.room_name, r.confirmed, r.design_phase, r.created_at
		FROM rooms r
		JOIN floors f ON r.floor_id = f.floor_id
		WHERE f.project_id = $1 AND r.confirmed AND r.room_id != $2
		ORDER BY f.floor_number, r.room_name`,
		projectID, roomID)
}

func (r *RoomPostgres) GetContextForUser(ctx context.Context, roomID, userID string) (*entity.RoomContext, error) {
	row := r.db.QueryRow(ctx, `
		SELECT r.room_id, r.floor_id, r.room_name, r.confirmed, r.design_phase, r.created_at,
		       f.floor_number, p.project_id, p.project_name
		FROM rooms r
		JOIN floors f ON r.floor_id = f.floor_id
		JOIN projects p ON f.project_id = p.project_id
		WHERE r.room_id = $1 AND p.user_id = $2`,
		roomID, userID,
	)

	var rc entity.RoomContext
	err := row.Scan(
		&rc.ID, &rc.FloorID, &rc.Name, &rc.Confirmed, &rc.DesignPhase, &rc.CreatedAt,
		&rc.FloorNumber, &rc.ProjectID, &rc.ProjectName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrRoomAccess
		}
		return nil, fmt.Errorf("get room context: %w", err)
	}

	return &rc, nil
}

func (r *RoomPostgres) ConfirmAll(ctx context.Context, projectID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rooms
		SET confirmed = TRUE
		WHERE floor_id IN (SELECT floor_id FROM floors WHERE project_id = $1)`,
		projectID,
	)
	if err != nil {
		return fmt.Errorf("confirm rooms: %w", err)
	}

	return nil
}

func (r *RoomPostgres) SetDesignPhase(ctx context.Context, roomID string, phase entity.DesignPhase) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE rooms
		SET design_phase = $2
		WHERE room_id = $1`,
		roomID, string(phase),
	)
	if err != nil {
		return fmt.Errorf("set design phase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrRoomNotFound
	}

	return nil
}

func (r *RoomPostgres) listRooms(ctx context.Context, query string, args ...any) ([]*entity.Room, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*entity.Room, 0)
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.FloorID, &room.Name, &room.Confirmed, &room.DesignPhase, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}
