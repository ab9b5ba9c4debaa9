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

// SetupChatRepository is the append-only project-scoped setup transcript.
type SetupChatRepository interface {
	Append(ctx context.Context, projectID string, sender entity.Sender, message string) error
	List(ctx context.Context, projectID string) ([]*entity.ChatMessage, error)
	// ListRecent returns the newest limit messages in chronological order,
	// the window fed to the generative service as conversation context.
	ListRecent(ctx context.Context, projectID string, limit int) ([]*entity.ChatMessage, error)
}

// RoomChatRepository is the append-only room-scoped design transcript.
type RoomChatRepository interface {
	Append(ctx context.Context, roomID string, sender entity.Sender, message string) error
	List(ctx context.Context, roomID string) ([]*entity.ChatMessage, error)
	HasAssistantMessage(ctx context.Context, roomID string) (bool, error)
}

var (
	_ SetupChatRepository = &SetupChatPostgres{}
	_ RoomChatRepository  = &RoomChatPostgres{}
)

type SetupChatPostgres struct {
	db *pgxpool.Pool
}

func NewSetupChatPostgres(db *pgxpool.Pool) *SetupChatPostgres {
	return &SetupChatPostgres{db: db}
}

func (r *SetupChatPostgres) Append(ctx context.Context, projectID string, sender entity.Sender, message string) error {
	if err := sender.Validate(); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO setup_chat_history (message_id, project_id, sender, message)
		VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), projectID, string(sender), message,
	)
	if err != nil {
		return fmt.Errorf("append setup chat message: %w", err)
	}

	return nil
}

func (r *SetupChatPostgres) List(ctx context.Context, projectID string) ([]*entity.ChatMessage, error) {
	return listChatMessages(ctx, r.db, `
		SELECT message_id, project_id, sender, message, created_at
		FROM setup_chat_history
		WHERE project_id = $1
		ORDER BY created_at`,
		projectID)
}

func (r *SetupChatPostgres) ListRecent(ctx context.Context, projectID string, limit int) ([]*entity.ChatMessage, error) {
	// Newest limit rows, re-sorted chronologically so the transcript window
	// always ends at the just-persisted message.
	return listChatMessages(ctx, r.db, `
		SELECT message_id, project_id, sender, message, created_at
		FROM (
			SELECT message_id, project_id, sender, message, created_at
			FROM setup_chat_history
			WHERE project_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at`,
		projectID, limit)
}

type RoomChatPostgres struct {
	db *pgxpool.Pool
}

func NewRoomChatPostgres(db *pgxpool.Pool) *RoomChatPostgres {
	return &RoomChatPostgres{db: db}
}

func (r *RoomChatPostgres) Append(ctx context.Context, roomID string, sender entity.Sender, message string) error {
	if err := sender.Validate(); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_history (message_id, room_id, sender, message)
		VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), roomID, string(sender), message,
	)
	if err != nil {
		return fmt.Errorf("append room chat message: %w", err)
	}

	return nil
}

func (r *RoomChatPostgres) List(ctx context.Context, roomID string) ([]*entity.ChatMessage, error) {
	return listChatMessages(ctx, r.db, `
		SELECT message_id, room_id, sender, message, created_at
		FROM chat_history
		WHERE room_id = $1
		ORDER BY created_at`,
		roomID)
}

func (r *RoomChatPostgres) HasAssistantMessage(ctx context.Context, roomID string) (bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT message_id
		FROM chat_history
		WHERE room_id = $1 AND sender = $2
		LIMIT 1`,
		roomID, string(entity.SenderAssistant),
	)

	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check assistant message: %w", err)
	}

	return true, nil
}

func listChatMessages(ctx context.Context, db *pgxpool.Pool, query string, args ...any) ([]*entity.ChatMessage, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*entity.ChatMessage, 0)
	for rows.Next() {
		var m entity.ChatMessage
		var sender string
		if err := rows.Scan(&m.ID, &m.OwnerID, &sender, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.Sender = entity.Sender(sender)
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}
