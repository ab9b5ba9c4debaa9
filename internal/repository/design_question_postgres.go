package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkondratev/housing-assistant/internal/entity"
)

// DesignQuestionRepository is the durable state of the per-room design state
// machine. RecordAnswer is first-write-wins: once an attribute is complete a
// later extraction of the same type must not overwrite it, which the unique
// (room_id, question_type) constraint guarantees.
type DesignQuestionRepository interface {
	RecordAnswer(ctx context.Context, roomID, questionType, answer string) error
	ListByRoom(ctx context.Context, roomID string) ([]*entity.DesignQuestion, error)
	// CompleteTypes returns the set of attribute types marked complete.
	CompleteTypes(ctx context.Context, roomID string) (map[string]bool, error)
}

var _ DesignQuestionRepository = &DesignQuestionPostgres{}

type DesignQuestionPostgres struct {
	db *pgxpool.Pool
}

func NewDesignQuestionPostgres(db *pgxpool.Pool) *DesignQuestionPostgres {
	return &DesignQuestionPostgres{db: db}
}

func (r *DesignQuestionPostgres) RecordAnswer(ctx context.Context, roomID, questionType, answer string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO room_design_questions (question_id, room_id, question_type, answer, is_complete)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (room_id, question_type) DO NOTHING`,
		uuid.New().String(), roomID, questionType, answer,
	)
	if err != nil {
		return fmt.Errorf("record design answer: %w", err)
	}

	return nil
}

func (r *DesignQuestionPostgres) ListByRoom(ctx context.Context, roomID string) ([]*entity.DesignQuestion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT question_id, room_id, question_type, COALESCE(answer, ''), is_complete, created_at
		FROM room_design_questions
		WHERE room_id = $1
		ORDER BY created_at`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("list design questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*entity.DesignQuestion, 0)
	for rows.Next() {
		var q entity.DesignQuestion
		if err := rows.Scan(&q.ID, &q.RoomID, &q.Type, &q.Answer, &q.IsComplete, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan design question: %w", err)
		}
		questions = append(questions, &q)
	}

	return questions, rows.Err()
}

func (r *DesignQuestionPostgres) CompleteTypes(ctx context.Context, roomID string) (map[string]bool, error) {
	questions, err := r.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	complete := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.IsComplete {
			complete[q.Type] = true
		}
	}

	return complete, nil
}
