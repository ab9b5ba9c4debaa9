package entity

import (
	"fmt"
	"time"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

func (s Sender) Validate() error {
	switch s {
	case SenderUser, SenderAssistant:
		return nil
	default:
		return fmt.Errorf("unknown sender: %s", s)
	}
}

type DesignPhase string

// Design phase is the durable state of the per-room design conversation.
// It replaces re-deriving confirmation from the chat transcript: the
// transition to DesignPhaseConfirmed is recorded once and is terminal.
const (
	// DesignPhaseCollecting - required attributes are still being gathered
	DesignPhaseCollecting DesignPhase = "COLLECTING"
	// DesignPhaseConfirming - all attributes gathered, waiting for an explicit yes
	DesignPhaseConfirming DesignPhase = "CONFIRMING"
	// DesignPhaseConfirmed - design accepted by the user, terminal
	DesignPhaseConfirmed DesignPhase = "CONFIRMED"
)

type User struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Project struct {
	ID        string    `json:"project_id"`
	UserID    string    `json:"-"`
	Name      string    `json:"project_name"`
	CreatedAt time.Time `json:"created_at"`
}

type Floor struct {
	ID          string    `json:"floor_id"`
	ProjectID   string    `json:"project_id"`
	FloorNumber int       `json:"floor_number"`
	CreatedAt   time.Time `json:"created_at"`
}

type Room struct {
	ID          string      `json:"room_id"`
	FloorID     string      `json:"floor_id"`
	Name        string      `json:"room_name"`
	Confirmed   bool        `json:"confirmed"`
	DesignPhase DesignPhase `json:"design_phase"`
	CreatedAt   time.Time   `json:"created_at"`
}

// RoomContext is a room joined with its floor and owning project,
// used by handlers that address a room directly.
type RoomContext struct {
	Room
	FloorNumber int    `json:"floor_number"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// Detail is a typed key/value fact attached to a project or a room.
type Detail struct {
	ID        string    `json:"detail_id"`
	OwnerID   string    `json:"-"`
	Type      string    `json:"detail_type"`
	Value     string    `json:"detail_value"`
	CreatedAt time.Time `json:"created_at"`
}

type OuterArea struct {
	ID          string    `json:"area_id"`
	ProjectID   string    `json:"-"`
	AreaType    string    `json:"area_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID        string    `json:"message_id"`
	OwnerID   string    `json:"-"`
	Sender    Sender    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}

// DesignQuestion is the per-room, per-attribute record the room design
// state machine is driven by. A complete record is never overwritten.
type DesignQuestion struct {
	ID         string    `json:"question_id"`
	RoomID     string    `json:"room_id"`
	Type       string    `json:"question_type"`
	Answer     string    `json:"answer"`
	IsComplete bool      `json:"is_complete"`
	CreatedAt  time.Time `json:"created_at"`
}
