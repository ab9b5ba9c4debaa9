package entity

// Setup chat actions. Transitions of the setup conversation are driven by a
// caller-supplied action signal, not inferred from the transcript.
type SetupAction string

const (
	SetupActionNone      SetupAction = ""
	SetupActionOuterArea SetupAction = "outer_area"
	SetupActionFinalize  SetupAction = "finalize"
)

func (a SetupAction) Validate() error {
	switch a {
	case SetupActionNone, SetupActionOuterArea, SetupActionFinalize:
		return nil
	default:
		return ErrInvalidParameter
	}
}

type ReportFormat string

const (
	FormatPDF      ReportFormat = "pdf"
	FormatDOCX     ReportFormat = "docx"
	FormatMarkdown ReportFormat = "md"
)

type CreateProjectRequest struct {
	ProjectName string `json:"project_name"`
}

type ChatTurnRequest struct {
	Message string      `json:"message"`
	Action  SetupAction `json:"action,omitempty"`
}

type ChatTurnResponse struct {
	Message string `json:"message"`
}

// ReportFile is a rendered report ready to be sent as a download.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SetupView is the project setup aggregate: transcript, collected facts and
// the current room list.
type SetupView struct {
	Project      *Project       `json:"project"`
	ChatHistory  []*ChatMessage `json:"chat_history"`
	HouseDetails []*Detail      `json:"house_details"`
	OuterAreas   []*OuterArea   `json:"outer_areas"`
	Rooms        []*Room        `json:"rooms"`
}

// RoomView is the per-room design aggregate.
type RoomView struct {
	Room        *RoomContext   `json:"room"`
	ChatHistory []*ChatMessage `json:"chat_history"`
	Details     []*Detail      `json:"details"`
	Siblings    []*Room        `json:"confirmed_rooms"`
}
