package validator

import (
	"fmt"
	"strings"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

const maxMessageLength = 4000

func ValidateCreateProject(req *entity.CreateProjectRequest) error {
	req.ProjectName = strings.TrimSpace(req.ProjectName)

	if req.ProjectName == "" {
		return fmt.Errorf("%w: project_name", entity.ErrMissingField)
	}

	return nil
}

// ValidateChatTurn checks a conversational turn. An empty message is allowed
// on the setup endpoint when an action is supplied.
func ValidateChatTurn(req *entity.ChatTurnRequest, requireMessage bool) error {
	req.Message = strings.TrimSpace(req.Message)

	if err := req.Action.Validate(); err != nil {
		return fmt.Errorf("%w: action", entity.ErrInvalidParameter)
	}
	if requireMessage && req.Message == "" && req.Action == entity.SetupActionNone {
		return fmt.Errorf("%w: message", entity.ErrMissingField)
	}
	if len(req.Message) > maxMessageLength {
		return fmt.Errorf("%w: message too long", entity.ErrInvalidParameter)
	}

	return nil
}

// ParseReportFormat maps the report query parameter to a known format,
// defaulting to PDF.
func ParseReportFormat(raw string) (entity.ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "pdf":
		return entity.FormatPDF, nil
	case "docx":
		return entity.FormatDOCX, nil
	case "md", "markdown":
		return entity.FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: format", entity.ErrInvalidFormat)
	}
}
