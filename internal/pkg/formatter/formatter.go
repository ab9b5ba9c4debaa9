package formatter

import (
	"fmt"
	"time"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

// Report is the rendered document: a title line, a generation timestamp and
// the generated narrative body.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Body        string
}

type Formatter interface {
	Format(rep Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ReportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
