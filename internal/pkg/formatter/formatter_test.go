package formatter_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/formatter"
	"github.com/stretchr/testify/require"
)

var sampleReport = formatter.Report{
	Title:       "Summary Report: Dream House",
	GeneratedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	Body:        "1. General Information\n- House Type: Multi-story\n\nOverall Summary: Looking great!",
}

func TestFactory_CreatesEveryFormat(t *testing.T) {
	factory := formatter.NewFactory()

	for format, wantExt := range map[entity.ReportFormat]string{
		entity.FormatPDF:      ".pdf",
		entity.FormatDOCX:     ".docx",
		entity.FormatMarkdown: ".md",
	} {
		fm, err := factory.Create(format)
		require.NoError(t, err, "format %s", format)
		require.Equal(t, wantExt, fm.FileExtension())
		require.NotEmpty(t, fm.ContentType())
	}

	_, err := factory.Create(entity.ReportFormat("xlsx"))
	require.Error(t, err)
}

func TestMarkdownFormatter_Layout(t *testing.T) {
	data, err := formatter.NewMarkdownFormatter().Format(sampleReport)
	require.NoError(t, err)

	want := "# Summary Report: Dream House\n\n_Generated on 2026-03-14_\n\n" + sampleReport.Body + "\n"
	require.Equal(t, want, string(data))
}

func TestPDFFormatter_ProducesPDF(t *testing.T) {
	data, err := formatter.NewPDFFormatter().Format(sampleReport)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should start with the PDF magic")
}

func TestPDFFormatter_HandlesNonASCIIBody(t *testing.T) {
	rep := sampleReport
	rep.Body = "Жилая комната — cozy vibe 🏡"

	data, err := formatter.NewPDFFormatter().Format(rep)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestDOCXFormatter_ProducesDocument(t *testing.T) {
	data, err := formatter.NewDOCXFormatter().Format(sampleReport)
	require.NoError(t, err)
	// DOCX is a zip container.
	require.True(t, bytes.HasPrefix(data, []byte("PK")), "output should be a zip archive")
}
