package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (f *MarkdownFormatter) Format(rep Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n_Generated on %s_\n\n%s\n",
		rep.Title, rep.GeneratedAt.Format("2006-01-02"), rep.Body)
	return buf.Bytes(), nil
}

func (f *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (f *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
