package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (f *DOCXFormatter) Format(rep Report) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(rep.Title)

	datePar := doc.AddParagraph()
	dateRun := datePar.AddRun()
	dateRun.Properties().SetItalic(true)
	dateRun.AddText("Generated on " + rep.GeneratedAt.Format("2006-01-02"))

	doc.AddParagraph()

	bodyPar := doc.AddParagraph()
	bodyRun := bodyPar.AddRun()
	bodyRun.AddText(rep.Body)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (f *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
