// Package export renders draft text into downloadable files.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"lexaid/utils"
)

// Format is an export target.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// ParseFormat accepts txt, docx or pdf, case-insensitively. Empty means txt.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTXT, nil
	case FormatTXT, FormatDOCX, FormatPDF:
		return f, nil
	}
	return "", utils.NewValidationError("format", fmt.Sprintf("unsupported export format %q", s))
}

// File is a rendered export. Inline files are meant to be displayed by the
// browser rather than downloaded.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
	Inline      bool
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename builds "<Name_with_underscores>_<YYYY-MM-DD>.<ext>" using the UTC date of now.
func Filename(documentName string, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", whitespaceRun.ReplaceAllString(documentName, "_"), utils.DateStamp(now), ext)
}

var docxTmpl = template.Must(template.New("docx").Parse(`<!DOCTYPE html>
<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>
<head><meta charset='utf-8'><title>Export HTML To Doc</title>
<style>
body { font-family: 'Times New Roman', Times, serif; font-size: 12pt; line-height: 1.5; }
pre { white-space: pre-wrap; word-wrap: break-word; font-family: 'Times New Roman', Times, serif; font-size: 12pt; }
</style>
</head><body><pre>{{.Content}}</pre></body></html>`))

var printTmpl = template.Must(template.New("print").Parse(`<html>
<head>
<title>{{.Name}}</title>
<style>
body { font-family: 'Times New Roman', Times, serif; font-size: 12pt; line-height: 1.5; margin: 30px; }
pre { white-space: pre-wrap; word-wrap: break-word; font-family: inherit; font-size: inherit; }
</style>
</head>
<body>
<pre>{{.Content}}</pre>
<script>
window.onload = function() {
window.print();
}
</script>
</body>
</html>`))

type page struct {
	Name    string
	Content string
}

// Render produces the export of content for a document named documentName.
// Text exports are the content bytes unchanged; the HTML shims escape it.
func Render(documentName, content string, format Format, now time.Time) (*File, error) {
	if content == "" {
		return nil, utils.NewValidationError("content", "cannot export an empty document")
	}

	switch format {
	case FormatTXT:
		return &File{
			Filename:    Filename(documentName, "txt", now),
			ContentType: ContentTypeText,
			Body:        []byte(content),
		}, nil
	case FormatDOCX:
		var buf bytes.Buffer
		if err := docxTmpl.Execute(&buf, page{Name: documentName, Content: content}); err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
		return &File{
			Filename:    Filename(documentName, "docx", now),
			ContentType: ContentTypeDOCX,
			Body:        buf.Bytes(),
		}, nil
	case FormatPDF:
		var buf bytes.Buffer
		if err := printTmpl.Execute(&buf, page{Name: documentName, Content: content}); err != nil {
			return nil, fmt.Errorf("render print page: %w", err)
		}
		return &File{
			Filename:    Filename(documentName, "html", now),
			ContentType: ContentTypeHTML,
			Body:        buf.Bytes(),
			Inline:      true,
		}, nil
	}
	return nil, utils.NewValidationError("format", fmt.Sprintf("unsupported export format %q", format))
}
