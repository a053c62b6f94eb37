package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 30, 23, 30, 0, 0, time.FixedZone("WAT", 3600))

func TestFilename(t *testing.T) {
	assert.Equal(t, "Deed_/_Contract_2024-06-30.txt", Filename("Deed / Contract", "txt", fixedNow))
	assert.Equal(t, "Enforcement_of_Fundamental_Rights_2024-06-30.docx", Filename("Enforcement  of\tFundamental Rights", "docx", fixedNow))
}

func TestRenderTextIsByteIdentical(t *testing.T) {
	content := "IN THE HIGH COURT\n\tBETWEEN: A & B <C>\n"
	f, err := Render("Bail Application", content, FormatTXT, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, []byte(content), f.Body)
	assert.Equal(t, ContentTypeText, f.ContentType)
	assert.Equal(t, "Bail_Application_2024-06-30.txt", f.Filename)
	assert.False(t, f.Inline)
}

func TestRenderDocxShim(t *testing.T) {
	f, err := Render("Affidavit", "A & B <script>", FormatDOCX, fixedNow)
	require.NoError(t, err)
	body := string(f.Body)
	assert.Equal(t, ContentTypeDOCX, f.ContentType)
	assert.Contains(t, body, "font-family: 'Times New Roman', Times, serif; font-size: 12pt;")
	assert.Contains(t, body, "<pre>A &amp; B &lt;script&gt;</pre>")
	assert.Equal(t, "Affidavit_2024-06-30.docx", f.Filename)
}

func TestRenderPrintPage(t *testing.T) {
	f, err := Render("Legal Opinion", "Opinion text", FormatPDF, fixedNow)
	require.NoError(t, err)
	body := string(f.Body)
	assert.True(t, f.Inline)
	assert.Contains(t, body, "<title>Legal Opinion</title>")
	assert.Contains(t, body, "window.print();")
	assert.Contains(t, body, "<pre>Opinion text</pre>")
}

func TestRenderRejectsEmptyContent(t *testing.T) {
	_, err := Render("Affidavit", "", FormatTXT, fixedNow)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTXT, f)

	f, err = ParseFormat("DOCX")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, f)

	_, err = ParseFormat("rtf")
	assert.Error(t, err)
}
