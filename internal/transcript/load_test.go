package transcript

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/minutes/internal/docx"
)

func TestLoad_VTT(t *testing.T) {
	vttContent := `WEBVTT

1
00:00:00.000 --> 00:00:05.579
Okay, let's start with health and safety.

2
00:00:05.579 --> 00:00:06.858
Sam: no incidents this month.

3.1
00:00:06.858 --> 00:00:34.950
  Practical completion is still 30/11/2026.  
`

	got, err := Load([]byte(vttContent), "meeting.vtt")
	require.NoError(t, err)

	assert.Equal(t, "Okay, let's start with health and safety.\n"+
		"Sam: no incidents this month.\n"+
		"Practical completion is still 30/11/2026.", got)
}

func TestParseVTT_KeepsNonNumericLines(t *testing.T) {
	got := ParseVTT([]byte("WEBVTT - header\n\n42\nline with 42 in it\n1.5\nA.B\r\n"))
	assert.Equal(t, "line with 42 in it\nA.B", got)
}

func TestLoad_Text(t *testing.T) {
	for _, name := range []string{"notes.txt", "NOTES.TXT", "notes.text"} {
		got, err := Load([]byte("caf\xc3\xa9 \xff\xfeok"), name)
		require.NoError(t, err, name)
		assert.Equal(t, "café ok", got, name)
	}
}

func TestLoad_DOCX(t *testing.T) {
	body := docx.Paragraph("", "  Opening remarks  ") +
		docx.Paragraph("", "") +
		docx.Paragraph("", "   ") +
		docx.Paragraph("", "Action: Sam to send drawings")
	data, err := docx.NewBuilder(docx.Document{Body: body}).Bytes()
	require.NoError(t, err)

	got, err := Load(data, "Transcript.DOCX")
	require.NoError(t, err)
	assert.Equal(t, "Opening remarks\nAction: Sam to send drawings", got)
}

func TestLoad_BrokenDOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("readme.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Load(buf.Bytes(), "broken.docx")
	require.Error(t, err)
	assert.ErrorIs(t, err, docx.ErrNotDocx)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"minutes.pdf", "noextension", "archive.tar.gz", "file.vtt.bak"} {
		_, err := Load([]byte("data"), name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}
