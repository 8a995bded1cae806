package ingestion

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        Format
		ok          bool
	}{
		{"pdf by mime", "upload", MIMEPDF, FormatPDF, true},
		{"docx by mime", "upload", MIMEDOCX, FormatDOCX, true},
		{"text by mime with charset", "upload", "text/plain; charset=utf-8", FormatText, true},
		{"html by mime", "upload", "text/html; charset=utf-8", FormatHTML, true},
		{"pdf by extension", "Resume.PDF", "", FormatPDF, true},
		{"extension when mime is generic", "cv.docx", "application/octet-stream", FormatDOCX, true},
		{"htm extension", "cv.htm", "", FormatHTML, true},
		{"markdown is text", "cv.md", "", FormatText, true},
		{"unknown", "cv.exe", "application/octet-stream", "", false},
		{"no hints", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectFormat(tt.filename, tt.contentType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_Text(t *testing.T) {
	doc, err := Convert([]byte("Jane Doe\r\n\r\n\r\n\r\nSkills:   Go,  SQL"), "resume.txt", "")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\n\nSkills: Go, SQL", doc.Text)
	assert.Equal(t, 1, doc.PageCount)
	assert.Equal(t, FormatText, doc.Format)
}

func TestConvert_HTML(t *testing.T) {
	html := `<html><body><nav>Menu</nav><main><h1>Jane Doe</h1><p>Python developer</p></main></body></html>`

	doc, err := Convert([]byte(html), "resume.html", "")
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "Jane Doe")
	assert.Contains(t, doc.Text, "Python developer")
	assert.NotContains(t, doc.Text, "Menu")
	assert.Equal(t, FormatHTML, doc.Format)
}

func TestConvert_Unsupported(t *testing.T) {
	_, err := Convert([]byte("MZ"), "setup.exe", "application/x-msdownload")

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "setup.exe", unsupported.Filename)
}

func TestConvert_InvalidText(t *testing.T) {
	_, err := Convert([]byte{0xff, 0xfe, 0xfd}, "resume.txt", "")

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, FormatText, convErr.Format)
}

func TestConvert_CorruptPDF(t *testing.T) {
	_, err := Convert([]byte("not really a pdf"), "resume.pdf", MIMEPDF)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, FormatPDF, convErr.Format)
}

// onePagePDF builds a minimal single page PDF showing text in Helvetica.
func onePagePDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestConvert_PDF(t *testing.T) {
	doc, err := Convert(onePagePDF("Senior Developer Python"), "resume.pdf", "")
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "Python")
	assert.Equal(t, 1, doc.PageCount)
	assert.Equal(t, FormatPDF, doc.Format)
}

func TestConvert_MutatedPDF(t *testing.T) {
	original := pdfTimeout
	pdfTimeout = 200 * time.Millisecond
	t.Cleanup(func() { pdfTimeout = original })

	valid := onePagePDF("Senior Developer Python")
	for offset := 0; offset < len(valid); offset += 7 {
		for _, b := range []byte{'0', '<', ' '} {
			data := bytes.Clone(valid)
			data[offset] = b

			require.NotPanics(t, func() {
				_, err := Convert(data, "resume.pdf", MIMEPDF)
				if err != nil {
					var convErr *ConversionError
					assert.ErrorAs(t, err, &convErr, "offset %d byte %q", offset, b)
				}
			}, "offset %d byte %q", offset, b)
		}
	}
}

func TestConvert_PDFReaderPanics(t *testing.T) {
	original := pdfExtract
	pdfExtract = func([]byte) (string, int, error) {
		panic("found int64 instead of objdef")
	}
	t.Cleanup(func() { pdfExtract = original })

	_, err := Convert([]byte("%PDF-1.4"), "resume.pdf", MIMEPDF)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Contains(t, err.Error(), "malformed pdf: found int64 instead of objdef")
}

func TestConvert_PDFReaderHangs(t *testing.T) {
	originalExtract, originalTimeout := pdfExtract, pdfTimeout
	release := make(chan struct{})
	pdfExtract = func([]byte) (string, int, error) {
		<-release
		return "", 0, nil
	}
	pdfTimeout = 50 * time.Millisecond
	t.Cleanup(func() {
		close(release)
		pdfExtract, pdfTimeout = originalExtract, originalTimeout
	})

	start := time.Now()
	_, err := Convert([]byte("%PDF-1.4"), "resume.pdf", MIMEPDF)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Contains(t, err.Error(), "did not finish within 50ms")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestConvert_CorruptDOCX(t *testing.T) {
	_, err := Convert([]byte("not a zip archive"), "resume.docx", "")

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, FormatDOCX, convErr.Format)
}
