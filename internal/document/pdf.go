package document

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

type line struct {
	text string
	size int
	bold bool
	gap  int // vertical distance from the previous line, in points
}

// Turkish letters outside WinAnsi fall back to their closest Latin form so
// the standard Helvetica fonts can render them.
var winAnsiFallback = strings.NewReplacer(
	"ğ", "g", "Ğ", "G",
	"ş", "s", "Ş", "S",
	"ı", "i", "İ", "I",
)

func buildPDF(lines []line) ([]byte, error) {
	if len(lines) == 0 {
		lines = []line{{text: FormTitle, size: 16, bold: true}}
	}

	var content bytes.Buffer
	content.WriteString("BT\n50 790 Td\n")
	for _, l := range lines {
		encoded, err := pdfText(l.text)
		if err != nil {
			return nil, err
		}
		font := "F1"
		if l.bold {
			font = "F2"
		}
		fmt.Fprintf(&content, "/%s %d Tf\n", font, l.size)
		if l.gap > 0 {
			fmt.Fprintf(&content, "0 -%d Td\n", l.gap)
		}
		content.WriteString("(")
		content.Write(encoded)
		content.WriteString(") Tj\n")
	}
	content.WriteString("ET")

	stream := content.Bytes()
	objects := [][]byte{
		[]byte("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n"),
		[]byte("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n"),
		[]byte("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>\nendobj\n"),
		[]byte("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n"),
		[]byte("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>\nendobj\n"),
		append(append([]byte(fmt.Sprintf("6 0 obj\n<< /Length %d >>\nstream\n", len(stream))), stream...), []byte("\nendstream\nendobj\n")...),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.Write(obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart)

	return out.Bytes(), nil
}

// pdfText converts a UTF-8 string to an escaped WinAnsi literal string body.
func pdfText(v string) ([]byte, error) {
	encoded, err := charmap.Windows1252.NewEncoder().String(winAnsiFallback.Replace(v))
	if err != nil {
		return nil, fmt.Errorf("encode pdf text %q: %w", v, err)
	}
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return []byte(replacer.Replace(encoded)), nil
}
