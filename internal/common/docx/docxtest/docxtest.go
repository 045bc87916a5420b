// Package docxtest builds small .docx files for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

const documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><w:body>`

const documentTail = `<w:sectPr/></w:body></w:document>`

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Run is a single w:r with one w:t. Bold runs carry <w:b/> so tests can check
// formatting survives substitution.
func Run(text string, bold bool) string {
	props := ""
	if bold {
		props = `<w:rPr><w:b/></w:rPr>`
	}
	return `<w:r>` + props + `<w:t xml:space="preserve">` + escape(text) + `</w:t></w:r>`
}

// Paragraph is a w:p made of one run per part; several parts simulate the run
// splitting Word does around spell-check and formatting boundaries.
func Paragraph(parts ...string) string {
	var b strings.Builder
	b.WriteString(`<w:p>`)
	for _, part := range parts {
		b.WriteString(Run(part, false))
	}
	b.WriteString(`</w:p>`)
	return b.String()
}

// RawParagraph wraps pre-built runs.
func RawParagraph(runs ...string) string {
	return `<w:p>` + strings.Join(runs, "") + `</w:p>`
}

// Table builds a w:tbl with one paragraph per cell.
func Table(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tblPr/>`)
	for _, row := range rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.WriteString(`<w:tc><w:tcPr/>` + Paragraph(cell) + `</w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	return b.String()
}

// TextBox builds a paragraph holding a drawing whose text box contains text.
func TextBox(text string) string {
	return `<w:p><w:r><w:drawing><wps:wsp><wps:txbx><w:txbxContent>` +
		Paragraph(text) +
		`</w:txbxContent></wps:txbx></wps:wsp></w:drawing></w:r></w:p>`
}

// DocumentXML assembles a complete word/document.xml from body fragments.
func DocumentXML(body ...string) string {
	return documentHead + strings.Join(body, "") + documentTail
}

// Write stores a .docx with the given body fragments under dir and returns its path.
func Write(t testing.TB, dir, name string, body ...string) string {
	t.Helper()
	return WriteRaw(t, dir, name, DocumentXML(body...))
}

// WriteRaw stores a .docx whose word/document.xml is exactly documentXML.
func WriteRaw(t testing.TB, dir, name, documentXML string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct{ name, body string }{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", packageRels},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", documentRels},
	} {
		w, err := zw.Create(part.name)
		require.NoError(t, err)
		_, err = io.WriteString(w, part.body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

// ReadDocumentXML returns word/document.xml from a .docx held in memory.
func ReadDocumentXML(t testing.TB, data []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatalf("word/document.xml not found")
	return ""
}

// VisibleText concatenates all w:t character data of a document.xml.
func VisibleText(t testing.TB, documentXML string) string {
	t.Helper()

	dec := xml.NewDecoder(strings.NewReader(documentXML))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			inText = el.Name.Local == "t"
		case xml.EndElement:
			if el.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}
	return b.String()
}
