// Package docx reads placeholders from, and substitutes values into, the main
// document part of a .docx file. The zip container is handled by
// github.com/nguyenthenguyen/docx; this package owns the WordprocessingML
// scanning so placeholders split across formatting runs still resolve.
package docx

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	docxlib "github.com/nguyenthenguyen/docx"
)

var (
	ErrInvalidContainer  = errors.New("not a valid .docx container")
	ErrMalformedXML      = errors.New("malformed document XML")
	ErrUnsupportedSyntax = errors.New("unsupported template syntax")
)

// Document is an open template. It is not safe for concurrent use; each
// request opens its own.
type Document struct {
	path     string
	archive  *docxlib.ReplaceDocx
	editable *docxlib.Docx
}

// Open loads the document at path. Anything that is not a zip archive with a
// non-empty word/document.xml is reported as ErrInvalidContainer.
func Open(path string) (*Document, error) {
	archive, err := docxlib.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}

	editable := archive.Editable()
	if strings.TrimSpace(editable.GetContent()) == "" {
		_ = archive.Close()
		return nil, fmt.Errorf("%w: word/document.xml is empty", ErrInvalidContainer)
	}

	return &Document{path: path, archive: archive, editable: editable}, nil
}

// Path returns the file the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// Content returns the current word/document.xml markup.
func (d *Document) Content() string {
	return d.editable.GetContent()
}

// Paragraphs returns every paragraph of the main document part.
func (d *Document) Paragraphs() ([]Paragraph, error) {
	parsed, err := parseParagraphs(d.Content())
	if err != nil {
		return nil, err
	}
	out := make([]Paragraph, len(parsed))
	for i, p := range parsed {
		out[i] = *p
	}
	return out, nil
}

// Placeholders returns the sorted, distinct identifiers found in body
// paragraphs and table cells. Text boxes are skipped.
func (d *Document) Placeholders() ([]string, error) {
	paragraphs, err := parseParagraphs(d.Content())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, p := range paragraphs {
		if p.TextBox {
			continue
		}
		for _, name := range FindPlaceholders(p.Text) {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Render substitutes values into every paragraph. Identifiers missing from
// values render as the empty string. The document is left untouched on error.
func (d *Document) Render(values map[string]string) error {
	content := d.Content()

	paragraphs, err := parseParagraphs(content)
	if err != nil {
		return err
	}

	var edits []edit
	for _, p := range paragraphs {
		if err := checkSyntax(p.Text); err != nil {
			return err
		}
		edits = append(edits, paragraphEdits(content, p, values)...)
	}

	d.editable.SetContent(applyEdits(content, edits))
	return nil
}

// Save writes the document, including any rendered content, to path.
func (d *Document) Save(path string) error {
	if err := d.editable.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying archive.
func (d *Document) Close() error {
	return d.archive.Close()
}
