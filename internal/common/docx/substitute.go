package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PlaceholderPattern matches {{identifier}}, tolerating whitespace inside the braces.
var PlaceholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

var (
	expressionPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)
	identifierPattern = regexp.MustCompile(`^\s*[a-zA-Z0-9_]+\s*$`)
)

const preserveAttr = ` xml:space="preserve"`

type edit struct {
	start int
	end   int
	text  string
}

// FindPlaceholders returns the identifiers referenced in text, in order of
// appearance and possibly repeated.
func FindPlaceholders(text string) []string {
	var names []string
	for _, m := range PlaceholderPattern.FindAllStringSubmatch(text, -1) {
		names = append(names, m[1])
	}
	return names
}

// checkSyntax rejects template constructs other than simple placeholders.
func checkSyntax(text string) error {
	if i := strings.Index(text, "{%"); i >= 0 {
		return fmt.Errorf("%w: block tags are not supported near %q", ErrUnsupportedSyntax, snippet(text, i))
	}

	for _, m := range expressionPattern.FindAllStringSubmatchIndex(text, -1) {
		inner := text[m[2]:m[3]]
		if !identifierPattern.MatchString(inner) {
			return fmt.Errorf("%w: expression %q is not a plain identifier", ErrUnsupportedSyntax, text[m[0]:m[1]])
		}
	}

	rest := expressionPattern.ReplaceAllString(text, "")
	if i := strings.Index(rest, "{{"); i >= 0 {
		return fmt.Errorf("%w: unterminated placeholder near %q", ErrUnsupportedSyntax, snippet(rest, i))
	}
	return nil
}

func snippet(text string, at int) string {
	end := at + 24
	if end > len(text) {
		end = len(text)
	}
	return text[at:end]
}

// paragraphEdits computes the raw-XML edits that substitute every placeholder
// in p. A value lands in the run holding the placeholder's opening braces; the
// rest of the token is cut from whichever runs it spilled into.
func paragraphEdits(content string, p *Paragraph, values map[string]string) []edit {
	matches := PlaceholderPattern.FindAllStringSubmatchIndex(p.Text, -1)
	if len(matches) == 0 {
		return nil
	}

	bounds := make([]int, len(p.runs)+1)
	for i, r := range p.runs {
		bounds[i+1] = bounds[i] + len(r.text)
	}

	rebuilt := make([]strings.Builder, len(p.runs))
	copyRange := func(from, to int) {
		for i := range p.runs {
			a, b := max(from, bounds[i]), min(to, bounds[i+1])
			if a < b {
				rebuilt[i].WriteString(p.Text[a:b])
			}
		}
	}
	owner := func(pos int) int {
		for i := range p.runs {
			if bounds[i] <= pos && pos < bounds[i+1] {
				return i
			}
		}
		return len(p.runs) - 1
	}

	cursor := 0
	for _, m := range matches {
		copyRange(cursor, m[0])
		rebuilt[owner(m[0])].WriteString(values[p.Text[m[2]:m[3]]])
		cursor = m[1]
	}
	copyRange(cursor, len(p.Text))

	var edits []edit
	for i, r := range p.runs {
		text := rebuilt[i].String()
		if text == r.text {
			continue
		}
		edits = append(edits, edit{start: r.start, end: r.end, text: escapeText(text)})
		if !r.preserve && needsPreserve(text) {
			at := r.tagEnd - 1
			if at > 0 && content[at-1] == '/' {
				at--
			}
			edits = append(edits, edit{start: at, end: at, text: preserveAttr})
		}
	}
	return edits
}

// applyEdits splices non-overlapping edits into content.
func applyEdits(content string, edits []edit) string {
	if len(edits) == 0 {
		return content
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	out := content
	for _, e := range edits {
		out = out[:e.start] + e.text + out[e.end:]
	}
	return out
}

func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func needsPreserve(s string) bool {
	if s == "" {
		return false
	}
	return isSpace(s[0]) || isSpace(s[len(s)-1])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
