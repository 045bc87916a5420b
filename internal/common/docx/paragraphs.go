package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WordNamespace is the transitional WordprocessingML main namespace.
const WordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// textRun is one w:t element. Offsets index the raw document.xml string:
// [start,end) is the escaped character data, tagEnd is just past the start tag.
type textRun struct {
	tagEnd   int
	start    int
	end      int
	text     string
	preserve bool
}

// Paragraph is the visible text of a w:p element together with the w:t runs
// it was assembled from.
type Paragraph struct {
	Text    string
	TextBox bool
	InTable bool

	runs []textRun
}

// parseParagraphs walks document.xml and returns every paragraph in document
// order of their closing tags. Text of a nested paragraph (a text box inside a
// drawing) belongs to the nested paragraph only.
func parseParagraphs(content string) ([]*Paragraph, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var (
		out      []*Paragraph
		open     []*Paragraph
		cur      *textRun
		txbx     int
		tblDepth int
	)

	for {
		before := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != WordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, &Paragraph{TextBox: txbx > 0, InTable: tblDepth > 0})
			case "txbxContent":
				txbx++
			case "tbl":
				tblDepth++
			case "t":
				if len(open) == 0 {
					continue
				}
				offset := int(dec.InputOffset())
				cur = &textRun{tagEnd: offset, start: offset, preserve: hasPreserve(t.Attr)}
			}

		case xml.CharData:
			if cur != nil {
				cur.text += string(t)
			}

		case xml.EndElement:
			if t.Name.Space != WordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				if cur == nil {
					continue
				}
				cur.end = before
				p := open[len(open)-1]
				p.runs = append(p.runs, *cur)
				p.Text += cur.text
				cur = nil
			case "p":
				if len(open) == 0 {
					continue
				}
				out = append(out, open[len(open)-1])
				open = open[:len(open)-1]
			case "txbxContent":
				txbx--
			case "tbl":
				tblDepth--
			}
		}
	}

	return out, nil
}

func hasPreserve(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if a.Name.Local == "space" && a.Value == "preserve" {
			return true
		}
	}
	return false
}
