package source

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const odsContentFile = "content.xml"

var errODSNoSheets = errors.New("ods document has no sheets")

type odsRow struct {
	Repeat int
	Cells  []odsCell
}

type odsCell struct {
	Repeat     int
	ValueType  string
	Value      string
	Paragraphs []string
}

func (c *odsCell) appendText(s string) {
	if len(c.Paragraphs) == 0 {
		c.Paragraphs = append(c.Paragraphs, "")
	}
	c.Paragraphs[len(c.Paragraphs)-1] += s
}

func (c *odsCell) String() string {
	if c.ValueType == "float" || c.ValueType == "percentage" || c.ValueType == "currency" {
		if c.Value != "" {
			return c.Value
		}
	}
	return strings.Join(c.Paragraphs, " ")
}

// readODSRows returns cell values of the first sheet of an OpenDocument spreadsheet.
func readODSRows(path string) ([][]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ods archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != odsContentFile {
			continue
		}

		return readODSContent(f)
	}

	return nil, errors.New("ods archive has no content.xml")
}

func readODSContent(f *zip.File) ([][]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	rows, err := decodeODSSheet(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.Name, err)
	}

	return rows, nil
}

// decodeODSSheet walks the first table of content.xml token by token.
// Header rows and row groups are flattened in document order, covered cells keep
// their column and paragraph text includes spans, spaces, tabs and line breaks.
func decodeODSSheet(r io.Reader) ([][]string, error) {
	dec := xml.NewDecoder(r)

	var (
		rows       [][]string
		row        *odsRow
		cell       *odsCell
		depth      int
		annotation int
		inPara     bool
		found      bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "table":
				depth++
				found = true
			case "table-row":
				if depth == 1 {
					row = &odsRow{Repeat: intAttr(t, "number-rows-repeated")}
				}
			case "table-cell", "covered-table-cell":
				if depth == 1 && row != nil {
					cell = &odsCell{
						Repeat:    intAttr(t, "number-columns-repeated"),
						ValueType: attr(t, "value-type"),
						Value:     attr(t, "value"),
					}
				}
			case "annotation":
				annotation++
			case "p", "h":
				if depth == 1 && cell != nil && annotation == 0 {
					cell.Paragraphs = append(cell.Paragraphs, "")
					inPara = true
				}
			case "s":
				if inPara && annotation == 0 {
					n := intAttr(t, "c")
					if n < 1 {
						n = 1
					}
					cell.appendText(strings.Repeat(" ", n))
				}
			case "tab":
				if inPara && annotation == 0 {
					cell.appendText("\t")
				}
			case "line-break":
				if inPara && annotation == 0 {
					cell.appendText("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "table":
				depth--
				if depth == 0 {
					return rows, nil
				}
			case "table-row":
				if depth == 1 && row != nil {
					rows = appendODSRow(rows, row)
					row = nil
				}
			case "table-cell", "covered-table-cell":
				if depth == 1 && row != nil && cell != nil {
					row.Cells = append(row.Cells, *cell)
					cell = nil
				}
			case "annotation":
				annotation--
			case "p", "h":
				inPara = false
			}
		case xml.CharData:
			if inPara && annotation == 0 && cell != nil {
				cell.appendText(string(t))
			}
		}
	}

	if !found {
		return nil, errODSNoSheets
	}

	return rows, nil
}

func appendODSRow(rows [][]string, r *odsRow) [][]string {
	cells := expandODSCells(r.Cells)

	// trailing blank rows are usually repeated up to the sheet limit
	if len(cells) == 0 {
		return append(rows, nil)
	}

	repeat := r.Repeat
	if repeat < 1 {
		repeat = 1
	}
	for i := 0; i < repeat; i++ {
		rows = append(rows, cells)
	}

	return rows
}

func expandODSCells(cells []odsCell) []string {
	var out []string
	for i := range cells {
		v := strings.TrimSpace(cells[i].String())

		// blank cells repeated up to the last column carry nothing
		if v == "" && i == len(cells)-1 {
			break
		}

		repeat := cells[i].Repeat
		if repeat < 1 {
			repeat = 1
		}
		for j := 0; j < repeat; j++ {
			out = append(out, v)
		}
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func intAttr(el xml.StartElement, local string) int {
	n, err := strconv.Atoi(attr(el, local))
	if err != nil {
		return 0
	}
	return n
}
