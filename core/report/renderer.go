package report

import (
	"fmt"
	"html"
	"strings"

	"sync-documenter/core/bookmark"
	"sync-documenter/core/diff"
	"sync-documenter/core/table"
)

// Renderer turns diff results into (body, TOC) fragment pairs. It holds
// no per-section state beyond the shared bookmark manager.
type Renderer struct {
	marks *bookmark.Manager

	// ChangesOnly suppresses unchanged rows; a parent row is still shown
	// when it has changed descendants.
	ChangesOnly bool
}

// NewRenderer creates a renderer over a bookmark manager.
func NewRenderer(marks *bookmark.Manager) *Renderer {
	return &Renderer{marks: marks}
}

// RenderTable renders a flat diff result as one section.
func (r *Renderer) RenderTable(res *diff.Result, sec Section) (Fragment, error) {
	if res == nil {
		return Fragment{}, fmt.Errorf("section %q: nil diff result", sec.Title)
	}

	var body strings.Builder
	toc := r.heading(&body, sec)

	if len(res.Rows) == 0 {
		writeEmptyText(&body, sec)
		return Fragment{Body: body.String(), TOC: toc}, nil
	}

	cols := visibleColumns(res.Schema)
	rows := res.Rows
	if r.ChangesOnly {
		rows = changedRows(rows)
		if len(rows) == 0 {
			writeNoDifferences(&body)
			return Fragment{Body: body.String(), TOC: toc}, nil
		}
	}

	body.WriteString(`<table class="diffgram">` + "\n")
	writeHeaderRow(&body, res.Schema, cols)
	for _, row := range rows {
		writeRow(&body, res.Schema, row, cols)
	}
	body.WriteString("</table>\n")

	return Fragment{Body: body.String(), TOC: toc}, nil
}

// RenderSet renders a parent diff result with its child tables nested
// beneath each parent row, in parent row order.
func (r *Renderer) RenderSet(set *diff.Set, sec Section) (Fragment, error) {
	if set == nil || set.Parent == nil {
		return Fragment{}, fmt.Errorf("section %q: nil diff set", sec.Title)
	}

	var body strings.Builder
	toc := r.heading(&body, sec)

	if len(set.Parent.Rows) == 0 {
		writeEmptyText(&body, sec)
		return Fragment{Body: body.String(), TOC: toc}, nil
	}

	parentCols := visibleColumns(set.Parent.Schema)
	span := len(parentCols)
	rendered := 0

	body.WriteString(`<table class="diffgram">` + "\n")
	writeHeaderRow(&body, set.Parent.Schema, parentCols)
	for _, parentRow := range set.Parent.Rows {
		if r.ChangesOnly && parentRow.State == diff.Unchanged && !set.HasChangedDescendants(parentRow.Key) {
			continue
		}
		rendered++
		writeRow(&body, set.Parent.Schema, parentRow, parentCols)
		writeNestedRegion(&body, set, parentRow, span)
	}
	body.WriteString("</table>\n")

	if rendered == 0 {
		// Every parent filtered out under ChangesOnly. Re-render as text.
		body.Reset()
		toc = r.heading(&body, sec)
		writeNoDifferences(&body)
	}

	return Fragment{Body: body.String(), TOC: toc}, nil
}

// RenderNote renders a section containing only a text note. Used by the
// assembler for per-connector failure placeholders.
func (r *Renderer) RenderNote(sec Section, text string) Fragment {
	var body strings.Builder
	toc := r.heading(&body, sec)
	body.WriteString(`<p class="note">` + html.EscapeString(text) + "</p>\n")
	return Fragment{Body: body.String(), TOC: toc}
}

// RenderHeading renders a bare heading section, used for the per-connector
// chapter headings above the entity sections.
func (r *Renderer) RenderHeading(sec Section) Fragment {
	var body strings.Builder
	toc := r.heading(&body, sec)
	return Fragment{Body: body.String(), TOC: toc}
}

// heading emits the section heading with its body anchor and returns the
// matching TOC fragment. Body and TOC anchors link to each other.
func (r *Renderer) heading(body *strings.Builder, sec Section) string {
	level := sec.Level
	if level < 1 {
		level = 1
	}
	code := r.marks.Allocate(sec.ContextID, sec.Title)
	tocCode := code + "-toc"
	r.marks.Mark(code, bookmark.LocationBody)
	r.marks.Mark(tocCode, bookmark.LocationTOC)

	title := html.EscapeString(sec.Title)
	fmt.Fprintf(body, `<h%d><a id="%s" href="#%s">%s</a></h%d>`+"\n", level, code, tocCode, title, level)

	return fmt.Sprintf(`<p class="toc-entry toc-level-%d"><a id="%s" href="#%s">%s</a></p>`+"\n",
		level, tocCode, code, title)
}

// visibleColumns returns the indices of columns shown in the output. The
// parent-link column is the join key, not data, and stays hidden.
func visibleColumns(schema *table.Schema) []int {
	cols := make([]int, 0, len(schema.Columns))
	for i, col := range schema.Columns {
		if col.Name == schema.ParentLink {
			continue
		}
		cols = append(cols, i)
	}
	return cols
}

func writeHeaderRow(body *strings.Builder, schema *table.Schema, cols []int) {
	body.WriteString("<tr>")
	for _, i := range cols {
		body.WriteString("<th>" + html.EscapeString(schema.Columns[i].Name) + "</th>")
	}
	body.WriteString("</tr>\n")
}

func writeRow(body *strings.Builder, schema *table.Schema, row diff.Row, cols []int) {
	fmt.Fprintf(body, `<tr class="%s">`, rowClass(row.State))
	for _, i := range cols {
		writeCell(body, schema.Columns[i].Name, row, i)
	}
	body.WriteString("</tr>\n")
}

func writeCell(body *strings.Builder, column string, row diff.Row, i int) {
	if row.State == diff.Modified && row.HasChanged(column) {
		oldVal := html.EscapeString(table.FormatValue(row.Pilot[i]))
		newVal := html.EscapeString(table.FormatValue(row.Production[i]))
		fmt.Fprintf(body, `<td class="cell-changed"><span class="value-old">%s</span> &rarr; <span class="value-new">%s</span></td>`, oldVal, newVal)
		return
	}
	body.WriteString("<td>" + html.EscapeString(table.FormatValue(row.Values()[i])) + "</td>")
}

// writeNestedRegion emits the child tables beneath one parent row. A
// parent with no matching child rows keeps an (empty) nested region so
// the document structure stays uniform.
func writeNestedRegion(body *strings.Builder, set *diff.Set, parentRow diff.Row, span int) {
	fmt.Fprintf(body, `<tr class="row-nested"><td colspan="%d">`, span)
	empty := true
	for ci, child := range set.Children {
		childRows := set.ChildRows(ci, parentRow.Key)
		if len(childRows) == 0 {
			continue
		}
		empty = false
		cols := visibleColumns(child.Schema)
		body.WriteString(`<table class="diffgram nested">` + "\n")
		writeHeaderRow(body, child.Schema, cols)
		for _, row := range childRows {
			writeRow(body, child.Schema, row, cols)
		}
		body.WriteString("</table>\n")
	}
	if empty {
		body.WriteString(`<div class="nested-empty"></div>`)
	}
	body.WriteString("</td></tr>\n")
}

func changedRows(rows []diff.Row) []diff.Row {
	kept := make([]diff.Row, 0, len(rows))
	for _, row := range rows {
		if row.State != diff.Unchanged {
			kept = append(kept, row)
		}
	}
	return kept
}

func writeEmptyText(body *strings.Builder, sec Section) {
	text := sec.EmptyText
	if text == "" {
		text = "There are no items of this kind configured."
	}
	body.WriteString(`<p class="empty-section">` + html.EscapeString(text) + "</p>\n")
}

func writeNoDifferences(body *strings.Builder) {
	body.WriteString(`<p class="empty-section">No differences between the pilot and production configurations.</p>` + "\n")
}

func rowClass(s diff.State) string {
	switch s {
	case diff.Added:
		return "row-added"
	case diff.Deleted:
		return "row-deleted"
	case diff.Modified:
		return "row-modified"
	default:
		return "row-unchanged"
	}
}
