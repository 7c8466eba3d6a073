package report

import (
	"testing"

	"sync-documenter/core/bookmark"
	"sync-documenter/core/diff"
	"sync-documenter/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer() *Renderer {
	return NewRenderer(bookmark.NewManager())
}

func flatSchema(t *testing.T) *table.Schema {
	t.Helper()
	s, err := table.DefineSchema(
		[]table.Column{
			{Name: "Name", Type: table.TypeString},
			{Name: "Value", Type: table.TypeString},
		},
		[]string{"Name"}, "", "",
	)
	require.NoError(t, err)
	return s
}

func buildTable(t *testing.T, s *table.Schema, rows []table.Row) *table.Table {
	t.Helper()
	tbl, err := table.Build(s, func() ([]table.Row, error) { return rows, nil })
	require.NoError(t, err)
	return tbl
}

func diffOf(t *testing.T, s *table.Schema, pilot, production []table.Row) *diff.Result {
	t.Helper()
	result, err := diff.Diff(buildTable(t, s, pilot), buildTable(t, s, production))
	require.NoError(t, err)
	return result
}

func TestRenderTable_EmptySectionPlaceholder(t *testing.T) {
	r := newTestRenderer()
	s := flatSchema(t)

	frag, err := r.RenderTable(diffOf(t, s, nil, nil), Section{
		Title:     "Provisioning Rules",
		Level:     3,
		ContextID: "guid/provisioning-rules",
		EmptyText: "There are no provisioning rules configured.",
	})
	require.NoError(t, err)

	assert.Contains(t, frag.Body, "There are no provisioning rules configured.")
	assert.NotContains(t, frag.Body, "<table")
	assert.Contains(t, frag.TOC, "Provisioning Rules")
}

func TestRenderTable_StateClasses(t *testing.T) {
	r := newTestRenderer()
	s := flatSchema(t)

	result := diffOf(t, s,
		[]table.Row{{"keep", "same"}, {"gone", "old"}, {"edit", "before"}},
		[]table.Row{{"keep", "same"}, {"edit", "after"}, {"new", "fresh"}},
	)

	frag, err := r.RenderTable(result, Section{Title: "Rules", Level: 3, ContextID: "c"})
	require.NoError(t, err)

	assert.Contains(t, frag.Body, `class="row-unchanged"`)
	assert.Contains(t, frag.Body, `class="row-deleted"`)
	assert.Contains(t, frag.Body, `class="row-modified"`)
	assert.Contains(t, frag.Body, `class="row-added"`)

	// Only the changed cell carries the change markup with both values.
	assert.Contains(t, frag.Body, `<td class="cell-changed"><span class="value-old">before</span> &rarr; <span class="value-new">after</span></td>`)
	assert.NotContains(t, frag.Body, `<span class="value-old">edit</span>`)
}

func TestRenderTable_EscapesValues(t *testing.T) {
	r := newTestRenderer()
	s := flatSchema(t)

	result := diffOf(t, s,
		[]table.Row{{"a<b", `x"`}},
		[]table.Row{{"a<b", `x"`}},
	)
	frag, err := r.RenderTable(result, Section{Title: "T & Co", Level: 3, ContextID: "c"})
	require.NoError(t, err)

	assert.Contains(t, frag.Body, "a&lt;b")
	assert.NotContains(t, frag.Body, "a<b<")
	assert.Contains(t, frag.Body, "T &amp; Co")
}

func TestRenderTable_ChangesOnlyFiltersUnchanged(t *testing.T) {
	r := newTestRenderer()
	r.ChangesOnly = true
	s := flatSchema(t)

	result := diffOf(t, s,
		[]table.Row{{"keep", "same"}, {"edit", "before"}},
		[]table.Row{{"keep", "same"}, {"edit", "after"}},
	)
	frag, err := r.RenderTable(result, Section{Title: "Rules", Level: 3, ContextID: "c"})
	require.NoError(t, err)

	assert.NotContains(t, frag.Body, "row-unchanged")
	assert.Contains(t, frag.Body, "row-modified")
}

func TestRenderTable_ChangesOnlyAllUnchanged(t *testing.T) {
	r := newTestRenderer()
	r.ChangesOnly = true
	s := flatSchema(t)

	rows := []table.Row{{"keep", "same"}}
	frag, err := r.RenderTable(diffOf(t, s, rows, rows), Section{Title: "Rules", Level: 3, ContextID: "c"})
	require.NoError(t, err)

	assert.NotContains(t, frag.Body, "<table")
	assert.Contains(t, frag.Body, "No differences")
}

func TestRender_BookmarksLinkBodyAndTOC(t *testing.T) {
	marks := bookmark.NewManager()
	r := NewRenderer(marks)
	s := flatSchema(t)

	frag, err := r.RenderTable(diffOf(t, s, nil, nil), Section{
		Title:     "Properties",
		Level:     3,
		ContextID: "guid/properties",
		EmptyText: "none",
	})
	require.NoError(t, err)

	code := marks.Allocate("guid/properties", "Properties")
	assert.Contains(t, frag.Body, `id="`+code+`"`)
	assert.Contains(t, frag.Body, `href="#`+code+`-toc"`)
	assert.Contains(t, frag.TOC, `id="`+code+`-toc"`)
	assert.Contains(t, frag.TOC, `href="#`+code+`"`)

	loc, ok := marks.Resolve(code)
	assert.True(t, ok)
	assert.Equal(t, bookmark.LocationBody, loc)
	loc, ok = marks.Resolve(code + "-toc")
	assert.True(t, ok)
	assert.Equal(t, bookmark.LocationTOC, loc)
}

func setSchemas(t *testing.T) (parent, child *table.Schema) {
	t.Helper()
	var err error
	parent, err = table.DefineSchema(
		[]table.Column{{Name: "Run Profile", Type: table.TypeString}},
		[]string{"Run Profile"}, "", "",
	)
	require.NoError(t, err)
	child, err = table.DefineSchema(
		[]table.Column{
			{Name: "Run Profile", Type: table.TypeString},
			{Name: "Step", Type: table.TypeInt},
			{Name: "Type", Type: table.TypeString},
		},
		[]string{"Run Profile", "Step"}, "", "Run Profile",
	)
	require.NoError(t, err)
	return parent, child
}

func TestRenderSet_NestedChildren(t *testing.T) {
	r := newTestRenderer()
	parentSchema, childSchema := setSchemas(t)

	parent := diff.Pair{
		Pilot:      buildTable(t, parentSchema, []table.Row{{"Full Import"}, {"Bare"}}),
		Production: buildTable(t, parentSchema, []table.Row{{"Full Import"}, {"Bare"}}),
	}
	child := diff.Pair{
		Pilot: buildTable(t, childSchema, []table.Row{
			{"Full Import", int64(1), "Full Import and Delta Synchronization"},
		}),
		Production: buildTable(t, childSchema, []table.Row{
			{"Full Import", int64(1), "Full Import (Stage Only)"},
		}),
	}

	set, err := diff.DiffSet(parent, []diff.Pair{child})
	require.NoError(t, err)

	frag, err := r.RenderSet(set, Section{Title: "Run Profiles", Level: 3, ContextID: "c"})
	require.NoError(t, err)

	assert.Contains(t, frag.Body, `class="diffgram nested"`)
	assert.Contains(t, frag.Body, "Full Import (Stage Only)")
	// The parent-link column is the join key, not rendered data.
	assert.NotContains(t, frag.Body, "<th>Run Profile</th><th>Run Profile</th>")
	// The childless parent keeps an empty nested region.
	assert.Contains(t, frag.Body, `class="nested-empty"`)
}

func TestRenderSet_EmptyParentPlaceholder(t *testing.T) {
	r := newTestRenderer()
	parentSchema, childSchema := setSchemas(t)

	set, err := diff.DiffSet(
		diff.Pair{Pilot: buildTable(t, parentSchema, nil), Production: buildTable(t, parentSchema, nil)},
		[]diff.Pair{{Pilot: buildTable(t, childSchema, nil), Production: buildTable(t, childSchema, nil)}},
	)
	require.NoError(t, err)

	frag, err := r.RenderSet(set, Section{
		Title: "Run Profiles", Level: 3, ContextID: "c",
		EmptyText: "There are no run profiles configured.",
	})
	require.NoError(t, err)
	assert.Contains(t, frag.Body, "There are no run profiles configured.")
	assert.NotContains(t, frag.Body, "<table")
}

func TestRenderSet_ChangesOnlyKeepsParentsWithChangedChildren(t *testing.T) {
	r := newTestRenderer()
	r.ChangesOnly = true
	parentSchema, childSchema := setSchemas(t)

	parent := diff.Pair{
		Pilot:      buildTable(t, parentSchema, []table.Row{{"Touched"}, {"Untouched"}}),
		Production: buildTable(t, parentSchema, []table.Row{{"Touched"}, {"Untouched"}}),
	}
	child := diff.Pair{
		Pilot: buildTable(t, childSchema, []table.Row{
			{"Touched", int64(1), "old"},
			{"Untouched", int64(1), "same"},
		}),
		Production: buildTable(t, childSchema, []table.Row{
			{"Touched", int64(1), "new"},
			{"Untouched", int64(1), "same"},
		}),
	}

	set, err := diff.DiffSet(parent, []diff.Pair{child})
	require.NoError(t, err)

	frag, err := r.RenderSet(set, Section{Title: "Run Profiles", Level: 3, ContextID: "c"})
	require.NoError(t, err)

	assert.Contains(t, frag.Body, "Touched")
	assert.NotContains(t, frag.Body, "Untouched")
}

func TestRenderNote(t *testing.T) {
	r := newTestRenderer()

	frag := r.RenderNote(Section{Title: "Broken MA", Level: 2, ContextID: "guid/error"},
		"This connector could not be documented: boom")

	assert.Contains(t, frag.Body, `<p class="note">`)
	assert.Contains(t, frag.Body, "boom")
	assert.Contains(t, frag.TOC, "Broken MA")
}
