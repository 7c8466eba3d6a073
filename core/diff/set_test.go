package diff

import (
	"testing"

	"sync-documenter/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileSchemas(t *testing.T) (parent, child *table.Schema) {
	t.Helper()
	var err error
	parent, err = table.DefineSchema(
		[]table.Column{{Name: "profile", Type: table.TypeString}},
		[]string{"profile"}, "", "",
	)
	require.NoError(t, err)

	child, err = table.DefineSchema(
		[]table.Column{
			{Name: "profile", Type: table.TypeString},
			{Name: "step", Type: table.TypeInt},
			{Name: "type", Type: table.TypeString},
		},
		[]string{"profile", "step"}, "", "profile",
	)
	require.NoError(t, err)
	return parent, child
}

func TestDiffSet_ChildRowsJoinToParent(t *testing.T) {
	parentSchema, childSchema := profileSchemas(t)

	parent := Pair{
		Pilot:      buildTable(t, parentSchema, []table.Row{{"Full Import"}, {"Export"}}),
		Production: buildTable(t, parentSchema, []table.Row{{"Full Import"}, {"Export"}}),
	}
	child := Pair{
		Pilot: buildTable(t, childSchema, []table.Row{
			{"Full Import", int64(1), "Full Import and Delta Synchronization"},
			{"Export", int64(1), "Export"},
		}),
		Production: buildTable(t, childSchema, []table.Row{
			{"Full Import", int64(1), "Full Import (Stage Only)"},
			{"Export", int64(1), "Export"},
		}),
	}

	set, err := DiffSet(parent, []Pair{child})
	require.NoError(t, err)

	fullImportSteps := set.ChildRows(0, "Full Import")
	require.Len(t, fullImportSteps, 1)
	assert.Equal(t, Modified, fullImportSteps[0].State)
	assert.True(t, fullImportSteps[0].HasChanged("type"))

	exportSteps := set.ChildRows(0, "Export")
	require.Len(t, exportSteps, 1)
	assert.Equal(t, Unchanged, exportSteps[0].State)

	assert.Empty(t, set.ChildRows(0, "Missing"))
}

func TestDiffSet_ParentStateIgnoresChildChanges(t *testing.T) {
	parentSchema, childSchema := profileSchemas(t)

	parent := Pair{
		Pilot:      buildTable(t, parentSchema, []table.Row{{"Full Import"}}),
		Production: buildTable(t, parentSchema, []table.Row{{"Full Import"}}),
	}
	child := Pair{
		Pilot: buildTable(t, childSchema, []table.Row{
			{"Full Import", int64(1), "old"},
		}),
		Production: buildTable(t, childSchema, []table.Row{
			{"Full Import", int64(1), "new"},
		}),
	}

	set, err := DiffSet(parent, []Pair{child})
	require.NoError(t, err)

	// The parent row itself is untouched even though its steps changed.
	require.Len(t, set.Parent.Rows, 1)
	assert.Equal(t, Unchanged, set.Parent.Rows[0].State)
	assert.True(t, set.HasChangedDescendants("Full Import"))
}

func TestDiffSet_NoChangedDescendants(t *testing.T) {
	parentSchema, childSchema := profileSchemas(t)

	rows := []table.Row{{"Export", int64(1), "Export"}}
	parent := Pair{
		Pilot:      buildTable(t, parentSchema, []table.Row{{"Export"}}),
		Production: buildTable(t, parentSchema, []table.Row{{"Export"}}),
	}
	child := Pair{
		Pilot:      buildTable(t, childSchema, rows),
		Production: buildTable(t, childSchema, rows),
	}

	set, err := DiffSet(parent, []Pair{child})
	require.NoError(t, err)
	assert.False(t, set.HasChangedDescendants("Export"))
}

func TestDiffSet_RequiresParentLink(t *testing.T) {
	parentSchema, _ := profileSchemas(t)

	noLink, err := table.DefineSchema(
		[]table.Column{{Name: "profile"}, {Name: "step", Type: table.TypeInt}},
		[]string{"profile", "step"}, "", "",
	)
	require.NoError(t, err)

	parent := Pair{
		Pilot:      buildTable(t, parentSchema, nil),
		Production: buildTable(t, parentSchema, nil),
	}
	child := Pair{
		Pilot:      buildTable(t, noLink, nil),
		Production: buildTable(t, noLink, nil),
	}

	_, err = DiffSet(parent, []Pair{child})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parent-link")
}

func TestDiffSet_RequiresSingleColumnParentKey(t *testing.T) {
	composite, err := table.DefineSchema(
		[]table.Column{{Name: "a"}, {Name: "b"}},
		[]string{"a", "b"}, "", "",
	)
	require.NoError(t, err)

	childSchema, err := table.DefineSchema(
		[]table.Column{{Name: "a"}, {Name: "x"}},
		[]string{"a", "x"}, "", "a",
	)
	require.NoError(t, err)

	parent := Pair{
		Pilot:      buildTable(t, composite, nil),
		Production: buildTable(t, composite, nil),
	}
	child := Pair{
		Pilot:      buildTable(t, childSchema, nil),
		Production: buildTable(t, childSchema, nil),
	}

	_, err = DiffSet(parent, []Pair{child})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "single-column primary key")
}
