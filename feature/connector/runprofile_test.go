package connector

import (
	"testing"

	"sync-documenter/core/diff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepLabel(t *testing.T) {
	tests := []struct {
		stepType string
		subtype  string
		want     string
	}{
		{"delta-import", "to-cs", "Delta Import (Stage Only)"},
		{"delta-import", "", "Delta Import and Delta Synchronization"},
		{"full-import", "to-cs", "Full Import (Stage Only)"},
		{"full-import", "", "Full Import and Delta Synchronization"},
		{"export", "", "Export"},
		{"full-import-reevaluate-rules", "", "Full Import and Full Synchronization"},
		{"apply-rules", "apply-pending", "Delta Synchronization"},
		{"apply-rules", "reevaluate-flow-connectors", "Full Synchronization"},
		// Case and whitespace are normalized before matching.
		{"DELTA-IMPORT", "TO-CS", "Delta Import (Stage Only)"},
		{" export ", "", "Export"},
		// Unknown inputs degrade to the uppercased raw type.
		{"apply-rules", "unknown", "APPLY-RULES"},
		{"mystery-step", "", "MYSTERY-STEP"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StepLabel(tt.stepType, tt.subtype),
			"StepLabel(%q, %q)", tt.stepType, tt.subtype)
	}
}

func TestRunProfiles_ParentChildDiff(t *testing.T) {
	pilot := parseTree(t, `{"connectors":[{"id":"c1","name":"AD","run-profiles":[
		{"name":"Full Import","steps":[
			{"number":1,"type":"full-import","import-subtype":"to-cs","partition":"default","page-size":100,"timeout":120}
		]}
	]}]}`)
	production := parseTree(t, `{"connectors":[{"id":"c1","name":"AD","run-profiles":[
		{"name":"Full Import","steps":[
			{"number":1,"type":"full-import","partition":"default","page-size":100,"timeout":120}
		]},
		{"name":"Export","steps":[
			{"type":"export","partition":"default"}
		]}
	]}]}`)

	op := OpContext{ConnectorName: "AD", ConnectorID: "c1", Section: "run-profiles"}
	set, err := RunProfiles(pilot, production, op)
	require.NoError(t, err)

	require.Len(t, set.Parent.Rows, 2)
	assert.Equal(t, "Full Import", set.Parent.Rows[0].Values()[0])
	assert.Equal(t, diff.Unchanged, set.Parent.Rows[0].State)
	assert.Equal(t, "Export", set.Parent.Rows[1].Values()[0])
	assert.Equal(t, diff.Added, set.Parent.Rows[1].State)

	require.Len(t, set.Children, 1)

	// The import subtype changed, so the step label is a modification on
	// the type column.
	steps := set.ChildRows(0, "Full Import")
	require.Len(t, steps, 1)
	assert.Equal(t, diff.Modified, steps[0].State)
	assert.True(t, steps[0].HasChanged("Type"))
	assert.Equal(t, "Full Import (Stage Only)", steps[0].Pilot[2])
	assert.Equal(t, "Full Import and Delta Synchronization", steps[0].Production[2])

	// The parent row stays unchanged even though its steps differ.
	assert.True(t, set.HasChangedDescendants(set.Parent.Rows[0].Key))
}

func TestRunProfiles_StepNumberFallback(t *testing.T) {
	tree := parseTree(t, `{"connectors":[{"id":"c1","name":"AD","run-profiles":[
		{"name":"Nightly","steps":[
			{"type":"delta-import"},
			{"type":"export"}
		]}
	]}]}`)

	set, err := RunProfiles(tree, tree, OpContext{ConnectorID: "c1"})
	require.NoError(t, err)

	steps := set.ChildRows(0, "Nightly")
	require.Len(t, steps, 2)
	assert.Equal(t, int64(1), steps[0].Values()[1])
	assert.Equal(t, "Delta Import and Delta Synchronization", steps[0].Values()[2])
	assert.Equal(t, int64(2), steps[1].Values()[1])
	assert.Equal(t, "Export", steps[1].Values()[2])
}

func TestRunProfiles_AbsentConnector(t *testing.T) {
	empty := parseTree(t, `{"connectors":[]}`)

	set, err := RunProfiles(empty, empty, OpContext{ConnectorID: "c1"})
	require.NoError(t, err)
	assert.Empty(t, set.Parent.Rows)
}
