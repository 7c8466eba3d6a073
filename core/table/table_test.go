package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T, sortKey string) *Schema {
	t.Helper()
	s, err := DefineSchema(
		[]Column{
			{Name: "id", Type: TypeInt},
			{Name: "name", Type: TypeString},
		},
		[]string{"id"}, sortKey, "",
	)
	require.NoError(t, err)
	return s
}

func TestBuild_KeepsDiscoveryOrder(t *testing.T) {
	s := testSchema(t, "")

	tbl, err := Build(s, func() ([]Row, error) {
		return []Row{
			{int64(3), "c"},
			{int64(1), "a"},
			{int64(2), "b"},
		}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, Row{int64(3), "c"}, tbl.Rows()[0])
	assert.Equal(t, Row{int64(2), "b"}, tbl.Rows()[2])
}

func TestBuild_SortKeyOrdersRows(t *testing.T) {
	s := testSchema(t, "id")

	tbl, err := Build(s, func() ([]Row, error) {
		return []Row{
			{int64(3), "c"},
			{int64(1), "a"},
			{int64(2), "b"},
		}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, Row{int64(1), "a"}, tbl.Rows()[0])
	assert.Equal(t, Row{int64(2), "b"}, tbl.Rows()[1])
	assert.Equal(t, Row{int64(3), "c"}, tbl.Rows()[2])

	// Index stays valid after sorting
	row, ok := tbl.Lookup("3")
	assert.True(t, ok)
	assert.Equal(t, Row{int64(3), "c"}, row)
}

func TestBuild_EmptyExtractIsNotAnError(t *testing.T) {
	s := testSchema(t, "")

	tbl, err := Build(s, func() ([]Row, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestAppend_DuplicatePrimaryKey(t *testing.T) {
	s := testSchema(t, "")
	tbl := New(s)

	assert.NoError(t, tbl.Append(Row{int64(1), "a"}))
	err := tbl.Append(Row{int64(1), "other"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate primary-key")
}

func TestAppend_WrongArity(t *testing.T) {
	s := testSchema(t, "")
	tbl := New(s)

	err := tbl.Append(Row{int64(1)})
	assert.Error(t, err)
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  any
		equal bool
	}{
		{"nil equals empty string", nil, "", true},
		{"empty string equals nil", "", nil, true},
		{"nil equals nil", nil, nil, true},
		{"equal strings", "x", "x", true},
		{"different strings", "x", "y", false},
		{"nil differs from value", nil, "x", false},
		{"equal ints", int64(5), int64(5), true},
		{"different ints", int64(5), int64(6), false},
		{"equal bools", true, true, true},
		{"bool differs", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, ValuesEqual(tt.a, tt.b))
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "text", FormatValue("text"))
	assert.Equal(t, "Yes", FormatValue(true))
	assert.Equal(t, "No", FormatValue(false))
	assert.Equal(t, "42", FormatValue(int64(42)))
	assert.Equal(t, "1.5", FormatValue(1.5))
}
