package table

import "fmt"

// ColumnType identifies the semantic type of a column's values.
type ColumnType int

const (
	// TypeString holds free-form text.
	TypeString ColumnType = iota
	// TypeInt holds signed integers (stored as int64).
	TypeInt
	// TypeFloat holds floating point numbers (stored as float64).
	TypeFloat
	// TypeBool holds booleans.
	TypeBool
)

// Column is a named, typed table column.
type Column struct {
	Name string
	Type ColumnType
}

// Schema describes the shape of a table: ordered columns, the primary-key
// subset, and the optional sort-key and parent-link columns.
type Schema struct {
	Columns    []Column
	PrimaryKey []string

	// SortKey, when non-empty, names the column diff output is ordered by.
	SortKey string

	// ParentLink, when non-empty, names the column holding the parent
	// table's primary-key value.
	ParentLink string

	colIndex map[string]int
}

// DefineSchema validates and builds a schema. sortKey and parentLink may be
// empty. The primary key must be a non-empty subset of the columns; a
// violation is a programming error and fails here rather than at runtime.
func DefineSchema(columns []Column, primaryKey []string, sortKey, parentLink string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema must declare at least one column")
	}
	if len(primaryKey) == 0 {
		return nil, fmt.Errorf("schema must declare at least one primary-key column")
	}

	colIndex := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := colIndex[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		colIndex[col.Name] = i
	}

	for _, key := range primaryKey {
		if _, ok := colIndex[key]; !ok {
			return nil, fmt.Errorf("primary-key column %q is not a declared column", key)
		}
	}
	if sortKey != "" {
		if _, ok := colIndex[sortKey]; !ok {
			return nil, fmt.Errorf("sort-key column %q is not a declared column", sortKey)
		}
	}
	if parentLink != "" {
		if _, ok := colIndex[parentLink]; !ok {
			return nil, fmt.Errorf("parent-link column %q is not a declared column", parentLink)
		}
	}

	return &Schema{
		Columns:    columns,
		PrimaryKey: primaryKey,
		SortKey:    sortKey,
		ParentLink: parentLink,
		colIndex:   colIndex,
	}, nil
}

// ColumnIndex returns the position of the named column.
func (s *Schema) ColumnIndex(name string) (int, bool) {
	i, ok := s.colIndex[name]
	return i, ok
}

// ColumnNames returns the column names in declaration order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// IsKeyColumn reports whether name is part of the primary key.
func (s *Schema) IsKeyColumn(name string) bool {
	for _, key := range s.PrimaryKey {
		if key == name {
			return true
		}
	}
	return false
}
