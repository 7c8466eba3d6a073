package connector

import (
	"fmt"
	"sort"

	"sync-documenter/core/diff"
	"sync-documenter/core/snapshot"
	"sync-documenter/core/table"
)

// OpContext identifies the connector and section being documented. It is
// threaded explicitly through every extraction call; there is no ambient
// run state.
type OpContext struct {
	ConnectorName string
	ConnectorID   string
	Section       string
}

// Diagnostics collects reportable-but-non-fatal extraction problems, such
// as rows skipped over unresolvable references.
type Diagnostics struct {
	entries []string
}

// Skipf records one skipped-row diagnostic.
func (d *Diagnostics) Skipf(format string, args ...any) {
	d.entries = append(d.entries, fmt.Sprintf(format, args...))
}

// Entries returns the recorded diagnostics in order.
func (d *Diagnostics) Entries() []string {
	return d.entries
}

// Documenter couples one entity kind's table schema with its extraction
// function and section metadata.
type Documenter struct {
	// Kind is the entity kind, used to namespace the section's bookmarks.
	Kind string

	// Title is the section heading.
	Title string

	// EmptyText is the fixed sentence shown when the entity has no rows.
	EmptyText string

	Schema *table.Schema

	// Extract produces raw row tuples from one snapshot. Returning no
	// rows is not an error: the entity is simply absent.
	Extract func(tree *snapshot.Tree, op OpContext, diag *Diagnostics) ([]table.Row, error)
}

// Diff builds the pilot and production tables for this entity and diffs
// them.
func (d Documenter) Diff(pilot, production *snapshot.Tree, op OpContext, diag *Diagnostics) (*diff.Result, error) {
	pilotTable, err := table.Build(d.Schema, func() ([]table.Row, error) {
		return d.Extract(pilot, op, diag)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: build pilot table: %w", d.Kind, err)
	}
	prodTable, err := table.Build(d.Schema, func() ([]table.Row, error) {
		return d.Extract(production, op, diag)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: build production table: %w", d.Kind, err)
	}

	result, err := diff.Diff(pilotTable, prodTable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Kind, err)
	}
	return result, nil
}

// Identity names one connector in a snapshot.
type Identity struct {
	Name string
	ID   string
}

// Union returns the connectors present in either snapshot, identified by
// GUID with a fallback to name, sorted by display name.
func Union(pilot, production *snapshot.Tree) []Identity {
	seen := make(map[string]Identity)
	for _, tree := range []*snapshot.Tree{pilot, production} {
		if tree == nil {
			continue
		}
		for _, node := range tree.SelectAll("connectors") {
			id := Identity{Name: node.Attr("name"), ID: node.Attr("id")}
			key := id.ID
			if key == "" {
				key = id.Name
			}
			if _, ok := seen[key]; !ok {
				seen[key] = id
			}
		}
	}

	out := make([]Identity, 0, len(seen))
	for _, id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// findConnector locates the connector node for the operation context,
// preferring the GUID and falling back to the name. Returns nil when the
// connector is absent from the snapshot.
func findConnector(tree *snapshot.Tree, op OpContext) *snapshot.Node {
	if op.ConnectorID != "" {
		nodes := tree.Find([]string{"connectors"}, snapshot.Match{Attr: "id", Equals: op.ConnectorID})
		if len(nodes) > 0 {
			return nodes[0]
		}
	}
	nodes := tree.Find([]string{"connectors"}, snapshot.Match{Attr: "name", Equals: op.ConnectorName})
	if len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// mustSchema panics on schema definition errors. Schemas are fixed at
// compile time, so a failure here is a programming error.
func mustSchema(columns []table.Column, primaryKey []string, sortKey, parentLink string) *table.Schema {
	s, err := table.DefineSchema(columns, primaryKey, sortKey, parentLink)
	if err != nil {
		panic(err)
	}
	return s
}
