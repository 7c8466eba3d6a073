package connector

import (
	"strconv"

	"sync-documenter/core/snapshot"
	"sync-documenter/core/table"
)

var attributesSchema = mustSchema(
	[]table.Column{
		{Name: "Attribute", Type: table.TypeString},
		{Name: "Syntax", Type: table.TypeString},
		{Name: "Multi-valued", Type: table.TypeBool},
	},
	[]string{"Attribute"}, "", "",
)

// Attributes documents the attributes selected for synchronization,
// resolving each against the connector's attribute type definitions. A
// selected attribute without a matching type definition is skipped with a
// diagnostic; the remaining rows still complete.
func Attributes() Documenter {
	return Documenter{
		Kind:      "attributes",
		Title:     "Selected Attributes",
		EmptyText: "There are no attributes selected.",
		Schema:    attributesSchema,
		Extract: func(tree *snapshot.Tree, op OpContext, diag *Diagnostics) ([]table.Row, error) {
			node := findConnector(tree, op)
			if node == nil {
				return nil, nil
			}

			types := make(map[string]*snapshot.Node)
			for _, def := range node.SelectAll("attribute-types") {
				types[def.Attr("name")] = def
			}

			var rows []table.Row
			for _, sel := range node.SelectAll("attributes") {
				name := sel.Value
				def, ok := types[name]
				if !ok {
					diag.Skipf("connector %s: selected attribute %q has no type definition", op.ConnectorName, name)
					continue
				}
				multi, _ := strconv.ParseBool(def.Attr("multivalued"))
				rows = append(rows, table.Row{name, def.Attr("syntax"), multi})
			}
			return rows, nil
		},
	}
}
