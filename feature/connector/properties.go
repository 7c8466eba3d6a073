package connector

import (
	"strconv"

	"sync-documenter/core/snapshot"
	"sync-documenter/core/table"
)

var propertiesSchema = mustSchema(
	[]table.Column{
		{Name: "Property", Type: table.TypeString},
		{Name: "Value", Type: table.TypeString},
	},
	[]string{"Property"}, "", "",
)

// Properties documents the connector's top-level settings as one
// property/value row per setting.
func Properties() Documenter {
	return Documenter{
		Kind:      "properties",
		Title:     "Properties",
		EmptyText: "The connector is not present in either configuration.",
		Schema:    propertiesSchema,
		Extract: func(tree *snapshot.Tree, op OpContext, diag *Diagnostics) ([]table.Row, error) {
			node := findConnector(tree, op)
			if node == nil {
				return nil, nil
			}
			rows := []table.Row{
				{"Connector Name", node.Attr("name")},
				{"Connector Type", node.Attr("type")},
				{"Subtype", node.Attr("subtype")},
				{"Description", node.Attr("description")},
				{"List Name", node.Attr("list-name")},
				{"Partitions", strconv.Itoa(len(node.SelectAll("partitions")))},
			}
			return rows, nil
		},
	}
}

var hierarchySchema = mustSchema(
	[]table.Column{
		{Name: "DN Component", Type: table.TypeString},
		{Name: "Object Class", Type: table.TypeString},
	},
	[]string{"DN Component"}, "", "",
)

// ProvisioningHierarchy documents the mapping from DN components to
// provisioned object classes.
func ProvisioningHierarchy() Documenter {
	return Documenter{
		Kind:      "provisioning-hierarchy",
		Title:     "Provisioning Hierarchy",
		EmptyText: "There is no provisioning hierarchy configured.",
		Schema:    hierarchySchema,
		Extract: func(tree *snapshot.Tree, op OpContext, diag *Diagnostics) ([]table.Row, error) {
			node := findConnector(tree, op)
			if node == nil {
				return nil, nil
			}
			var rows []table.Row
			for _, mapping := range node.SelectAll("provisioning-hierarchy") {
				rows = append(rows, table.Row{mapping.Attr("dn-component"), mapping.Attr("object-class")})
			}
			return rows, nil
		},
	}
}

var objectTypesSchema = mustSchema(
	[]table.Column{
		{Name: "Object Type", Type: table.TypeString},
	},
	[]string{"Object Type"}, "", "",
)

// ObjectTypes documents the object types selected for synchronization.
func ObjectTypes() Documenter {
	return Documenter{
		Kind:      "object-types",
		Title:     "Selected Object Types",
		EmptyText: "There are no object types selected.",
		Schema:    objectTypesSchema,
		Extract: func(tree *snapshot.Tree, op OpContext, diag *Diagnostics) ([]table.Row, error) {
			node := findConnector(tree, op)
			if node == nil {
				return nil, nil
			}
			var rows []table.Row
			for _, ot := range node.SelectAll("object-types") {
				rows = append(rows, table.Row{ot.Value})
			}
			return rows, nil
		},
	}
}
