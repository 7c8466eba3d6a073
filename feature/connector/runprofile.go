package connector

import (
	"fmt"
	"strconv"
	"strings"

	"sync-documenter/core/diff"
	"sync-documenter/core/snapshot"
	"sync-documenter/core/table"
)

// StepLabel maps a run-profile step type and subtype to its display
// label. The mapping is total: unknown or missing input degrades to the
// raw type string uppercased rather than failing.
func StepLabel(stepType, subtype string) string {
	t := strings.ToLower(strings.TrimSpace(stepType))
	s := strings.ToLower(strings.TrimSpace(subtype))

	switch t {
	case "delta-import":
		if s == "to-cs" {
			return "Delta Import (Stage Only)"
		}
		return "Delta Import and Delta Synchronization"
	case "full-import":
		if s == "to-cs" {
			return "Full Import (Stage Only)"
		}
		return "Full Import and Delta Synchronization"
	case "export":
		return "Export"
	case "full-import-reevaluate-rules":
		return "Full Import and Full Synchronization"
	case "apply-rules":
		switch s {
		case "apply-pending":
			return "Delta Synchronization"
		case "reevaluate-flow-connectors":
			return "Full Synchronization"
		}
	}
	return strings.ToUpper(strings.TrimSpace(stepType))
}

var profileSchema = mustSchema(
	[]table.Column{
		{Name: "Run Profile", Type: table.TypeString},
	},
	[]string{"Run Profile"}, "", "",
)

var stepSchema = mustSchema(
	[]table.Column{
		{Name: "Run Profile", Type: table.TypeString},
		{Name: "Step", Type: table.TypeInt},
		{Name: "Type", Type: table.TypeString},
		{Name: "Partition", Type: table.TypeString},
		{Name: "Page Size", Type: table.TypeInt},
		{Name: "Timeout", Type: table.TypeInt},
	},
	[]string{"Run Profile", "Step"}, "Step", "Run Profile",
)

// RunProfileSection carries the section metadata for run profiles.
const (
	RunProfileKind      = "run-profiles"
	RunProfileTitle     = "Run Profiles"
	RunProfileEmptyText = "There are no run profiles configured."
)

// RunProfiles diffs the connector's run profiles as a parent/child set:
// profiles are the parent table, steps the child table joined by profile
// name.
func RunProfiles(pilot, production *snapshot.Tree, op OpContext) (*diff.Set, error) {
	parent, err := profilePair(pilot, production, op)
	if err != nil {
		return nil, err
	}
	steps, err := stepPair(pilot, production, op)
	if err != nil {
		return nil, err
	}

	set, err := diff.DiffSet(parent, []diff.Pair{steps})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RunProfileKind, err)
	}
	return set, nil
}

func profilePair(pilot, production *snapshot.Tree, op OpContext) (diff.Pair, error) {
	build := func(tree *snapshot.Tree) (*table.Table, error) {
		return table.Build(profileSchema, func() ([]table.Row, error) {
			node := findConnector(tree, op)
			if node == nil {
				return nil, nil
			}
			var rows []table.Row
			for _, profile := range node.SelectAll("run-profiles") {
				rows = append(rows, table.Row{profile.Attr("name")})
			}
			return rows, nil
		})
	}

	pilotTable, err := build(pilot)
	if err != nil {
		return diff.Pair{}, fmt.Errorf("%s: build pilot profiles: %w", RunProfileKind, err)
	}
	prodTable, err := build(production)
	if err != nil {
		return diff.Pair{}, fmt.Errorf("%s: build production profiles: %w", RunProfileKind, err)
	}
	return diff.Pair{Pilot: pilotTable, Production: prodTable}, nil
}

func stepPair(pilot, production *snapshot.Tree, op OpContext) (diff.Pair, error) {
	build := func(tree *snapshot.Tree) (*table.Table, error) {
		return table.Build(stepSchema, func() ([]table.Row, error) {
			node := findConnector(tree, op)
			if node == nil {
				return nil, nil
			}
			var rows []table.Row
			for _, profile := range node.SelectAll("run-profiles") {
				for i, step := range profile.SelectAll("steps") {
					rows = append(rows, stepRow(profile.Attr("name"), i, step))
				}
			}
			return rows, nil
		})
	}

	pilotTable, err := build(pilot)
	if err != nil {
		return diff.Pair{}, fmt.Errorf("%s: build pilot steps: %w", RunProfileKind, err)
	}
	prodTable, err := build(production)
	if err != nil {
		return diff.Pair{}, fmt.Errorf("%s: build production steps: %w", RunProfileKind, err)
	}
	return diff.Pair{Pilot: pilotTable, Production: prodTable}, nil
}

func stepRow(profileName string, index int, step *snapshot.Node) table.Row {
	number, err := strconv.ParseInt(step.Attr("number"), 10, 64)
	if err != nil || number <= 0 {
		number = int64(index + 1)
	}

	subtype := step.Attr("import-subtype")
	if subtype == "" {
		subtype = step.Attr("subtype")
	}

	pageSize, _ := strconv.ParseInt(step.Attr("page-size"), 10, 64)
	timeout, _ := strconv.ParseInt(step.Attr("timeout"), 10, 64)

	return table.Row{
		profileName,
		number,
		StepLabel(step.Attr("type"), subtype),
		step.Attr("partition"),
		pageSize,
		timeout,
	}
}
