package connector

import (
	"fmt"
	"sort"
	"strconv"

	"sync-documenter/core/diff"
	"sync-documenter/core/snapshot"
	"sync-documenter/core/table"
)

// Direction is the data flow direction of a synchronization rule.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Category selects a class of synchronization rules.
type Category int

const (
	// CategoryAll selects every rule for the connector and direction.
	CategoryAll Category = iota
	// CategoryProvisioning selects rules that provision new objects.
	CategoryProvisioning
	// CategoryStickyJoin selects rules with sticky join behavior.
	CategoryStickyJoin
	// CategoryConditionalJoin selects rules with at least one non-trivial
	// join condition.
	CategoryConditionalJoin
)

// Rules are matched across snapshots purely by name. A rule renamed
// between pilot and production therefore reports as one deletion plus one
// addition, never as a modification. This mirrors the product behavior of
// the synchronization engine and is intentionally not configurable.
const RuleIdentityByName = true

// Selection holds the rule nodes chosen for one section, already in
// render order: pilot rules sorted by name, then production-only rules
// sorted by name appended on the production side.
type Selection struct {
	Pilot      []*snapshot.Node
	Production []*snapshot.Node
}

// SelectRules filters and orders the synchronization rules of one
// connector for a direction and category.
func SelectRules(pilot, production *snapshot.Tree, connectorID string, dir Direction, cat Category) Selection {
	pilotRules := matchRules(pilot, connectorID, dir, cat)
	prodRules := matchRules(production, connectorID, dir, cat)

	sortByName(pilotRules)

	pilotNames := make(map[string]struct{}, len(pilotRules))
	for _, rule := range pilotRules {
		pilotNames[rule.Attr("name")] = struct{}{}
	}

	// Production side: rules shared with pilot first, in pilot's sorted
	// order, then production-only rules sorted by name. This keeps the
	// diff output in the selector's render order.
	prodByName := make(map[string]*snapshot.Node, len(prodRules))
	for _, rule := range prodRules {
		prodByName[rule.Attr("name")] = rule
	}

	var shared, extra []*snapshot.Node
	for _, rule := range pilotRules {
		if node, ok := prodByName[rule.Attr("name")]; ok {
			shared = append(shared, node)
		}
	}
	for _, rule := range prodRules {
		if _, inPilot := pilotNames[rule.Attr("name")]; !inPilot {
			extra = append(extra, rule)
		}
	}
	sortByName(extra)

	return Selection{Pilot: pilotRules, Production: append(shared, extra...)}
}

func matchRules(tree *snapshot.Tree, connectorID string, dir Direction, cat Category) []*snapshot.Node {
	if tree == nil {
		return nil
	}
	nodes := tree.Find([]string{"rules"},
		snapshot.Match{Attr: "connector", Equals: connectorID},
		snapshot.Match{Attr: "direction", Equals: string(dir)},
	)

	var out []*snapshot.Node
	for _, node := range nodes {
		if matchesCategory(node, cat) {
			out = append(out, node)
		}
	}
	return out
}

func matchesCategory(rule *snapshot.Node, cat Category) bool {
	switch cat {
	case CategoryAll:
		return true
	case CategoryProvisioning:
		return rule.Attr("provisioning") == "true"
	case CategoryStickyJoin:
		return rule.Attr("sticky-join") == "true"
	case CategoryConditionalJoin:
		return hasNonTrivialJoinCondition(rule)
	default:
		return false
	}
}

// hasNonTrivialJoinCondition reports whether the rule declares at least
// one join condition binding a connector-space attribute to a metaverse
// attribute.
func hasNonTrivialJoinCondition(rule *snapshot.Node) bool {
	for _, cond := range rule.SelectAll("join-conditions") {
		if cond.Attr("csobject-attribute") != "" && cond.Attr("metaverse-attribute") != "" {
			return true
		}
	}
	return false
}

func sortByName(rules []*snapshot.Node) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Attr("name") < rules[j].Attr("name")
	})
}

var ruleSchema = mustSchema(
	[]table.Column{
		{Name: "Name", Type: table.TypeString},
		{Name: "Direction", Type: table.TypeString},
		{Name: "Precedence", Type: table.TypeInt},
		{Name: "Flows", Type: table.TypeInt},
	},
	[]string{"Name"}, "", "",
)

// RuleSection documents one class of synchronization rules for a
// connector. Unlike a plain Documenter it consults both snapshots during
// extraction, because the selector's render order depends on which rule
// names appear on each side.
type RuleSection struct {
	Kind       string
	Title      string
	EmptyText  string
	Directions []Direction
	Category   Category
}

// RuleSections returns the rule sections in canonical render order.
func RuleSections() []RuleSection {
	return []RuleSection{
		{
			Kind:       "provisioning-rules",
			Title:      "Provisioning Rules",
			EmptyText:  "There are no provisioning rules configured.",
			Directions: []Direction{DirectionOutbound},
			Category:   CategoryProvisioning,
		},
		{
			Kind:       "sticky-join-rules",
			Title:      "Sticky-Join Rules",
			EmptyText:  "There are no sticky-join rules configured.",
			Directions: []Direction{DirectionInbound},
			Category:   CategoryStickyJoin,
		},
		{
			Kind:       "conditional-join-rules",
			Title:      "Conditional-Join Rules",
			EmptyText:  "There are no conditional-join rules configured.",
			Directions: []Direction{DirectionInbound},
			Category:   CategoryConditionalJoin,
		},
		{
			Kind:       "sync-rules",
			Title:      "Sync Rules",
			EmptyText:  "There are no synchronization rules configured.",
			Directions: []Direction{DirectionInbound, DirectionOutbound},
			Category:   CategoryAll,
		},
	}
}

// Diff selects the section's rules from both snapshots and diffs them.
func (rs RuleSection) Diff(pilot, production *snapshot.Tree, op OpContext) (*diff.Result, error) {
	var pilotNodes, prodNodes []*snapshot.Node
	for _, dir := range rs.Directions {
		sel := SelectRules(pilot, production, op.ConnectorID, dir, rs.Category)
		pilotNodes = append(pilotNodes, sel.Pilot...)
		prodNodes = append(prodNodes, sel.Production...)
	}

	pilotTable, err := table.Build(ruleSchema, func() ([]table.Row, error) {
		return ruleRows(pilotNodes), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: build pilot table: %w", rs.Kind, err)
	}
	prodTable, err := table.Build(ruleSchema, func() ([]table.Row, error) {
		return ruleRows(prodNodes), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: build production table: %w", rs.Kind, err)
	}

	result, err := diff.Diff(pilotTable, prodTable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rs.Kind, err)
	}
	return result, nil
}

func ruleRows(rules []*snapshot.Node) []table.Row {
	var rows []table.Row
	for _, rule := range rules {
		precedence, _ := strconv.ParseInt(rule.Attr("precedence"), 10, 64)
		rows = append(rows, table.Row{
			rule.Attr("name"),
			rule.Attr("direction"),
			precedence,
			int64(len(rule.SelectAll("flows"))),
		})
	}
	return rows
}
