package docgen

import (
	"fmt"

	"sync-documenter/core/bookmark"
	"sync-documenter/core/logger"
	"sync-documenter/core/report"
	"sync-documenter/core/snapshot"
	"sync-documenter/feature/connector"

	"go.uber.org/zap"
)

// Options controls document generation.
type Options struct {
	// Title is the document title.
	Title string

	// ChangesOnly suppresses unchanged rows in the rendered tables.
	ChangesOnly bool
}

// Generator produces one comparison document per invocation. Connectors
// are processed sequentially; the bookmark manager is the only run-scoped
// mutable state and needs no synchronization.
type Generator struct {
	log      *zap.Logger
	marks    *bookmark.Manager
	renderer *report.Renderer
	opts     Options
}

// NewGenerator creates a generator.
func NewGenerator(log *zap.Logger, opts Options) *Generator {
	marks := bookmark.NewManager()
	renderer := report.NewRenderer(marks)
	renderer.ChangesOnly = opts.ChangesOnly
	return &Generator{
		log:      log,
		marks:    marks,
		renderer: renderer,
		opts:     opts,
	}
}

// Generate compares the pilot and production snapshots and assembles the
// report document.
func (g *Generator) Generate(pilot, production *snapshot.Tree) (*Document, error) {
	if pilot == nil || production == nil {
		return nil, fmt.Errorf("both pilot and production snapshots are required")
	}

	doc := &Document{Title: g.opts.Title}

	for _, id := range connector.Union(pilot, production) {
		doc.Connectors++

		fragments, diag, err := g.documentConnector(pilot, production, id)
		if err != nil {
			doc.Failed++
			g.log.Error("connector documentation failed",
				zap.String("connector", id.Name),
				zap.Error(err),
			)
			note := g.renderer.RenderNote(report.Section{
				Title:     id.Name,
				Level:     2,
				ContextID: contextID(id, "error"),
			}, fmt.Sprintf("This connector could not be documented: %v", err))
			doc.append(note)
			continue
		}

		for _, frag := range fragments {
			doc.append(frag)
		}
		doc.Diagnostics = append(doc.Diagnostics, diag.Entries()...)
	}

	g.log.Info("report generated",
		zap.Int("connectors", doc.Connectors),
		zap.Int("failed", doc.Failed),
		zap.Int("diagnostics", len(doc.Diagnostics)),
	)
	return doc, nil
}

// documentConnector renders every entity section of one connector, in
// canonical order.
func (g *Generator) documentConnector(pilot, production *snapshot.Tree, id connector.Identity) ([]report.Fragment, *connector.Diagnostics, error) {
	defer logger.Span(g.log, "document connector", zap.String("connector", id.Name))()

	diag := &connector.Diagnostics{}
	fragments := []report.Fragment{
		g.renderer.RenderHeading(report.Section{
			Title:     id.Name,
			Level:     2,
			ContextID: contextID(id, "connector"),
		}),
	}

	for _, d := range []connector.Documenter{
		connector.Properties(),
		connector.ProvisioningHierarchy(),
		connector.ObjectTypes(),
		connector.Attributes(),
	} {
		op := opContext(id, d.Kind)
		result, err := d.Diff(pilot, production, op, diag)
		if err != nil {
			return nil, nil, err
		}
		frag, err := g.renderer.RenderTable(result, report.Section{
			Title:     d.Title,
			Level:     3,
			ContextID: contextID(id, d.Kind),
			EmptyText: d.EmptyText,
		})
		if err != nil {
			return nil, nil, err
		}
		fragments = append(fragments, frag)
	}

	for _, rs := range connector.RuleSections() {
		op := opContext(id, rs.Kind)
		result, err := rs.Diff(pilot, production, op)
		if err != nil {
			return nil, nil, err
		}
		frag, err := g.renderer.RenderTable(result, report.Section{
			Title:     rs.Title,
			Level:     3,
			ContextID: contextID(id, rs.Kind),
			EmptyText: rs.EmptyText,
		})
		if err != nil {
			return nil, nil, err
		}
		fragments = append(fragments, frag)
	}

	op := opContext(id, connector.RunProfileKind)
	set, err := connector.RunProfiles(pilot, production, op)
	if err != nil {
		return nil, nil, err
	}
	frag, err := g.renderer.RenderSet(set, report.Section{
		Title:     connector.RunProfileTitle,
		Level:     3,
		ContextID: contextID(id, connector.RunProfileKind),
		EmptyText: connector.RunProfileEmptyText,
	})
	if err != nil {
		return nil, nil, err
	}
	fragments = append(fragments, frag)

	return fragments, diag, nil
}

func opContext(id connector.Identity, section string) connector.OpContext {
	return connector.OpContext{
		ConnectorName: id.Name,
		ConnectorID:   id.ID,
		Section:       section,
	}
}

// contextID namespaces bookmarks per connector and entity kind. The GUID
// keeps codes collision-free when two connectors share a name.
func contextID(id connector.Identity, kind string) string {
	key := id.ID
	if key == "" {
		key = id.Name
	}
	return key + "/" + kind
}
