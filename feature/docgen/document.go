package docgen

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"sync-documenter/core/report"
	"sync-documenter/core/storage"

	"github.com/minio/minio-go/v7"
)

// ReportFileName is the file the assembled document is written to.
const ReportFileName = "report.html"

// Document is the assembled comparison report: the concatenated body and
// TOC fragments plus run statistics.
type Document struct {
	Title string
	Body  string
	TOC   string

	Connectors  int
	Failed      int
	Diagnostics []string
}

func (d *Document) append(frag report.Fragment) {
	d.Body += frag.Body
	d.TOC += frag.TOC
}

// HTML returns the complete document: shell, stylesheet, table of
// contents, and body.
func (d *Document) HTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(d.Title) + "</title>\n")
	b.WriteString("<style>\n" + stylesheet + "</style>\n</head>\n<body>\n")
	b.WriteString("<h1>" + html.EscapeString(d.Title) + "</h1>\n")
	b.WriteString("<div class=\"toc\">\n<h2>Contents</h2>\n" + d.TOC + "</div>\n")
	b.WriteString("<div class=\"report-body\">\n" + d.Body + "</div>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// WriteFile writes the document into the output directory and returns the
// file path.
func (d *Document) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(path, []byte(d.HTML()), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Publish uploads the document to object storage.
func (d *Document) Publish(ctx context.Context, client storage.Client, bucket, object string) error {
	content := []byte(d.HTML())
	_, err := client.PutObject(ctx, bucket, object, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "text/html"})
	if err != nil {
		return fmt.Errorf("publish report %s: %w", object, err)
	}
	return nil
}

// The stylesheet documents the visual treatment of row states: added rows
// green, deleted rows red with strike-through, modified rows amber with
// only the changed cells highlighted, unchanged rows plain.
const stylesheet = `body { font-family: sans-serif; margin: 2em; }
table.diffgram { border-collapse: collapse; margin: 0.5em 0 1.5em; }
table.diffgram th, table.diffgram td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
table.diffgram th { background: #f0f0f0; }
table.diffgram.nested { margin: 0.3em 0 0.3em 2em; }
tr.row-added td { background: #e2f5e2; }
tr.row-deleted td { background: #f8dddd; text-decoration: line-through; }
tr.row-modified td.cell-changed { background: #fdf3d7; }
tr.row-nested > td { border: none; padding: 0; }
td .value-old { color: #a33; }
td .value-new { color: #283; font-weight: bold; }
div.nested-empty { min-height: 0.2em; }
p.empty-section { font-style: italic; color: #555; }
p.note { color: #a33; font-style: italic; }
div.toc p.toc-entry { margin: 0.15em 0; }
div.toc p.toc-level-2 { margin-left: 0; font-weight: bold; }
div.toc p.toc-level-3 { margin-left: 1.5em; font-weight: normal; }
div.toc p.toc-level-4 { margin-left: 3em; font-weight: normal; }
`
