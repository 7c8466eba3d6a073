package report

// Section carries the static metadata of one report section.
type Section struct {
	// Title is the heading text.
	Title string

	// Level is the heading level (1 = top).
	Level int

	// ContextID namespaces the section's bookmarks, typically the
	// connector GUID plus the entity kind.
	ContextID string

	// EmptyText is the fixed sentence rendered when the section's table
	// has no rows at all.
	EmptyText string
}

// Fragment is the rendered output of one section: an ordered pair of
// body and table-of-contents strings. Fragments are concatenated by the
// document assembler, never merged here.
type Fragment struct {
	Body string
	TOC  string
}
