// Package docgen assembles the comparison report document.
//
// The generator walks the union of connectors from both snapshots in name
// order and, for each connector, runs the entity documenters in canonical
// order: Properties, Provisioning Hierarchy, Selected Object Types,
// Selected Attributes, Provisioning Rules, Sticky-Join Rules,
// Conditional-Join Rules, Sync Rules, Run Profiles.
//
// A single connector's failure does not abort the report: the assembler
// substitutes an error note section for that connector and continues with
// the rest. The diff/render core itself surfaces failures explicitly;
// isolation happens only here.
//
// The assembled document is plain concatenation of the per-entity
// (body, TOC) fragment pairs inside a fixed HTML shell; fragments are
// never merged or rewritten.
package docgen
