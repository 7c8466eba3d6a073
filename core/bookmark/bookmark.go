// Package bookmark allocates stable anchor identifiers shared between a
// report's body and its table of contents.
//
// Codes are deterministic for a given (context id, title) pair and unique
// across one document-generation run. The manager is the only run-scoped
// mutable state in the report core; connectors are processed sequentially,
// so it is not goroutine-safe.
package bookmark

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Location records which side of the document an anchor was emitted on.
type Location int

const (
	// LocationBody marks an anchor in a body fragment.
	LocationBody Location = iota
	// LocationTOC marks an anchor in a table-of-contents fragment.
	LocationTOC
)

// pairSeparator joins context id and title when hashing, so that
// ("a", "bc") and ("ab", "c") never produce the same code.
const pairSeparator = "\x1f"

// Manager allocates and resolves bookmark codes for one run.
type Manager struct {
	codes     map[string]string   // (contextID, title) -> code
	taken     map[string]string   // code -> (contextID, title)
	locations map[string]Location // code -> where the anchor lives
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		codes:     make(map[string]string),
		taken:     make(map[string]string),
		locations: make(map[string]Location),
	}
}

// Allocate returns the anchor code for a (context id, title) pair. The
// same pair always yields the same code; distinct pairs never share one.
// An empty title falls back to the context id alone, so the code is never
// empty.
func (m *Manager) Allocate(contextID, title string) string {
	pair := contextID + pairSeparator + title
	if code, ok := m.codes[pair]; ok {
		return code
	}

	display := title
	if display == "" {
		display = contextID
	}

	base := sanitize(display) + "-" + shortHash(pair)
	code := base
	for n := 2; ; n++ {
		if _, used := m.taken[code]; !used {
			break
		}
		// FNV collision between distinct pairs; disambiguate with a counter.
		code = fmt.Sprintf("%s-%d", base, n)
	}

	m.codes[pair] = code
	m.taken[code] = pair
	return code
}

// Mark records the location an anchor was emitted at.
func (m *Manager) Mark(code string, loc Location) {
	m.locations[code] = loc
}

// Resolve returns the recorded location of a code.
func (m *Manager) Resolve(code string) (Location, bool) {
	loc, ok := m.locations[code]
	return loc, ok
}

// sanitize reduces a display title to a readable anchor stem: lower-case
// alphanumerics with single dashes.
func sanitize(s string) string {
	var b strings.Builder
	dash := true // suppress leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func shortHash(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}
