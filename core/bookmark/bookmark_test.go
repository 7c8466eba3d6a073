package bookmark

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocate_Idempotent(t *testing.T) {
	m := NewManager()

	first := m.Allocate("guid-1/properties", "Properties")
	second := m.Allocate("guid-1/properties", "Properties")

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestAllocate_DistinctContextsNeverCollide(t *testing.T) {
	m := NewManager()

	a := m.Allocate("guid-1/properties", "Properties")
	b := m.Allocate("guid-2/properties", "Properties")

	assert.NotEqual(t, a, b)
}

func TestAllocate_EmptyTitleFallsBackToContext(t *testing.T) {
	m := NewManager()

	code := m.Allocate("guid-1/error", "")
	assert.NotEmpty(t, code)
	assert.Contains(t, code, "guid-1-error")

	// Still idempotent with the fallback.
	assert.Equal(t, code, m.Allocate("guid-1/error", ""))
}

func TestAllocate_ManyPairsStayUnique(t *testing.T) {
	m := NewManager()

	seen := make(map[string]string)
	for c := 0; c < 50; c++ {
		for s := 0; s < 10; s++ {
			ctx := fmt.Sprintf("guid-%d/section-%d", c, s)
			code := m.Allocate(ctx, "Run Profiles")
			prev, dup := seen[code]
			assert.False(t, dup, "code %q allocated for both %q and %q", code, prev, ctx)
			seen[code] = ctx
		}
	}
}

func TestAllocate_SanitizesTitle(t *testing.T) {
	m := NewManager()

	code := m.Allocate("ctx", "Selected Object Types (AD)")
	assert.Contains(t, code, "selected-object-types-ad")
}

func TestMarkAndResolve(t *testing.T) {
	m := NewManager()

	code := m.Allocate("ctx", "Properties")
	m.Mark(code, LocationBody)
	m.Mark(code+"-toc", LocationTOC)

	loc, ok := m.Resolve(code)
	assert.True(t, ok)
	assert.Equal(t, LocationBody, loc)

	loc, ok = m.Resolve(code + "-toc")
	assert.True(t, ok)
	assert.Equal(t, LocationTOC, loc)

	_, ok = m.Resolve("unknown")
	assert.False(t, ok)
}
