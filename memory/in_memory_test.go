package memory

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/scriptmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var _ core.MemoryStore = (*InMemoryStore)(nil)

func longInput(i int) string {
	return fmt.Sprintf("this input is long enough to keep #%d", i)
}

func TestInMemoryStore_EmptyGet(t *testing.T) {
	svc := NewInMemoryStore()
	facts, err := svc.Get(core.RoleEditor)
	require.NoError(t, err)
	assert.NotNil(t, facts)
	assert.Empty(t, facts)
}

func TestInMemoryStore_ShortInputsDropped(t *testing.T) {
	svc := NewInMemoryStore()
	for _, in := range []string{"", "hi", strings.Repeat("x", 20), strings.Repeat("é", 20)} {
		require.NoError(t, svc.Record(core.RoleEditor, in, "output"))
	}
	facts, _ := svc.Get(core.RoleEditor)
	assert.Empty(t, facts)

	require.NoError(t, svc.Record(core.RoleEditor, strings.Repeat("x", 21), "output"))
	facts, _ = svc.Get(core.RoleEditor)
	assert.Equal(t, []string{FactPrefix + strings.Repeat("x", 21)}, facts)
}

func TestInMemoryStore_FIFOCap(t *testing.T) {
	svc := NewInMemoryStore()
	for i := 0; i < 8; i++ {
		require.NoError(t, svc.Record(core.RoleEditor, longInput(i), ""))
		facts, _ := svc.Get(core.RoleEditor)
		assert.LessOrEqual(t, len(facts), DefaultMaxFacts)
		assert.Equal(t, FactPrefix+longInput(i), facts[len(facts)-1])
	}
	facts, _ := svc.Get(core.RoleEditor)
	require.Len(t, facts, 5)
	assert.Equal(t, FactPrefix+longInput(3), facts[0])
	assert.Equal(t, FactPrefix+longInput(7), facts[4])
}

func TestInMemoryStore_OutputIgnored(t *testing.T) {
	svc := NewInMemoryStore()
	require.NoError(t, svc.Record(core.RoleEditor, "short", strings.Repeat("long output ", 10)))
	facts, _ := svc.Get(core.RoleEditor)
	assert.Empty(t, facts)
}

func TestInMemoryStore_Options(t *testing.T) {
	svc := NewInMemoryStore(func(o *Options) {
		o.MinInputLength = 2
		o.MaxFacts = 2
	})
	for _, in := range []string{"ab", "abc", "abcd", "abcde"} {
		require.NoError(t, svc.Record(core.RoleFactChecker, in, ""))
	}
	facts, _ := svc.Get(core.RoleFactChecker)
	assert.Equal(t, []string{FactPrefix + "abcd", FactPrefix + "abcde"}, facts)
}

func TestInMemoryStore_RolesIndependent(t *testing.T) {
	svc := NewInMemoryStore()
	require.NoError(t, svc.Record(core.RoleEditor, longInput(1), ""))
	facts, _ := svc.Get(core.RoleFactChecker)
	assert.Empty(t, facts)
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	svc := NewInMemoryStore()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := svc.Record(core.RoleEditor, longInput(i), ""); err != nil {
				t.Errorf("record error: %v", err)
			}
			if _, err := svc.Get(core.RoleEditor); err != nil {
				t.Errorf("get error: %v", err)
			}
		}(i)
	}
	wg.Wait()
	facts, _ := svc.Get(core.RoleEditor)
	assert.Len(t, facts, DefaultMaxFacts)
}
