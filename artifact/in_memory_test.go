package artifact

import (
	"sync"
	"testing"

	"github.com/hupe1980/scriptmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var _ core.ArtifactStore = (*InMemoryStore)(nil)

func TestInMemoryStore_SaveGetIsolation(t *testing.T) {
	svc := NewInMemoryStore()
	data := []byte("hello")
	require.NoError(t, svc.Save(core.RoleEditor, "a1", data))
	data[0] = 'H'
	out, err := svc.Get(core.RoleEditor, "a1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	out[0] = 'x'
	out2, _ := svc.Get(core.RoleEditor, "a1")
	assert.Equal(t, "hello", string(out2))
}

func TestInMemoryStore_AddSequentialAndLatest(t *testing.T) {
	svc := NewInMemoryStore()
	_, _, err := svc.Latest(core.RoleEditor)
	assert.ErrorIs(t, err, ErrNotFound)

	id1, err := svc.Add(core.RoleEditor, []byte("v1"))
	require.NoError(t, err)
	id2, _ := svc.Add(core.RoleEditor, []byte("v2"))
	other, _ := svc.Add(core.RoleFactChecker, []byte("x"))

	assert.Equal(t, "draft-0001", id1)
	assert.Equal(t, "draft-0002", id2)
	assert.Equal(t, "draft-0001", other)

	id, data, err := svc.Latest(core.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, id2, id)
	assert.Equal(t, "v2", string(data))

	ids, _ := svc.List(core.RoleEditor)
	assert.Equal(t, []string{id1, id2}, ids)
}

func TestInMemoryStore_SaveOverwritesInPlace(t *testing.T) {
	svc := NewInMemoryStore()
	id1, _ := svc.Add(core.RoleEditor, []byte("1"))
	id2, _ := svc.Add(core.RoleEditor, []byte("2"))

	require.NoError(t, svc.Save(core.RoleEditor, id1, []byte("1b")))
	ids, _ := svc.List(core.RoleEditor)
	assert.Equal(t, []string{id1, id2}, ids)

	id, data, err := svc.Latest(core.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, id2, id)
	assert.Equal(t, "2", string(data))

	_, err = svc.Get(core.RoleFactChecker, id1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_OrderBeyondPadding(t *testing.T) {
	svc := NewInMemoryStore()
	for i := 0; i < 10000; i++ {
		_, err := svc.Add(core.RoleEditor, []byte("x"))
		require.NoError(t, err)
	}
	newestID, err := svc.Add(core.RoleEditor, []byte("newest"))
	require.NoError(t, err)
	assert.Equal(t, "draft-10001", newestID)

	id, data, err := svc.Latest(core.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, newestID, id)
	assert.Equal(t, "newest", string(data))

	ids, _ := svc.List(core.RoleEditor)
	require.Len(t, ids, 10001)
	assert.Equal(t, "draft-9999", ids[9998])
	assert.Equal(t, "draft-10000", ids[9999])
	assert.Equal(t, newestID, ids[10000])
}

func TestInMemoryStore_ConcurrentAdd(t *testing.T) {
	svc := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Add(core.RoleEditor, []byte("data")); err != nil {
				t.Errorf("add err: %v", err)
			}
		}()
	}
	wg.Wait()
	ids, err := svc.List(core.RoleEditor)
	require.NoError(t, err)
	assert.Len(t, ids, 100)
	assert.Equal(t, "draft-0100", ids[99])
}
