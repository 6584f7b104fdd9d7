package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadlessSatisfiesAdapter(t *testing.T) {
	var a Adapter = Headless{}
	assert.NoError(t, a.Init())
	a.Spawn(EntityView{ID: "e1"})
	a.Update(EntityView{ID: "e1"}, 0.1)
	a.Destroy("e1")
	a.Clear()
	a.Dispose()
}

func TestHasRenderAllDetectsBatchAdapter(t *testing.T) {
	_, ok := HasRenderAll(Headless{})
	assert.False(t, ok)

	http := NewHTTPStatusAdapter()
	_, ok = HasRenderAll(http)
	assert.True(t, ok)
}

func TestHTTPStatusAdapterSpawnUpdateDestroy(t *testing.T) {
	a := NewHTTPStatusAdapter()
	a.Spawn(EntityView{ID: "e1", X: 1})
	a.Update(EntityView{ID: "e1", X: 2}, 0.1)
	assert.Len(t, a.entities, 1)
	assert.Equal(t, 2.0, a.entities[0].X)

	a.Destroy("e1")
	assert.Empty(t, a.entities)
}

func TestHTTPStatusAdapterRenderAllReplacesSnapshot(t *testing.T) {
	a := NewHTTPStatusAdapter()
	a.Spawn(EntityView{ID: "stale"})
	a.RenderAll([]EntityView{{ID: "fresh"}}, []FieldView{{ID: "f1"}})
	assert.Len(t, a.entities, 1)
	assert.Equal(t, "fresh", a.entities[0].ID)
	assert.Len(t, a.fields, 1)
}

func TestHTTPStatusAdapterClearAndDispose(t *testing.T) {
	a := NewHTTPStatusAdapter()
	a.Spawn(EntityView{ID: "e1"})
	a.Dispose()
	assert.Empty(t, a.entities)
}
