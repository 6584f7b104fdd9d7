// Package renderer defines the RendererAdapter external contract (spec.md
// §4.16) and ships two implementations: Headless (a no-op satisfying the
// contract with zero observable side effects) and an HTTP status adapter
// backed by Gin.
package renderer

// EntityView is the minimal per-entity shape a renderer receives — kept
// separate from internal/entity to avoid an import cycle.
type EntityView struct {
	ID        string
	X, Y      float64
	Opacity   float64
	Valence   float64
	Arousal   float64
	Dominance float64
}

// FieldView is the minimal per-field shape a renderer receives.
type FieldView struct {
	ID       string
	OriginX  float64
	OriginY  float64
	RadiusPx float64
	Strength float64
}

// Adapter is the external rendering contract. A renderer either implements
// per-entity Update or the batched RenderAll; World calls whichever is
// available, preferring RenderAll when both are present (spec.md §4.16).
type Adapter interface {
	Init() error
	Spawn(e EntityView)
	Update(e EntityView, dt float64)
	Destroy(entityID string)
	Clear()
	Dispose()
}

// FieldAdapter is an optional extension an Adapter may also implement to
// observe field lifecycle.
type FieldAdapter interface {
	RenderField(f FieldView)
	UpdateField(f FieldView, dt float64)
}

// BatchAdapter is an optional extension for renderers that prefer a single
// batched call over per-entity/per-field updates.
type BatchAdapter interface {
	RenderAll(entities []EntityView, fields []FieldView)
}

// HasRenderAll reports whether a exposes the batched RenderAll path, letting
// callers (the World kernel) choose the batched call when available.
func HasRenderAll(a Adapter) (BatchAdapter, bool) {
	b, ok := a.(BatchAdapter)
	return b, ok
}
