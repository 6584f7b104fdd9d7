package renderer

// Headless satisfies the Adapter contract with no observable side effects.
// The core simulation must behave identically whether Headless or a visual
// adapter is attached (spec.md §4.16) — this type exists to make that
// equivalence testable.
type Headless struct{}

func (Headless) Init() error                      { return nil }
func (Headless) Spawn(EntityView)                 {}
func (Headless) Update(EntityView, float64)       {}
func (Headless) Destroy(string)                   {}
func (Headless) Clear()                           {}
func (Headless) Dispose()                         {}
