// Package material holds the already-parsed Material/FieldSpec/DialogueTable
// registries (spec.md §6). Parsing `.mdm` files is external; this package
// only defines the parsed shape and a simple in-memory registry keyed by
// stable identifier.
package material

import "fmt"

// PhysicsProfile carries a material's optional physical properties.
type PhysicsProfile struct {
	Mass          float64
	Friction      float64
	Bounce        float64
	DecayRate     float64
	Temperature   float64
	Humidity      float64
	Conductivity  float64
	Density       float64
	HasPhysics    bool
}

// LanguageProfile carries a material's optional language configuration.
type LanguageProfile struct {
	Native        string
	Weights       map[string]float64
	AdaptToContext bool
	HasLanguage   bool
}

// EmotionTransition maps a trigger expression to a target emotion label.
// The trigger-expression grammar itself is external; the core only stores
// and looks up the string.
type EmotionTransition struct {
	Trigger      string
	TargetLabel  string
}

// Material is the parsed representation of a `.mdm` document (spec.md §6).
type Material struct {
	ID                string
	Physics           PhysicsProfile
	Dialogue          DialogueTable
	EmotionTransitions []EmotionTransition
	Language          LanguageProfile
}

// DialogueTable is the already-parsed category -> ordered list of
// language-tagged phrases a Material carries.
type DialogueTable struct {
	entries map[string]map[string][]string
}

// NewDialogueTable creates an empty table ready for Set calls.
func NewDialogueTable() DialogueTable {
	return DialogueTable{entries: make(map[string]map[string][]string)}
}

// Set registers the phrase list for a (category, lang) pair.
func (d DialogueTable) Set(category, lang string, phrases []string) {
	if d.entries[category] == nil {
		d.entries[category] = make(map[string][]string)
	}
	d.entries[category][lang] = phrases
}

// Phrase returns the first phrase registered for (category, lang), the
// shape internal/dialogue.MaterialTable needs. An entity that wants weighted
// random selection among several phrases should use Phrases instead.
func (d DialogueTable) Phrase(category, lang string) (string, bool) {
	phrases, ok := d.Phrases(category, lang)
	if !ok || len(phrases) == 0 {
		return "", false
	}
	return phrases[0], true
}

// Phrases returns every phrase registered for (category, lang).
func (d DialogueTable) Phrases(category, lang string) ([]string, bool) {
	byLang, ok := d.entries[category]
	if !ok {
		return nil, false
	}
	phrases, ok := byLang[lang]
	return phrases, ok
}

// FieldOrigin names where a FieldSpec's origin is bound (spec.md §6).
type FieldOrigin string

const (
	OriginSelf   FieldOrigin = "self"
	OriginBind   FieldOrigin = "$bind"
	OriginCursor FieldOrigin = "$cursor"
)

// FieldSpec is the parsed representation of a field template (spec.md §6).
type FieldSpec struct {
	ID             string
	MaterialID     string
	Origin         FieldOrigin
	RadiusPx       float64
	DurationMs     float64
	EffectOnOthers map[string]float64
	SourceMaterialID string
	HasSourceMaterial bool
}

// Registry is an append-mostly, in-memory store of Materials and FieldSpecs,
// indexed by stable identifier (spec.md §5: "Registries (materials, fields,
// contexts) are append-mostly; removals are permitted between ticks only.").
type Registry struct {
	materials  map[string]Material
	fieldSpecs map[string]FieldSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		materials:  make(map[string]Material),
		fieldSpecs: make(map[string]FieldSpec),
	}
}

// RegisterMaterial adds or replaces a Material by id.
func (r *Registry) RegisterMaterial(m Material) { r.materials[m.ID] = m }

// RegisterFieldSpec adds or replaces a FieldSpec by id.
func (r *Registry) RegisterFieldSpec(f FieldSpec) { r.fieldSpecs[f.ID] = f }

// Material looks up a Material by id. A miss during restore is fatal per
// spec.md §7 — callers at the restore boundary should treat !ok as an error
// to propagate, not recover from.
func (r *Registry) Material(id string) (Material, bool) {
	m, ok := r.materials[id]
	return m, ok
}

// FieldSpec looks up a FieldSpec by id.
func (r *Registry) FieldSpec(id string) (FieldSpec, bool) {
	f, ok := r.fieldSpecs[id]
	return f, ok
}

// RequireMaterial looks up a Material by id, returning a wrapped error on
// miss for use at registry boundaries (spec.md §7: "Registry miss ... ->
// fatal, propagates to caller").
func (r *Registry) RequireMaterial(id string) (Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return Material{}, fmt.Errorf("material registry miss: %q", id)
	}
	return m, nil
}

// RequireFieldSpec looks up a FieldSpec by id, returning a wrapped error on
// miss.
func (r *Registry) RequireFieldSpec(id string) (FieldSpec, error) {
	f, ok := r.fieldSpecs[id]
	if !ok {
		return FieldSpec{}, fmt.Errorf("field spec registry miss: %q", id)
	}
	return f, nil
}

// RemoveMaterial removes a Material by id. Per spec.md §5 this is only
// valid between ticks, never from inside Tick.
func (r *Registry) RemoveMaterial(id string) { delete(r.materials, id) }

// RemoveFieldSpec removes a FieldSpec by id.
func (r *Registry) RemoveFieldSpec(id string) { delete(r.fieldSpecs, id) }
