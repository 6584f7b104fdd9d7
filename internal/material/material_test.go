package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialogueTableSetAndPhrase(t *testing.T) {
	d := NewDialogueTable()
	d.Set("greeting", "en", []string{"hi", "hello"})

	phrase, ok := d.Phrase("greeting", "en")
	assert.True(t, ok)
	assert.Equal(t, "hi", phrase)

	_, ok = d.Phrase("greeting", "fr")
	assert.False(t, ok)

	_, ok = d.Phrase("missing", "en")
	assert.False(t, ok)
}

func TestRegistryMaterialRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.RegisterMaterial(Material{ID: "wood"})

	m, ok := r.Material("wood")
	assert.True(t, ok)
	assert.Equal(t, "wood", m.ID)

	_, ok = r.Material("stone")
	assert.False(t, ok)
}

func TestRequireMaterialErrorsOnMiss(t *testing.T) {
	r := NewRegistry()
	_, err := r.RequireMaterial("ghost")
	assert.Error(t, err)
}

func TestRequireFieldSpecErrorsOnMiss(t *testing.T) {
	r := NewRegistry()
	_, err := r.RequireFieldSpec("ghost")
	assert.Error(t, err)
}

func TestRemoveMaterial(t *testing.T) {
	r := NewRegistry()
	r.RegisterMaterial(Material{ID: "wood"})
	r.RemoveMaterial("wood")
	_, ok := r.Material("wood")
	assert.False(t, ok)
}
