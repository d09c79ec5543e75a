package gamedata

import (
	"errors"
	"fmt"
)

// DefaultVariantID is the variant used when none is requested.
const DefaultVariantID = "classic"

// VariantRegistry holds loaded variant definitions and provides lookup utilities.
type VariantRegistry struct {
	variants map[string]*VariantDef
	all      []VariantDef
}

// NewVariantRegistry creates a registry from loaded variant definitions.
func NewVariantRegistry(variants []VariantDef) *VariantRegistry {
	registry := &VariantRegistry{
		variants: make(map[string]*VariantDef),
		all:      variants,
	}
	for i := range variants {
		registry.variants[variants[i].ID] = &variants[i]
	}
	return registry
}

// LoadVariantRegistry loads and creates a registry from the embedded variants.json.
func LoadVariantRegistry() (*VariantRegistry, error) {
	variants, err := LoadVariants()
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, errors.New("no variants loaded from variants.json")
	}
	return NewVariantRegistry(variants), nil
}

// MustLoadVariantRegistry loads a registry, panicking on error.
func MustLoadVariantRegistry() *VariantRegistry {
	registry, err := LoadVariantRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the variant with the given ID, or nil if not found.
func (r *VariantRegistry) GetByID(id string) *VariantDef {
	return r.variants[id]
}

// Resolve returns the variant with the given ID, falling back to
// DefaultVariantID when id is empty.
func (r *VariantRegistry) Resolve(id string) (*VariantDef, error) {
	if id == "" {
		id = DefaultVariantID
	}
	v := r.GetByID(id)
	if v == nil {
		return nil, fmt.Errorf("unknown variant %q", id)
	}
	return v, nil
}

// All returns all variant definitions.
func (r *VariantRegistry) All() []VariantDef {
	return r.all
}

// Count returns the number of variants in the registry.
func (r *VariantRegistry) Count() int {
	return len(r.all)
}
