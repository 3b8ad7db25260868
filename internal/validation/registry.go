package validation

import (
	"context"
	"fmt"
	"sync"

	"github.com/clevercanary/atlas-sync/internal/tracker"
)

// Registry holds the validation rules of each entity type
type Registry struct {
	mu    sync.RWMutex
	rules map[tracker.EntityType][]Rule
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{rules: make(map[tracker.EntityType][]Rule)}
}

// Register adds rules for an entity type. Rule IDs must be unique per entity type.
func (r *Registry) Register(entityType tracker.EntityType, rules ...Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rule := range rules {
		for _, existing := range r.rules[entityType] {
			if existing.ID() == rule.ID() {
				return fmt.Errorf("validation %s is already registered for %s", rule.ID(), entityType)
			}
		}
		r.rules[entityType] = append(r.rules[entityType], rule)
	}
	return nil
}

// Rules returns the rules registered for an entity type in registration order
func (r *Registry) Rules(entityType tracker.EntityType) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Rule(nil), r.rules[entityType]...)
}

// NewRule creates a rule for entities of type E.
// Validating an entity of another type is an error.
func NewRule[E Entity](
	id ID,
	validationType Type,
	system System,
	description string,
	validate func(ctx context.Context, entity E) (*StatusInfo, error),
) Rule {
	return &typedRule[E]{
		id:             id,
		validationType: validationType,
		system:         system,
		description:    description,
		validate:       validate,
	}
}

type typedRule[E Entity] struct {
	id             ID
	validationType Type
	system         System
	description    string
	validate       func(ctx context.Context, entity E) (*StatusInfo, error)
}

func (r *typedRule[E]) ID() ID              { return r.id }
func (r *typedRule[E]) Type() Type          { return r.validationType }
func (r *typedRule[E]) System() System      { return r.system }
func (r *typedRule[E]) Description() string { return r.description }

func (r *typedRule[E]) Validate(ctx context.Context, entity Entity) (*StatusInfo, error) {
	typed, ok := entity.(E)
	if !ok {
		return nil, fmt.Errorf("validation %s cannot be applied to %s", r.id, entity.EntityType())
	}
	return r.validate(ctx, typed)
}
