package schema

import (
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
)

// Kind identifies the direction of a declared association.
type Kind string

const (
	HasMany   Kind = "has_many"
	BelongsTo Kind = "belongs_to"
)

// Association records a declared relationship between two registered models.
type Association struct {
	Kind       Kind
	Field      string // field name on the source model, e.g. "Users"
	Source     interface{}
	Target     interface{}
	ForeignKey string // FK column, held by the target (HasMany) or the source (BelongsTo)
}

// Associator is implemented by models that declare relationships to other
// models. Associate runs only after every model has been registered, so a
// declaration never has to reference a model that does not exist yet.
type Associator interface {
	Associate(r *Registry) error
}

// Registry collects entity models at init time and wires their associations
// in a single deferred pass.
type Registry struct {
	mu         sync.Mutex
	models     []interface{}
	hooks      []Associator
	assocs     []Association
	associated bool
}

// Default is the registry entity packages register themselves with.
var Default = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a model to the registry. Models implementing Associator have
// their association hook deferred until Associate runs.
func (r *Registry) Register(model interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.models = append(r.models, model)
	if a, ok := model.(Associator); ok {
		r.hooks = append(r.hooks, a)
	}
}

// Register adds a model to the default registry.
func Register(model interface{}) {
	Default.Register(model)
}

// Associate runs every deferred association hook. It is idempotent; only the
// first call executes the hooks.
func (r *Registry) Associate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.associated {
		return nil
	}
	for _, hook := range r.hooks {
		if err := hook.Associate(r); err != nil {
			return fmt.Errorf("associate %T: %w", hook, err)
		}
	}
	r.associated = true
	return nil
}

// Associate wires the default registry.
func Associate() error {
	return Default.Associate()
}

// HasMany declares a one-to-many link from source to target, resolved via a
// foreign key column on the target's table. Called from Associate hooks.
func (r *Registry) HasMany(source, target interface{}, field, foreignKey string) error {
	if !r.registered(target) {
		return fmt.Errorf("has-many target %T is not registered", target)
	}
	r.assocs = append(r.assocs, Association{
		Kind:       HasMany,
		Field:      field,
		Source:     source,
		Target:     target,
		ForeignKey: foreignKey,
	})
	return nil
}

// BelongsTo declares a many-to-one link from source to target, resolved via a
// foreign key column on the source's table.
func (r *Registry) BelongsTo(source, target interface{}, field, foreignKey string) error {
	if !r.registered(target) {
		return fmt.Errorf("belongs-to target %T is not registered", target)
	}
	r.assocs = append(r.assocs, Association{
		Kind:       BelongsTo,
		Field:      field,
		Source:     source,
		Target:     target,
		ForeignKey: foreignKey,
	})
	return nil
}

// Models returns the registered models in registration order.
func (r *Registry) Models() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]interface{}, len(r.models))
	copy(out, r.models)
	return out
}

// Associations returns the declared associations whose source is model.
func (r *Registry) Associations(model interface{}) []Association {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Association
	t := reflect.TypeOf(model)
	for _, a := range r.assocs {
		if reflect.TypeOf(a.Source) == t {
			out = append(out, a)
		}
	}
	return out
}

// AutoMigrate creates or updates tables for every registered model, in
// registration order. Production schemas go through the migration runner;
// this is for throwaway databases.
func (r *Registry) AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(r.Models()...)
}

func (r *Registry) registered(model interface{}) bool {
	t := reflect.TypeOf(model)
	for _, m := range r.models {
		if reflect.TypeOf(m) == t {
			return true
		}
	}
	return false
}
