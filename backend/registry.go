package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Kind classifies what a registered backend provides.
type Kind string

const (
	KindChat        Kind = "chat"
	KindTranscriber Kind = "transcriber"
	KindSpeaker     Kind = "speaker"
)

// Factory builds a backend instance. Factories run once, on first use;
// the built instance is cached for the life of the registry.
type Factory func() (any, error)

// Info describes a registered backend's name and kind.
type Info struct {
	Name string
	Kind Kind
}

type entry struct {
	kind    Kind
	factory Factory
	built   any
}

// Registry manages named backend factories with lazy instantiation.
// It is constructed once and passed by reference to whatever needs it;
// there is no ambient package-level registry. Thread-safe.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a named backend factory. The backend is not built until
// first use.
func (r *Registry) Register(name string, kind Kind, factory Factory) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}

	r.entries[name] = &entry{kind: kind, factory: factory}
	return nil
}

// Replace updates the factory for an existing name. Any cached instance is
// invalidated; the next use rebuilds.
func (r *Registry) Replace(name string, kind Kind, factory Factory) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	r.entries[name] = &entry{kind: kind, factory: factory}
	return nil
}

// Unregister removes a named backend from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	delete(r.entries, name)
	return nil
}

// List returns information about all registered backends, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.entries))
	for name, e := range r.entries {
		infos = append(infos, Info{Name: name, Kind: e.kind})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}

// Chat retrieves a named chat backend, building it on first access.
func (r *Registry) Chat(name string) (Chat, error) {
	v, err := r.get(name, KindChat)
	if err != nil {
		return nil, err
	}
	c, ok := v.(Chat)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not implement Chat", ErrKindMismatch, name)
	}
	return c, nil
}

// Transcriber retrieves a named transcription backend, building it on first
// access.
func (r *Registry) Transcriber(name string) (Transcriber, error) {
	v, err := r.get(name, KindTranscriber)
	if err != nil {
		return nil, err
	}
	tr, ok := v.(Transcriber)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not implement Transcriber", ErrKindMismatch, name)
	}
	return tr, nil
}

// Speaker retrieves a named speech-output backend, building it on first
// access.
func (r *Registry) Speaker(name string) (Speaker, error) {
	v, err := r.get(name, KindSpeaker)
	if err != nil {
		return nil, err
	}
	s, ok := v.(Speaker)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not implement Speaker", ErrKindMismatch, name)
	}
	return s, nil
}

func (r *Registry) get(name string, kind Kind) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.entries[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if e.kind != kind {
		return nil, fmt.Errorf("%w: %s is %s, want %s", ErrKindMismatch, name, e.kind, kind)
	}

	if e.built != nil {
		return e.built, nil
	}

	v, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("failed to build backend %q: %w", name, err)
	}

	if validator, ok := v.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("backend %q failed validation: %w", name, err)
		}
	}

	e.built = v
	return v, nil
}
