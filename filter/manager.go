package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/cloudagents/cloudagents"
)

// Manager holds named filters, typically the presets from the config file
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: defaultCompiler,
		filters:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple filters at once. Nothing is
// registered if any expression fails to compile.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	for name, expression := range filters {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// Get returns a registered filter
func (m *Manager) Get(name string) (CompiledFilter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filter, ok := m.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return filter, nil
}

// Names returns the registered filter names in sorted order
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Apply filters objects with the named filter
func (m *Manager) Apply(name string, objects []cloudagents.Object) ([]cloudagents.Object, error) {
	filter, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	return Apply(filter, objects), nil
}
