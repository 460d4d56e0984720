// Package registry provides a global registry for shader program factories.
// Shader packages register themselves in init() functions, allowing the
// platform to discover and compile programs without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-orbit/internal/orbit"
	"github.com/vovakirdan/tui-orbit/internal/shader"
)

// ProgramInfo contains metadata about a registered shader program.
type ProgramInfo struct {
	ID    string
	Title string
}

// Factory compiles a new, independent program for the given orbit. Each
// render session gets its own program so uniform stores are never shared.
type Factory func(o orbit.Params) (*shader.Program, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a shader program factory to the registry.
// Typically called from a shader package's init() function.
// Panics if a program with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: shader %q already registered", id))
	}
	if f == nil {
		panic(fmt.Sprintf("registry: shader %q has a nil factory", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered programs, sorted by ID.
func List() []ProgramInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ProgramInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ProgramInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create compiles a new program by its ID.
// Returns an error if the ID is not registered or compilation fails.
func Create(id string, o orbit.Params) (*shader.Program, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown shader %q", id)
	}

	p, err := f(o)
	if err != nil {
		return nil, fmt.Errorf("registry: compile %q: %w", id, err)
	}
	return p, nil
}

// Exists checks if a program with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
