package importer

import (
	"sort"
	"sync"

	"github.com/coltfox/Sollumz/mesh"
)

// Library is the imported model set served by the viewer. Reads and
// writes may come from different goroutines once the server is up.
type Library struct {
	mu     sync.RWMutex
	models map[string]*mesh.Model
}

func NewLibrary() *Library {
	return &Library{models: make(map[string]*mesh.Model)}
}

func (l *Library) Add(model *mesh.Model) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.models[model.Name] = model
}

func (l *Library) Get(name string) (*mesh.Model, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	model, ok := l.models[name]
	return model, ok
}

func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.models))
	for name := range l.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.models)
}

// First returns the model with the lexicographically first name, used
// for single-file export runs.
func (l *Library) First() *mesh.Model {
	names := l.Names()
	if len(names) == 0 {
		return nil
	}
	model, _ := l.Get(names[0])
	return model
}
