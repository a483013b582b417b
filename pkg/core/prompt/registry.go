package prompt

import (
	"fmt"
	"sync"
)

// Registry indexes the stage prompts by ID. A process has one registry:
// the pipeline stages and the API handlers all resolve prompts through it.
type Registry struct {
	templates map[string]*Template
	mu        sync.RWMutex
}

var globalRegistry *Registry
var once sync.Once

// Get returns the process-wide registry.
func Get() *Registry {
	once.Do(func() {
		globalRegistry = &Registry{
			templates: make(map[string]*Template),
		}
	})
	return globalRegistry
}

// Register adds or replaces a stage prompt. Re-registering an ID is how a
// resources reload overrides the built-in defaults.
func (r *Registry) Register(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("prompt ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[t.ID] = t
	return nil
}

// GetPrompt resolves a stage prompt by ID ("extraction.pitch_deck").
func (r *Registry) GetPrompt(id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.templates[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("prompt not found: %s", id)
}

// GetSystemPrompt resolves only the system prompt string, the common case
// for the market and deck stages.
func (r *Registry) GetSystemPrompt(id string) (string, error) {
	t, err := r.GetPrompt(id)
	if err != nil {
		return "", err
	}
	return t.SystemPrompt, nil
}

// StagePrompts returns every prompt registered for one pipeline stage.
func (r *Registry) StagePrompts(stage string) []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Template
	for _, t := range r.templates {
		if t.Category == stage {
			result = append(result, t)
		}
	}
	return result
}

// Count returns the number of registered prompts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// Clear empties the registry. Tests use this to isolate load scenarios.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates = make(map[string]*Template)
}
