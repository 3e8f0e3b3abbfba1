// Copyright 2025 MakeMCP Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sources

import (
	"fmt"
	"sort"
	"sync"
)

// SourceRegistry holds the available API sources by name.
type SourceRegistry struct {
	mu      sync.RWMutex
	sources map[string]APISource
}

// NewSourceRegistry creates a registry with the given sources registered.
func NewSourceRegistry(sources ...APISource) *SourceRegistry {
	r := &SourceRegistry{sources: make(map[string]APISource)}
	for _, source := range sources {
		r.Register(source)
	}
	return r
}

// Register adds source, replacing any source with the same name.
func (r *SourceRegistry) Register(source APISource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.Name()] = source
}

// Get returns the source registered under name.
func (r *SourceRegistry) Get(name string) (APISource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, exists := r.sources[name]
	if !exists {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", name, r.listLocked())
	}
	return source, nil
}

// List returns the names of all registered sources, sorted.
func (r *SourceRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *SourceRegistry) listLocked() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
