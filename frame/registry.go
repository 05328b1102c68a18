// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frame

import (
	"fmt"
	"strings"
	"sync"

	"github.com/stockparfait/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Alternate formats and the optional components they require.
const (
	MatrixFormat = "matrix"

	ComponentGonum  = "gonum/mat"
	ComponentMatrix = "frame/matrix"
)

// Formats maps each alternate format to the components which must be present
// in a Registry before a Frame can be converted to it.
var Formats = map[string][]string{
	MatrixFormat: {ComponentGonum, ComponentMatrix},
}

// Converter turns a Frame into an alternate in-memory representation.
type Converter func(f *Frame) (any, error)

// MissingError is returned when an alternate format is requested without its
// required components.
type MissingError struct {
	Format     string
	Components []string // all the components the format requires
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("format '%s' requires optional components %s; please import them",
		e.Format, strings.Join(e.Components, " and "))
}

// Registry records which optional components are linked into the program and
// the converters they provide. Components register themselves, typically from
// an init() function of their package.
type Registry struct {
	mu         sync.RWMutex
	components map[string]struct{}
	converters map[string]Converter
}

// DefaultRegistry is where optional packages register on import.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]struct{}),
		converters: make(map[string]Converter),
	}
}

// Provide marks the component as present.
func (r *Registry) Provide(component string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[component] = struct{}{}
}

// SetConverter installs the converter for the format.
func (r *Registry) SetConverter(format string, c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[format] = c
}

// Available reports whether the component is present. It has no side effects.
func (r *Registry) Available(component string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.components[component]
	return ok
}

// Components lists the present components in sorted order.
func (r *Registry) Components() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := maps.Keys(r.components)
	slices.Sort(names)
	return names
}

// Check verifies that the format is known and that all of its components are
// present.
func (r *Registry) Check(format string) error {
	required, ok := Formats[format]
	if !ok {
		known := maps.Keys(Formats)
		slices.Sort(known)
		return errors.Reason("unknown format '%s'; expected one of: %s",
			format, strings.Join(known, ", "))
	}
	for _, c := range required {
		if !r.Available(c) {
			return &MissingError{Format: format, Components: slices.Clone(required)}
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.converters[format]; !ok {
		return &MissingError{Format: format, Components: slices.Clone(required)}
	}
	return nil
}

// Convert the frame to the alternate format.
func (r *Registry) Convert(format string, f *Frame) (any, error) {
	if err := r.Check(format); err != nil {
		return nil, err
	}
	r.mu.RLock()
	c := r.converters[format]
	r.mu.RUnlock()
	res, err := c(f)
	if err != nil {
		return nil, errors.Annotate(err, "failed to convert to %s", format)
	}
	return res, nil
}
