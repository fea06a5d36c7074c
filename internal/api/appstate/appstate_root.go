package appstate

import (
	"slices"
	"sync"
)

// DarkClass is the root class present while the dark theme is active.
const DarkClass = "dark"

// ClassList is the class set of the document root element. The store keeps
// DarkClass on it in step with the theme so presentation code can react.
type ClassList interface {
	Toggle(class string, on bool)
	Contains(class string) bool
}

var _ ClassList = (*RootElement)(nil)

// RootElement is the server-side stand-in for the document root, shared by
// every view that renders the theme.
type RootElement struct {
	mu      sync.RWMutex
	classes map[string]struct{}
}

func NewRootElement() *RootElement {
	return &RootElement{classes: make(map[string]struct{})}
}

func (r *RootElement) Toggle(class string, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if on {
		r.classes[class] = struct{}{}
		return
	}
	delete(r.classes, class)
}

func (r *RootElement) Contains(class string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[class]
	return ok
}

// Classes returns the current classes in sorted order.
func (r *RootElement) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
