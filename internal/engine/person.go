package engine

import (
	"strings"
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Person is a tracked individual and the date their anniversaries count from.
type Person struct {
	Name      string
	StartDate time.Time
}

// NewPerson validates the entry: a non-blank name and a non-zero date are required.
// The name is trimmed and the date reduced to its civil day.
func NewPerson(name string, start time.Time) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, invalid(config.ErrNameRequired)
	}
	if start.IsZero() {
		return Person{}, invalid(config.ErrDateRequired)
	}
	return Person{Name: name, StartDate: DateOf(start)}, nil
}

// Roster maps names to start dates, remembering insertion order.
// Re-adding a name replaces its date and keeps its position.
type Roster struct {
	order []string
	dates map[string]time.Time
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{dates: make(map[string]time.Time)}
}

// Put adds or replaces p and reports whether the name was new.
func (r *Roster) Put(p Person) bool {
	if r.dates == nil {
		r.dates = make(map[string]time.Time)
	}
	_, exists := r.dates[p.Name]
	if !exists {
		r.order = append(r.order, p.Name)
	}
	r.dates[p.Name] = p.StartDate
	return !exists
}

// Remove deletes name and reports whether it was present.
func (r *Roster) Remove(name string) bool {
	if _, ok := r.dates[name]; !ok {
		return false
	}
	delete(r.dates, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Reset empties the roster.
func (r *Roster) Reset() {
	r.order = nil
	r.dates = make(map[string]time.Time)
}

// Get looks up a person by name.
func (r *Roster) Get(name string) (Person, bool) {
	d, ok := r.dates[name]
	if !ok {
		return Person{}, false
	}
	return Person{Name: name, StartDate: d}, true
}

// Len returns the number of people.
func (r *Roster) Len() int {
	return len(r.order)
}

// People returns the roster in insertion order.
func (r *Roster) People() []Person {
	out := make([]Person, len(r.order))
	for i, n := range r.order {
		out[i] = Person{Name: n, StartDate: r.dates[n]}
	}
	return out
}

// Clone returns an independent copy of the roster.
func (r *Roster) Clone() *Roster {
	c := NewRoster()
	for _, p := range r.People() {
		c.Put(p)
	}
	return c
}
