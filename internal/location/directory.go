// Package location holds the static tables of places the service reports on
// and resolves user-supplied names against them.
package location

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/couchcryptid/crop-advisory-service/internal/domain"
)

const fctAlias = "fct"

type entry struct {
	Name string
	Geo  domain.Geo
}

type continentTable struct {
	Name   string
	Places []entry
}

// State is a Nigerian state or the Federal Capital Territory.
type State struct {
	Name         string
	Capital      string
	Abbreviation string
	Geo          domain.Geo
}

// Place converts the state to a domain place under Africa.
func (s State) Place() domain.Place {
	return domain.Place{
		Continent:    "Africa",
		Name:         s.Name,
		Geo:          s.Geo,
		Capital:      s.Capital,
		Abbreviation: s.Abbreviation,
	}
}

// Directory answers lookups over the built-in tables. The zero value is not
// usable; construct with New. A Directory is read-only and safe for
// concurrent use.
type Directory struct {
	continents []continentTable
	byKey      map[string]domain.Place // continent + "\x00" + place
	states     []State                 // sorted by name
	stateByKey map[string]State        // lower-cased name
	fct        State
}

// New builds a directory over the built-in country and state tables.
func New() *Directory {
	d := &Directory{
		continents: continents,
		byKey:      make(map[string]domain.Place),
		stateByKey: make(map[string]State, len(nigerianStates)),
	}

	for _, c := range continents {
		for _, e := range c.Places {
			d.byKey[placeKey(c.Name, e.Name)] = domain.Place{Continent: c.Name, Name: e.Name, Geo: e.Geo}
		}
	}

	d.states = slices.Clone(nigerianStates)
	slices.SortFunc(d.states, func(a, b State) int { return cmp.Compare(a.Name, b.Name) })
	for _, s := range d.states {
		d.stateByKey[strings.ToLower(s.Name)] = s
		if strings.EqualFold(s.Abbreviation, fctAlias) {
			d.fct = s
		}
	}
	return d
}

// Resolve finds a place by exact continent and place name, e.g.
// ("Africa", "Nigeria - Kano").
func (d *Directory) Resolve(continent, name string) (domain.Place, error) {
	p, ok := d.byKey[placeKey(continent, name)]
	if !ok {
		return domain.Place{}, fmt.Errorf("location %q in %q: %w", name, continent, domain.ErrNotFound)
	}
	return p, nil
}

// State finds a Nigerian state by case-insensitive name. "fct" in any case
// selects the Federal Capital Territory.
func (d *Directory) State(name string) (State, error) {
	if strings.EqualFold(name, fctAlias) {
		return d.fct, nil
	}
	s, ok := d.stateByKey[strings.ToLower(name)]
	if !ok {
		return State{}, fmt.Errorf("state %q: %w", name, domain.ErrNotFound)
	}
	return s, nil
}

// All returns every continent-level place, continents and places in their
// declared order.
func (d *Directory) All() []domain.Place {
	var out []domain.Place
	for _, c := range d.continents {
		for _, e := range c.Places {
			out = append(out, domain.Place{Continent: c.Name, Name: e.Name, Geo: e.Geo})
		}
	}
	return out
}

// States returns all Nigerian states sorted by name.
func (d *Directory) States() []State {
	return slices.Clone(d.states)
}

// Continents returns continent names in declared order.
func (d *Directory) Continents() []string {
	out := make([]string, len(d.continents))
	for i, c := range d.continents {
		out[i] = c.Name
	}
	return out
}

func placeKey(continent, name string) string {
	return continent + "\x00" + name
}
