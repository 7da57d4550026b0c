package workflow

import (
	"fmt"

	"github.com/opencampus/doctrack/internal/model"
)

// Route is the ordered stage ladder a document category travels, plus
// the stage holding terminal approval authority. Routing is a
// configuration input, never a hard-coded branch on role strings.
type Route struct {
	Stages   []Stage `mapstructure:"stages" json:"stages"`
	Terminal Stage   `mapstructure:"terminal" json:"terminal"`
}

// Next returns the stage after current, or false when current is the
// last stage of the route.
func (r Route) Next(current Stage) (Stage, bool) {
	for i, s := range r.Stages {
		if s == current && i+1 < len(r.Stages) {
			return r.Stages[i+1], true
		}
	}
	return "", false
}

// Contains reports whether the route passes through stage s.
func (r Route) Contains(s Stage) bool {
	for _, st := range r.Stages {
		if st == s {
			return true
		}
	}
	return false
}

// Origin is the first stage of the route.
func (r Route) Origin() Stage {
	if len(r.Stages) == 0 {
		return StageInstructor
	}
	return r.Stages[0]
}

// Validate checks the route is well formed.
func (r Route) Validate() error {
	if len(r.Stages) < 2 {
		return fmt.Errorf("route must have at least two stages")
	}
	seen := make(map[Stage]bool, len(r.Stages))
	for _, s := range r.Stages {
		if !s.Valid() {
			return fmt.Errorf("unknown stage %q", s)
		}
		if seen[s] {
			return fmt.Errorf("stage %q appears twice", s)
		}
		seen[s] = true
	}
	if !r.Contains(r.Terminal) {
		return fmt.Errorf("terminal stage %q is not on the route", r.Terminal)
	}
	return nil
}

// RouteTable maps a document category kind to its route.
type RouteTable map[string]Route

// DefaultRouteTable is the institutional routing used when the config
// file does not override it: academic documents go through the VPAA,
// administrative ones through the VPADA, with the President as the
// terminal approval authority for both.
func DefaultRouteTable() RouteTable {
	return RouteTable{
		model.CategoryKindAcademic: {
			Stages:   []Stage{StageInstructor, StageDean, StageVPAA, StagePresident, StageRegistrar, StageArchives},
			Terminal: StagePresident,
		},
		model.CategoryKindAdministrative: {
			Stages:   []Stage{StageInstructor, StageDean, StageVPADA, StagePresident, StageRegistrar, StageArchives},
			Terminal: StagePresident,
		},
	}
}

// Resolve returns the route for a category kind.
func (t RouteTable) Resolve(kind string) (Route, error) {
	route, ok := t[kind]
	if !ok {
		return Route{}, fmt.Errorf("no route configured for category kind %q", kind)
	}
	return route, nil
}

// Validate checks every route in the table.
func (t RouteTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("route table is empty")
	}
	for kind, route := range t {
		if err := route.Validate(); err != nil {
			return fmt.Errorf("route for %q: %w", kind, err)
		}
	}
	return nil
}
