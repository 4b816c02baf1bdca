package calculation

import (
	"fmt"
)

// ErrUnsupportedYear is returned when no federal strategy exists for the
// requested tax year. There is no fallback year; the calculation aborts.
var ErrUnsupportedYear = fmt.Errorf("tax year not supported")

// Registry holds the fixed year and state strategy tables. The supported
// sets are decided at build time; a Registry is constructed once at process
// start and read-only thereafter.
type Registry struct {
	federal map[int]FederalFormStrategy
	state   map[string]StateFormStrategy
}

// NewRegistry builds the registry with every supported tax year and state.
func NewRegistry() *Registry {
	return &Registry{
		federal: map[int]FederalFormStrategy{
			2024: NewForm1040For2024(),
			2025: NewForm1040For2025(),
		},
		state: map[string]StateFormStrategy{
			"NY": NewFormIT201(),
			"NJ": NewFormNJ1040(),
			"PA": NewFormPA40(),
		},
	}
}

// FederalStrategy resolves the Form 1040 strategy for a tax year. An
// unsupported year is a hard error that must surface to the caller.
func (r *Registry) FederalStrategy(year int) (FederalFormStrategy, error) {
	strategy, ok := r.federal[year]
	if !ok {
		return nil, fmt.Errorf("tax year %d: %w", year, ErrUnsupportedYear)
	}
	return strategy, nil
}

// StateStrategy resolves the strategy for a state code. An unrecognized
// code is not an error: the calculation simply produces no state result.
func (r *Registry) StateStrategy(stateCode string) (StateFormStrategy, bool) {
	strategy, ok := r.state[stateCode]
	return strategy, ok
}

// SupportedYears lists the registered federal tax years.
func (r *Registry) SupportedYears() []int {
	years := make([]int, 0, len(r.federal))
	for year := range r.federal {
		years = append(years, year)
	}
	return years
}

// SupportedStates lists the registered state codes.
func (r *Registry) SupportedStates() []string {
	states := make([]string, 0, len(r.state))
	for code := range r.state {
		states = append(states, code)
	}
	return states
}

var _ FederalFormStrategy = (*Form1040)(nil)

var (
	_ StateFormStrategy = (*FormIT201)(nil)
	_ StateFormStrategy = (*FormNJ1040)(nil)
	_ StateFormStrategy = (*FormPA40)(nil)
)
