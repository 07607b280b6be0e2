package recon

import (
	"sort"

	"github.com/PentesterFlow/accessauditor/internal/metrics"
)

// accumulator collects findings while a run is in progress. It is owned
// by the run and turned into a Result exactly once.
type accumulator struct {
	endpoints  map[string]struct{}
	parameters map[string]struct{}
	forms      []Form
	panels     []AdminPanel
}

func newAccumulator() *accumulator {
	return &accumulator{
		endpoints:  make(map[string]struct{}),
		parameters: make(map[string]struct{}),
		forms:      make([]Form, 0),
		panels:     make([]AdminPanel, 0),
	}
}

func (a *accumulator) addEndpoint(path string) {
	a.endpoints[path] = struct{}{}
}

func (a *accumulator) addParameter(name string) {
	a.parameters[name] = struct{}{}
}

func (a *accumulator) addForm(f Form) {
	a.forms = append(a.forms, f)
	for _, field := range f.Fields {
		a.addParameter(field.Name)
	}
}

func (a *accumulator) addPanel(p AdminPanel) {
	a.panels = append(a.panels, p)
}

func (a *accumulator) result(target string, cat Categorized, stats metrics.Snapshot) *Result {
	forms := make([]Form, len(a.forms))
	for i, f := range a.forms {
		f.Fields = append([]Field(nil), f.Fields...)
		forms[i] = f
	}

	return &Result{
		Target:          target,
		Endpoints:       sortedKeys(a.endpoints),
		Parameters:      sortedKeys(a.parameters),
		Forms:           forms,
		AdminPanels:     append([]AdminPanel{}, a.panels...),
		Categorized:     cat,
		TotalEndpoints:  len(a.endpoints),
		TotalParameters: len(a.parameters),
		Stats:           stats,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
