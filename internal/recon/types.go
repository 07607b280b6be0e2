// Package recon crawls a target, probes well-known paths and categorizes
// the parameters it finds.
package recon

import (
	"github.com/PentesterFlow/accessauditor/internal/metrics"
)

// Field is a named form control.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Form is a <form> element found on a crawled page.
type Form struct {
	Action string  `json:"action"`
	Method string  `json:"method"`
	Fields []Field `json:"parameters"`
}

// AdminPanel is an admin-like well-known path that answered below 400.
type AdminPanel struct {
	URL    string `json:"url"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

// Category is a parameter bucket.
type Category string

// Parameter categories.
const (
	UserRelated     Category = "user_related"
	ResourceRelated Category = "resource_related"
	BusinessLogic   Category = "business_logic"
	AccessControl   Category = "access_control"
	Sensitive       Category = "sensitive"
)

// Categories lists every category in rule order.
var Categories = []Category{UserRelated, ResourceRelated, BusinessLogic, AccessControl, Sensitive}

// Categorized maps each category to its sorted parameter names.
// Every category is present, possibly with an empty slice.
type Categorized map[Category][]string

// Count returns the number of parameters across the given categories.
func (c Categorized) Count(cats ...Category) int {
	n := 0
	for _, cat := range cats {
		n += len(c[cat])
	}
	return n
}

// Stage is a step of a recon run.
type Stage int

// Stages in run order.
const (
	StageRecon Stage = iota
	StageCrawl
	StageProbe
	StageCategorize
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageRecon:
		return "recon"
	case StageCrawl:
		return "crawl"
	case StageProbe:
		return "probe"
	case StageCategorize:
		return "categorize"
	default:
		return "unknown"
	}
}

// Result is the outcome of a run. Nothing in the engine holds a
// reference to it once Run returns.
type Result struct {
	Target          string           `json:"target"`
	Endpoints       []string         `json:"endpoints"`
	Parameters      []string         `json:"parameters"`
	Forms           []Form           `json:"forms"`
	AdminPanels     []AdminPanel     `json:"admin_panels"`
	Categorized     Categorized      `json:"categorized_params"`
	TotalEndpoints  int              `json:"total_endpoints"`
	TotalParameters int              `json:"total_parameters"`
	Stats           metrics.Snapshot `json:"stats"`
}
