// Package output renders audit results as machine-readable documents.
package output

import (
	"time"

	"github.com/PentesterFlow/accessauditor/internal/findings"
	"github.com/PentesterFlow/accessauditor/internal/metrics"
	"github.com/PentesterFlow/accessauditor/internal/recon"
)

// Document is the JSON form of an audit.
type Document struct {
	Target          string             `json:"target"`
	ScanDate        time.Time          `json:"scan_date"`
	DurationSeconds float64            `json:"duration_seconds"`
	Tool            string             `json:"tool"`
	Summary         Summary            `json:"summary"`
	Endpoints       []string           `json:"endpoints"`
	Parameters      []string           `json:"parameters"`
	Categorized     recon.Categorized  `json:"categorized_params"`
	Forms           []recon.Form       `json:"forms"`
	AdminPanels     []recon.AdminPanel `json:"admin_panels"`
	Findings        []findings.Finding `json:"potential_vulnerabilities"`
	Stats           metrics.Snapshot   `json:"stats"`
}

// Summary holds the headline counts.
type Summary struct {
	Endpoints       int `json:"endpoints_found"`
	Parameters      int `json:"parameters_found"`
	AdminPanels     int `json:"admin_panels_found"`
	Vulnerabilities int `json:"potential_vulnerabilities"`
}

// NewDocument assembles a Document. A nil result yields empty lists.
func NewDocument(target, tool string, at time.Time, duration time.Duration, res *recon.Result, list []findings.Finding) *Document {
	if res == nil {
		res = &recon.Result{Categorized: recon.Categorize(nil)}
	}
	if list == nil {
		list = []findings.Finding{}
	}

	return &Document{
		Target:          target,
		ScanDate:        at,
		DurationSeconds: duration.Seconds(),
		Tool:            tool,
		Summary: Summary{
			Endpoints:       res.TotalEndpoints,
			Parameters:      res.TotalParameters,
			AdminPanels:     len(res.AdminPanels),
			Vulnerabilities: len(list),
		},
		Endpoints:   orEmpty(res.Endpoints),
		Parameters:  orEmpty(res.Parameters),
		Categorized: res.Categorized,
		Forms:       orEmptyForms(res.Forms),
		AdminPanels: orEmptyPanels(res.AdminPanels),
		Findings:    list,
		Stats:       res.Stats,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyForms(f []recon.Form) []recon.Form {
	if f == nil {
		return []recon.Form{}
	}
	return f
}

func orEmptyPanels(p []recon.AdminPanel) []recon.AdminPanel {
	if p == nil {
		return []recon.AdminPanel{}
	}
	return p
}
