// Package findings derives potential vulnerabilities from a recon result.
package findings

import (
	"fmt"

	"github.com/PentesterFlow/accessauditor/internal/recon"
)

// Severity ranks a finding.
type Severity string

// Severities.
const (
	Critical Severity = "Critical"
	High     Severity = "High"
	Medium   Severity = "Medium"
)

// IsSevere reports whether s is Critical or High.
func (s Severity) IsSevere() bool {
	return s == Critical || s == High
}

// Finding types.
const (
	TypeIDOR          = "Potential IDOR"
	TypeBusinessLogic = "Business Logic Parameters"
	TypeAdminPanels   = "Admin Panels Discovered"
	TypeAccessControl = "Access Control Parameters"
	TypeSensitive     = "Sensitive Parameters"
)

// maxParameters caps the parameters listed on a finding.
const maxParameters = 10

// Finding is a heuristic flag raised from recon output.
type Finding struct {
	Type        string             `json:"type"`
	Severity    Severity           `json:"severity"`
	Description string             `json:"description"`
	Parameters  []string           `json:"parameters,omitempty"`
	Panels      []recon.AdminPanel `json:"panels,omitempty"`
}

// IDORParameters returns the user related then resource related
// parameters of a result.
func IDORParameters(res *recon.Result) []string {
	params := make([]string, 0)
	params = append(params, res.Categorized[recon.UserRelated]...)
	params = append(params, res.Categorized[recon.ResourceRelated]...)
	return params
}

// Analyze flags IDOR candidates, business logic parameters, admin panels
// and access control parameters, in that order.
func Analyze(res *recon.Result) []Finding {
	out := make([]Finding, 0)
	if res == nil {
		return out
	}

	if idor := IDORParameters(res); len(idor) > 0 {
		out = append(out, Finding{
			Type:        TypeIDOR,
			Severity:    High,
			Description: fmt.Sprintf("Found %d ID-like parameters that could lead to Insecure Direct Object References", len(idor)),
			Parameters:  head(idor, maxParameters),
		})
	}

	if biz := res.Categorized[recon.BusinessLogic]; len(biz) > 0 {
		out = append(out, Finding{
			Type:        TypeBusinessLogic,
			Severity:    Medium,
			Description: fmt.Sprintf("Found %d business logic parameters that could be manipulated", len(biz)),
			Parameters:  head(biz, maxParameters),
		})
	}

	if len(res.AdminPanels) > 0 {
		severity := Medium
		for _, p := range res.AdminPanels {
			if p.Status == 200 {
				severity = Critical
				break
			}
		}
		out = append(out, Finding{
			Type:        TypeAdminPanels,
			Severity:    severity,
			Description: fmt.Sprintf("Found %d admin panels", len(res.AdminPanels)),
			Panels:      append([]recon.AdminPanel(nil), res.AdminPanels...),
		})
	}

	if access := res.Categorized[recon.AccessControl]; len(access) > 0 {
		out = append(out, Finding{
			Type:        TypeAccessControl,
			Severity:    High,
			Description: fmt.Sprintf("Found %d access control parameters that could be modified", len(access)),
			Parameters:  head(access, maxParameters),
		})
	}

	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string(nil), s...)
}
