// Package report renders audit results as a plain text report.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/PentesterFlow/accessauditor/internal/findings"
	"github.com/PentesterFlow/accessauditor/internal/recon"
)

// DefaultTool is the tool name printed in the report header.
const DefaultTool = "Smart Access Control Auditor v2.0"

const (
	ruleWidth    = 80
	maxEndpoints = 50
	maxForms     = 10
	maxAffected  = 5
)

// Input is everything a report is built from.
type Input struct {
	Target      string
	Tool        string
	GeneratedAt time.Time
	Duration    time.Duration
	Result      *recon.Result
	Findings    []findings.Finding
}

// Build renders the text report. It performs no I/O.
func Build(in Input) string {
	if in.Tool == "" {
		in.Tool = DefaultTool
	}
	res := in.Result
	if res == nil {
		res = &recon.Result{Categorized: recon.Categorize(nil)}
	}

	var sb strings.Builder

	writeHeader(&sb, in)
	writeSummary(&sb, res, len(in.Findings))
	writeEndpoints(&sb, res)
	writeParameters(&sb, res)
	writeAdminPanels(&sb, res)
	writeForms(&sb, res)
	writeFindings(&sb, in.Findings)

	section(&sb, "                    TEST PAYLOADS")
	sb.WriteString(cheatSheet)

	section(&sb, "                        NOTES")
	sb.WriteString(notes)

	rule := strings.Repeat("=", ruleWidth)
	sb.WriteString("\n" + rule + "\n                        END OF REPORT\n" + rule + "\n")

	return sb.String()
}

// section writes a banner: a blank line, the title between two rules and
// another blank line.
func section(sb *strings.Builder, title string) {
	rule := strings.Repeat("=", ruleWidth)
	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString("\n\n")
}

func writeHeader(sb *strings.Builder, in Input) {
	section(sb, "                    ACCESS CONTROL AUDIT REPORT")
	fmt.Fprintf(sb, "Target: %s\n", in.Target)
	fmt.Fprintf(sb, "Scan Date: %s\n", in.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(sb, "Scan Duration: %.2f seconds\n", in.Duration.Seconds())
	fmt.Fprintf(sb, "Tool: %s\n", in.Tool)
}

func writeSummary(sb *strings.Builder, res *recon.Result, nFindings int) {
	section(sb, "                        SUMMARY")
	fmt.Fprintf(sb, "Endpoints Found: %d\n", res.TotalEndpoints)
	fmt.Fprintf(sb, "Parameters Found: %d\n", res.TotalParameters)
	fmt.Fprintf(sb, "Admin Panels Found: %d\n", len(res.AdminPanels))
	fmt.Fprintf(sb, "Potential Vulnerabilities: %d\n", nFindings)
}

func writeEndpoints(sb *strings.Builder, res *recon.Result) {
	section(sb, "                    DISCOVERED ENDPOINTS")

	if len(res.Endpoints) == 0 {
		sb.WriteString("No endpoints discovered\n")
		return
	}

	for i, ep := range res.Endpoints {
		if i == maxEndpoints {
			break
		}
		fmt.Fprintf(sb, "- %s\n", ep)
	}
	if extra := len(res.Endpoints) - maxEndpoints; extra > 0 {
		fmt.Fprintf(sb, "... and %d more endpoints\n", extra)
	}
}

func writeParameters(sb *strings.Builder, res *recon.Result) {
	section(sb, "                    DISCOVERED PARAMETERS")
	fmt.Fprintf(sb, "Total Parameters: %d\n\n", res.TotalParameters)

	for _, h := range categoryHeadings {
		params := res.Categorized[h.category]
		if len(params) == 0 {
			continue
		}
		sb.WriteString(h.heading + "\n")
		for _, p := range params {
			fmt.Fprintf(sb, "  - %s\n", p)
			fmt.Fprintf(sb, "    %s\n", payloadLine(h.category, p))
		}
		sb.WriteString("\n")
	}
}

func writeAdminPanels(sb *strings.Builder, res *recon.Result) {
	if len(res.AdminPanels) == 0 {
		return
	}

	section(sb, "                    ADMIN PANELS FOUND")
	for _, p := range res.AdminPanels {
		fmt.Fprintf(sb, "URL: %s\n", p.URL)
		fmt.Fprintf(sb, "Status: %d\n", p.Status)
		fmt.Fprintf(sb, "Title: %s\n", p.Title)
		sb.WriteString("Test: Check if proper authentication is required\n\n")
	}
}

func writeForms(sb *strings.Builder, res *recon.Result) {
	if len(res.Forms) == 0 {
		return
	}

	section(sb, "                    FORMS DISCOVERED")
	for i, f := range res.Forms {
		if i == maxForms {
			break
		}
		fmt.Fprintf(sb, "Form #%d:\n", i+1)
		fmt.Fprintf(sb, "  Action: %s\n", f.Action)
		fmt.Fprintf(sb, "  Method: %s\n", f.Method)
		if len(f.Fields) > 0 {
			sb.WriteString("  Parameters:\n")
			for _, field := range f.Fields {
				fmt.Fprintf(sb, "    - %s (type: %s)\n", field.Name, field.Type)
			}
		}
		sb.WriteString("\n")
	}
}

func writeFindings(sb *strings.Builder, list []findings.Finding) {
	if len(list) == 0 {
		return
	}

	section(sb, "                    POTENTIAL VULNERABILITIES")
	for _, f := range list {
		severity := f.Severity
		if severity == "" {
			severity = findings.Medium
		}
		fmt.Fprintf(sb, "[%s] %s\n", severity, f.Type)
		fmt.Fprintf(sb, "Description: %s\n", f.Description)

		if len(f.Parameters) > 0 {
			affected := f.Parameters
			if len(affected) > maxAffected {
				affected = affected[:maxAffected]
			}
			fmt.Fprintf(sb, "Affected Parameters: %s\n", strings.Join(affected, ", "))
		}

		if len(f.Panels) > 0 {
			sb.WriteString("Affected URLs:\n")
			for _, p := range f.Panels {
				fmt.Fprintf(sb, "  - %s (Status: %d)\n", p.URL, p.Status)
			}
		}

		sb.WriteString("Recommended Tests:\n")
		sb.WriteString(recommendedTests(f.Type))
		sb.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
	}
}
