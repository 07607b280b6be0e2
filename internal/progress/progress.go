// Package progress prints the console output of an audit run.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/PentesterFlow/accessauditor/internal/findings"
	"github.com/PentesterFlow/accessauditor/internal/recon"
)

// Config controls console output.
type Config struct {
	NoColor bool
	// Spinner animates the crawl and probe stages. Only enable it when
	// the output is a terminal.
	Spinner bool
}

// Display prints phase lines and summaries for one run.
type Display struct {
	out      io.Writer
	spin     *spinner.Spinner
	spinning bool

	cyan    *color.Color
	yellow  *color.Color
	green   *color.Color
	red     *color.Color
	blue    *color.Color
	magenta *color.Color
}

// New creates a display writing to w.
func New(w io.Writer, cfg Config) *Display {
	d := &Display{
		out:     w,
		cyan:    color.New(color.FgCyan),
		yellow:  color.New(color.FgYellow),
		green:   color.New(color.FgGreen),
		red:     color.New(color.FgRed),
		blue:    color.New(color.FgBlue),
		magenta: color.New(color.FgMagenta),
	}

	if cfg.NoColor {
		for _, c := range []*color.Color{d.cyan, d.yellow, d.green, d.red, d.blue, d.magenta} {
			c.DisableColor()
		}
	}
	if cfg.Spinner {
		d.spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	}

	return d
}

// Banner prints the tool banner.
func (d *Display) Banner() {
	d.cyan.Fprint(d.out, `
    ╔══════════════════════════════════════════════════╗
    ║   Smart Access Control Auditor                   ║
    ║   Simple Reconnaissance & Parameter Discovery    ║
    ╚══════════════════════════════════════════════════╝
    `)
	fmt.Fprintln(d.out)
	d.yellow.Fprintln(d.out, "    Version: 2.0 | TXT Report Output | Educational Use")
	fmt.Fprintln(d.out)
}

// Phase prints a top-level phase line such as "[1/3] Starting reconnaissance...".
func (d *Display) Phase(step, total int, msg string) {
	if step > 1 {
		fmt.Fprintln(d.out)
	}
	d.yellow.Fprintf(d.out, "[%d/%d] %s\n", step, total, msg)
}

// Stage prints the line for a recon stage. It is meant to be passed to
// recon.WithStageHook.
func (d *Display) Stage(s recon.Stage) {
	d.stopSpinner()

	switch s {
	case recon.StageRecon:
		d.cyan.Fprintln(d.out, "[*] Running reconnaissance...")
	case recon.StageCrawl:
		fmt.Fprintf(d.out, "  %s\n", d.yellow.Sprint("[→] Crawling website..."))
		d.startSpinner(" crawling")
	case recon.StageProbe:
		fmt.Fprintf(d.out, "  %s\n", d.yellow.Sprint("[→] Checking common paths..."))
		d.startSpinner(" probing")
	case recon.StageCategorize:
		fmt.Fprintf(d.out, "  %s\n", d.yellow.Sprint("[→] Categorizing findings..."))
	}
}

// Stop halts the spinner if it is running.
func (d *Display) Stop() {
	d.stopSpinner()
}

func (d *Display) startSpinner(suffix string) {
	if d.spin == nil {
		return
	}
	d.spin.Suffix = suffix
	d.spin.Start()
	d.spinning = true
}

func (d *Display) stopSpinner() {
	if d.spin == nil || !d.spinning {
		return
	}
	d.spin.Stop()
	d.spinning = false
}

// ReconSummary prints the counts gathered by reconnaissance.
func (d *Display) ReconSummary(res *recon.Result) {
	check := d.cyan.Sprint("✓")
	fmt.Fprintln(d.out)
	d.green.Fprintln(d.out, "Reconnaissance Summary:")
	fmt.Fprintf(d.out, "  %s Endpoints found: %d\n", check, res.TotalEndpoints)
	fmt.Fprintf(d.out, "  %s Parameters found: %d\n", check, res.TotalParameters)
	fmt.Fprintf(d.out, "  %s Admin panels: %d\n", check, len(res.AdminPanels))
}

// AnalysisSummary prints the number of findings.
func (d *Display) AnalysisSummary(n int) {
	fmt.Fprintf(d.out, "  %s Potential vulnerabilities identified: %d\n", d.green.Sprint("✓"), n)
}

// ReportSaved prints where the report was written.
func (d *Display) ReportSaved(path string) {
	fmt.Fprintf(d.out, "  %s Report saved: %s\n", d.green.Sprint("✓"), path)
}

// Completion holds what the final summary shows.
type Completion struct {
	Target     string
	Duration   time.Duration
	Result     *recon.Result
	Findings   []findings.Finding
	ReportPath string
	OutputDir  string
}

// Complete prints the final summary, next steps and a short preview of
// the most interesting parameters.
func (d *Display) Complete(c Completion) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(d.out)
	d.green.Fprintln(d.out, rule)
	d.green.Fprintln(d.out, "SCAN COMPLETE!")
	d.green.Fprintln(d.out, rule)

	fmt.Fprintln(d.out)
	d.cyan.Fprintln(d.out, "📊 Scan Results:")
	fmt.Fprintf(d.out, "  Target URL: %s\n", c.Target)
	fmt.Fprintf(d.out, "  Scan duration: %.2f seconds\n", c.Duration.Seconds())
	fmt.Fprintf(d.out, "  Endpoints discovered: %d\n", c.Result.TotalEndpoints)
	fmt.Fprintf(d.out, "  Parameters discovered: %d\n", c.Result.TotalParameters)
	fmt.Fprintf(d.out, "  Potential vulnerabilities: %d\n", len(c.Findings))

	fmt.Fprintln(d.out)
	d.cyan.Fprintln(d.out, "📄 Report Generated:")
	fmt.Fprintf(d.out, "  File: %s\n", c.ReportPath)
	fmt.Fprintf(d.out, "  Size: Check %s/ folder\n", c.OutputDir)

	fmt.Fprintln(d.out)
	d.yellow.Fprintln(d.out, "🔍 Key Findings:")
	for _, f := range c.Findings {
		sev := d.yellow
		if f.Severity.IsSevere() {
			sev = d.red
		}
		fmt.Fprintf(d.out, "  %s\n", sev.Sprintf("[%s] %s", f.Severity, f.Type))
		fmt.Fprintf(d.out, "     %s\n", f.Description)
	}

	fmt.Fprintln(d.out)
	d.blue.Fprintln(d.out, "🚀 What to do next:")
	fmt.Fprintf(d.out, "  1. Open %s to see complete results\n", c.ReportPath)
	fmt.Fprintln(d.out, "  2. Review all discovered parameters")
	fmt.Fprintln(d.out, "  3. Use the provided payloads for manual testing")
	fmt.Fprintln(d.out, "  4. Check admin panels for proper access controls")

	fmt.Fprintln(d.out)
	d.green.Fprintln(d.out, "✅ Done! Report generated successfully.")

	fmt.Fprintln(d.out)
	d.magenta.Fprintln(d.out, "📋 Quick Preview:")
	preview := []struct {
		label  string
		params []string
	}{
		{"IDOR Parameters", findings.IDORParameters(c.Result)},
		{"Business Logic", c.Result.Categorized[recon.BusinessLogic]},
		{"Access Control", c.Result.Categorized[recon.AccessControl]},
	}
	for _, p := range preview {
		if len(p.params) == 0 {
			continue
		}
		shown := p.params
		if len(shown) > 3 {
			shown = shown[:3]
		}
		fmt.Fprintf(d.out, "  %s: %s...\n", p.label, strings.Join(shown, ", "))
	}
}

// Interrupted prints the message shown when the user aborts a run.
func (d *Display) Interrupted() {
	d.stopSpinner()
	fmt.Fprintln(d.out)
	d.yellow.Fprintln(d.out, "[!] Scan interrupted by user")
}

// Error prints a fatal error.
func (d *Display) Error(err error) {
	d.stopSpinner()
	d.red.Fprintf(d.out, "[!] Error: %v\n", err)
}
