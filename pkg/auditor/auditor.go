// Package auditor runs an access control audit: reconnaissance, analysis
// and report generation.
package auditor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	httpc "github.com/PentesterFlow/accessauditor/internal/http"
	"github.com/PentesterFlow/accessauditor/internal/findings"
	"github.com/PentesterFlow/accessauditor/internal/logger"
	"github.com/PentesterFlow/accessauditor/internal/metrics"
	"github.com/PentesterFlow/accessauditor/internal/output"
	"github.com/PentesterFlow/accessauditor/internal/progress"
	"github.com/PentesterFlow/accessauditor/internal/recon"
	"github.com/PentesterFlow/accessauditor/internal/report"
)

// Auditor audits a single target.
type Auditor struct {
	config  *Config
	fetcher recon.Fetcher
	out     io.Writer
	display *progress.Display
	logger  *logger.Logger
	now     func() time.Time
}

// Summary is the outcome of a completed run.
type Summary struct {
	Target     string
	Result     *recon.Result
	Findings   []findings.Finding
	Duration   time.Duration
	ReportPath string
}

// New creates a new auditor with the given options.
func New(opts ...Option) (*Auditor, error) {
	a := &Auditor{
		config: DefaultConfig(),
		now:    time.Now,
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := a.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if a.logger == nil {
		a.logger = logger.New(logger.Config{
			Level:     logger.LevelFor(a.config.Verbose, a.config.Debug),
			Pretty:    true,
			Component: "auditor",
		})
	}

	if a.fetcher == nil {
		a.fetcher = httpc.NewClient(httpc.Config{
			UserAgent:          a.config.UserAgent,
			InsecureSkipVerify: a.config.InsecureSkipVerify,
		})
	}

	if a.out == nil {
		a.out = os.Stdout
	}
	if a.display == nil {
		a.display = progress.New(a.out, progress.Config{NoColor: a.config.NoColor})
	}

	return a, nil
}

// Config returns a copy of the auditor's configuration.
func (a *Auditor) Config() *Config {
	return a.config.Clone()
}

// Run performs reconnaissance, analysis and report generation. If ctx is
// cancelled during reconnaissance no report is written and the context's
// error is returned.
func (a *Auditor) Run(ctx context.Context) (*Summary, error) {
	cfg := a.config
	log := a.logger.WithTarget(cfg.Target)
	start := a.now()

	// Phase 1: reconnaissance
	a.display.Phase(1, 3, "Starting reconnaissance...")
	engine := recon.New(a.fetcher,
		recon.WithMaxPages(cfg.MaxPages),
		recon.WithLogger(a.logger),
		recon.WithStageHook(a.display.Stage),
		recon.WithMetrics(metrics.New()),
	)

	res, err := engine.Run(ctx, cfg.Target)
	a.display.Stop()
	if err != nil {
		return nil, err
	}
	a.display.ReconSummary(res)
	log.Infof("Recon finished: %d endpoints, %d parameters, %d skipped",
		res.TotalEndpoints, res.TotalParameters, res.Stats.SkipsTotal)

	// Phase 2: analysis
	a.display.Phase(2, 3, "Analyzing for vulnerabilities...")
	list := findings.Analyze(res)
	a.display.AnalysisSummary(len(list))

	// Phase 3: report
	a.display.Phase(3, 3, fmt.Sprintf("Generating %s report...", strings.ToUpper(cfg.Format)))
	generatedAt := a.now()
	duration := generatedAt.Sub(start)

	content, err := a.render(generatedAt, duration, res, list)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	writer := report.FileWriter{Dir: cfg.OutputDir, Now: a.now}
	path, err := writer.Write(cfg.Format, content)
	if err != nil {
		return nil, err
	}
	a.display.ReportSaved(path)
	log.Infof("Report written to %s", path)

	summary := &Summary{
		Target:     cfg.Target,
		Result:     res,
		Findings:   list,
		Duration:   duration,
		ReportPath: path,
	}

	a.display.Complete(progress.Completion{
		Target:     summary.Target,
		Duration:   summary.Duration,
		Result:     res,
		Findings:   list,
		ReportPath: path,
		OutputDir:  cfg.OutputDir,
	})

	return summary, nil
}

func (a *Auditor) render(at time.Time, duration time.Duration, res *recon.Result, list []findings.Finding) (string, error) {
	if a.config.Format == FormatJSON {
		doc := output.NewDocument(a.config.Target, report.DefaultTool, at, duration, res, list)
		return output.Render(doc)
	}

	return report.Build(report.Input{
		Target:      a.config.Target,
		Tool:        report.DefaultTool,
		GeneratedAt: at,
		Duration:    duration,
		Result:      res,
		Findings:    list,
	}), nil
}
