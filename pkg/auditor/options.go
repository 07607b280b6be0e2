package auditor

import (
	"fmt"
	"io"
	"time"

	"github.com/PentesterFlow/accessauditor/internal/logger"
	"github.com/PentesterFlow/accessauditor/internal/progress"
	"github.com/PentesterFlow/accessauditor/internal/recon"
)

// Option is a functional option for configuring the Auditor.
type Option func(*Auditor) error

// WithConfig sets the entire configuration.
func WithConfig(config *Config) Option {
	return func(a *Auditor) error {
		if config == nil {
			return fmt.Errorf("config is nil")
		}
		a.config = config.Clone()
		return nil
	}
}

// WithTarget sets the target URL.
func WithTarget(url string) Option {
	return func(a *Auditor) error {
		a.config.Target = url
		return nil
	}
}

// WithMaxPages sets the crawl budget.
func WithMaxPages(n int) Option {
	return func(a *Auditor) error {
		a.config.MaxPages = n
		return nil
	}
}

// WithOutputDir sets the report directory.
func WithOutputDir(dir string) Option {
	return func(a *Auditor) error {
		a.config.OutputDir = dir
		return nil
	}
}

// WithFormat sets the report format.
func WithFormat(format string) Option {
	return func(a *Auditor) error {
		a.config.Format = format
		return nil
	}
}

// WithFetcher replaces the HTTP client.
func WithFetcher(f recon.Fetcher) Option {
	return func(a *Auditor) error {
		a.fetcher = f
		return nil
	}
}

// WithOutput sets where console output goes.
func WithOutput(w io.Writer) Option {
	return func(a *Auditor) error {
		a.out = w
		return nil
	}
}

// WithDisplay sets the console display. It takes precedence over
// WithOutput.
func WithDisplay(d *progress.Display) Option {
	return func(a *Auditor) error {
		a.display = d
		return nil
	}
}

// WithClock sets the time source used for report timestamps and duration.
func WithClock(now func() time.Time) Option {
	return func(a *Auditor) error {
		if now != nil {
			a.now = now
		}
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Auditor) error {
		a.logger = l
		return nil
	}
}
