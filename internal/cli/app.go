package cli

import (
	"io"

	"github.com/arthur-debert/stamp/pkg/catalog"
	"github.com/arthur-debert/stamp/pkg/config"
	"github.com/arthur-debert/stamp/pkg/filesystem"
	"github.com/arthur-debert/stamp/pkg/logging"
	"github.com/arthur-debert/stamp/pkg/materialize"
	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/arthur-debert/stamp/pkg/ui"
	"github.com/arthur-debert/stamp/pkg/ui/display"
)

// App carries everything a command needs. It is built once in main and
// handed to every command factory.
type App struct {
	Out io.Writer
	Err io.Writer
	FS  types.FS

	// ConfigPaths locates the config files
	ConfigPaths config.Paths

	// Global flags
	Verbosity    int
	DryRun       bool
	Format       string
	TemplatesDir string

	cfg *config.Config
}

// JobSpec is one template tree to materialize
type JobSpec struct {
	Template      string
	Target        string
	Context       map[string]any
	Substitutions map[string]string
	ExistsPolicy  string
}

// NewApp creates an App writing to out and errOut
func NewApp(out, errOut io.Writer) *App {
	return &App{
		Out:    out,
		Err:    errOut,
		FS:     filesystem.NewOS(),
		Format: ui.FormatAuto.String(),
	}
}

// Config loads the configuration on first use
func (a *App) Config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.ConfigPaths)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// Setup configures logging once flags are parsed
func (a *App) Setup() error {
	cfg, err := a.Config()
	if err != nil {
		logging.SetupLogger(a.Verbosity)
		return err
	}
	logging.Setup(logging.Options{Verbosity: a.Verbosity, LogFile: cfg.Log.File, Console: a.Err})
	return nil
}

// Renderer returns the renderer selected by --format
func (a *App) Renderer() (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, a.Out)
}

// CatalogDir is --templates when given, templates_dir otherwise
func (a *App) CatalogDir() (string, error) {
	if a.TemplatesDir != "" {
		return a.TemplatesDir, nil
	}
	cfg, err := a.Config()
	if err != nil {
		return "", err
	}
	return cfg.TemplatesDir, nil
}

// Catalog opens the templates directory
func (a *App) Catalog() (*catalog.Catalog, error) {
	dir, err := a.CatalogDir()
	if err != nil {
		return nil, err
	}
	return catalog.Open(a.FS, dir)
}

// JobOptions turns a JobSpec into engine options, filling the gaps from
// the configuration
func (a *App) JobOptions(spec JobSpec) (materialize.Options, error) {
	cfg, err := a.Config()
	if err != nil {
		return materialize.Options{}, err
	}
	policy := spec.ExistsPolicy
	if policy == "" {
		policy = cfg.ExistsPolicy
	}
	return materialize.Options{
		TemplateRoot:  spec.Template,
		TargetRoot:    spec.Target,
		Context:       spec.Context,
		Substitutions: spec.Substitutions,
		ExistsPolicy:  policy,
		FS:            a.FS,
		Engine:        cfg.Engine,
		Ignore:        cfg.Ignore,
		DryRun:        a.DryRun,
		FileMode:      cfg.Permissions.FileMode(),
		DirMode:       cfg.Permissions.DirMode(),
	}, nil
}

// Materialize runs the jobs in order and renders a report. Every job is
// validated before the first one runs; the first failing job stops the
// sequence and the partial report is still rendered.
func (a *App) Materialize(command string, specs []JobSpec) error {
	renderer, err := a.Renderer()
	if err != nil {
		return err
	}

	jobs := make([]*materialize.Job, 0, len(specs))
	for _, spec := range specs {
		opts, err := a.JobOptions(spec)
		if err != nil {
			return err
		}
		job, err := materialize.NewJob(opts)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	report := &display.Report{Command: command, DryRun: a.DryRun}
	var runErr error
	for i, job := range jobs {
		jobLogger := logging.WithFields(map[string]interface{}{
			"template": specs[i].Template,
			"target":   specs[i].Target,
			"job":      i + 1,
			"of":       len(jobs),
		})
		jobLogger.Debug().Msg("running job")
		result, err := job.Run()
		report.Jobs = append(report.Jobs, display.NewJobReport(specs[i].Template, specs[i].Target, result))
		if err != nil {
			runErr = err
			break
		}
	}

	if err := renderer.RenderResult(report); err != nil {
		return err
	}
	return runErr
}

// ReportError prints err in the selected format on the error stream
func (a *App) ReportError(err error) {
	format, perr := ui.ParseFormat(a.Format)
	if perr != nil {
		format = ui.FormatText
	}
	renderer, rerr := ui.NewRenderer(format, a.Err)
	if rerr != nil {
		return
	}
	_ = renderer.RenderError(err)
}
