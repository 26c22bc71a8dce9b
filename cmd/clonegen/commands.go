package main

import (
	"context"
	"fmt"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	goerrors "github.com/agilira/go-errors"
	"github.com/agilira/orpheus/pkg/orpheus"

	"clonegen/internal/analyze"
	"clonegen/internal/config"
	"clonegen/internal/diagnostic"
	"clonegen/internal/gen"
	"clonegen/internal/plan"
)

// Error codes carried by the errors the commands return.
const (
	codeConfigInvalid    = "CONFIG_INVALID"
	codeLoadFailed       = "LOAD_FAILED"
	codeValidationFailed = "VALIDATION_FAILED"
	codeGenerationFailed = "GENERATION_FAILED"
)

// Output formats of the explain command.
const (
	formatTable = "table"
	formatYAML  = "yaml"
)

// cli holds the output streams shared by every command.
type cli struct {
	stdout io.Writer
	stderr io.Writer
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

// options are the flag values of one invocation.
type options struct {
	configPath string
	packages   []string
	dryRun     bool
	verbose    bool
	format     string
	debug      bool
	force      bool
	// dir is the directory package patterns are resolved against.
	dir string
}

func newApp(c *cli) *orpheus.App {
	app := orpheus.New("clonegen").
		SetDescription("Generate Clone and FixOwnedFields methods for Go struct types").
		SetVersion(version)

	genCmd := orpheus.NewCommand("gen", "Generate clone methods").
		SetHandler(func(ctx *orpheus.Context) error {
			opts := flagOptions(ctx)
			opts.dryRun = ctx.GetFlagBool("dry-run")
			opts.debug = ctx.GetFlagBool("debug")

			return c.runGen(context.Background(), opts)
		}).
		AddFlag("config", "c", "", "Path to the config file (default clonegen.yaml)").
		AddFlag("pkg", "p", "", "Comma-separated package patterns, overriding the config").
		AddBoolFlag("dry-run", "n", false, "Print the generated files instead of writing them").
		AddBoolFlag("debug", "d", false, "Keep the unformatted output next to files that fail to format").
		AddBoolFlag("verbose", "v", false, "Log every pipeline stage")

	checkCmd := orpheus.NewCommand("check", "Validate types without generating").
		SetHandler(func(ctx *orpheus.Context) error {
			return c.runCheck(flagOptions(ctx))
		}).
		AddFlag("config", "c", "", "Path to the config file (default clonegen.yaml)").
		AddFlag("pkg", "p", "", "Comma-separated package patterns, overriding the config").
		AddBoolFlag("verbose", "v", false, "Log every pipeline stage")

	explainCmd := orpheus.NewCommand("explain", "Show how every field is going to be copied").
		SetHandler(func(ctx *orpheus.Context) error {
			opts := flagOptions(ctx)
			opts.format = ctx.GetFlagString("format")

			return c.runExplain(opts)
		}).
		AddFlag("config", "c", "", "Path to the config file (default clonegen.yaml)").
		AddFlag("pkg", "p", "", "Comma-separated package patterns, overriding the config").
		AddFlag("format", "f", formatTable, "Output format: table or yaml").
		AddBoolFlag("verbose", "v", false, "Log every pipeline stage")

	initCmd := orpheus.NewCommand("init", "Write a default config file").
		SetHandler(func(ctx *orpheus.Context) error {
			return c.runInit(options{
				configPath: ctx.GetFlagString("config"),
				force:      ctx.GetFlagBool("force"),
			})
		}).
		AddFlag("config", "c", "", "Path of the config file to write (default clonegen.yaml)").
		AddBoolFlag("force", "f", false, "Overwrite an existing file")

	app.AddCommand(genCmd)
	app.AddCommand(checkCmd)
	app.AddCommand(explainCmd)
	app.AddCommand(initCmd)

	return app
}

// flagOptions reads the flags every command declares.
func flagOptions(ctx *orpheus.Context) options {
	opts := options{
		configPath: ctx.GetFlagString("config"),
		verbose:    ctx.GetFlagBool("verbose"),
	}

	for _, p := range strings.Split(ctx.GetFlagString("pkg"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			opts.packages = append(opts.packages, p)
		}
	}

	return opts
}

func (c *cli) logger(opts options) *slog.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
}

// wrap attaches code to err. The cause is repeated in the message because the
// error text carries only the code and the message.
func wrap(err error, code goerrors.ErrorCode, msg string) error {
	return goerrors.Wrap(err, code, msg+": "+err.Error())
}

// resolve runs the pipeline up to the clone plan. Every diagnostic is printed
// to stderr as it is produced.
func (c *cli) resolve(opts options, logger *slog.Logger) (*config.Config, *plan.ClonePlan, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, nil, wrap(err, codeConfigInvalid, "loading configuration")
	}

	patterns := opts.packages
	if len(patterns) == 0 {
		patterns = cfg.Packages
	}

	if len(patterns) == 0 {
		return nil, nil, goerrors.New(codeConfigInvalid, "no packages to process: set packages in the config or pass --pkg")
	}

	logger.Debug("loading packages", "patterns", patterns, "output", cfg.Output)

	loader := analyze.NewLoader(cfg.AnalyzeOptions())
	loader.Dir = opts.dir
	loader.Generated = cfg.Output

	graph, err := loader.LoadPackages(patterns...)
	if err != nil {
		return nil, nil, wrap(err, codeLoadFailed, "loading packages")
	}

	logger.Debug("packages loaded", "packages", len(graph.Packages), "types", len(graph.Types))

	report := diagnostic.Multi(
		diagnostic.ReporterFunc(func(d diagnostic.Diagnostic) {
			fmt.Fprintln(c.stderr, d.Line())
		}),
		diagnostic.ReporterFunc(func(d diagnostic.Diagnostic) {
			logger.Debug("diagnostic", "severity", d.Severity, "code", d.Code, "type", d.TypeName)
		}),
	)

	p, err := plan.NewResolver(graph, cfg.PlanConfig(), report).Resolve()
	if err != nil {
		return nil, nil, wrap(err, codeValidationFailed, "resolving clone plan")
	}

	logger.Debug("plan resolved", "summary", p.Explain())

	return cfg, p, nil
}

// failed reports the types that got no methods as a single error.
func failed(p *plan.ClonePlan) error {
	if len(p.Skipped) == 0 {
		return nil
	}

	names := make([]string, 0, len(p.Skipped))
	for _, st := range p.Skipped {
		names = append(names, st.ID.String())
	}

	return goerrors.New(codeValidationFailed,
		fmt.Sprintf("%d type(s) failed validation: %s", len(names), strings.Join(names, ", ")))
}

func (c *cli) runGen(ctx context.Context, opts options) error {
	logger := c.logger(opts)

	cfg, p, err := c.resolve(opts, logger)
	if err != nil {
		return err
	}

	if opts.debug {
		cfg.DebugUnformatted = true
	}

	g := gen.NewGenerator(cfg.GeneratorConfig())

	files, err := g.Generate(p)
	if err != nil {
		return wrap(err, codeGenerationFailed, "generating code")
	}

	if opts.dryRun {
		for _, f := range files {
			fmt.Fprintf(c.stdout, "==> %s <==\n%s\n", f.Path(), f.Content)
		}

		return failed(p)
	}

	if err := gen.WriteFiles(ctx, files); err != nil {
		return wrap(err, codeGenerationFailed, "writing files")
	}

	for _, f := range files {
		logger.Info("wrote file", "path", f.Path())
	}

	obsolete := g.Obsolete(p)
	if err := gen.RemoveFiles(obsolete); err != nil {
		return wrap(err, codeGenerationFailed, "removing obsolete files")
	}

	for _, path := range obsolete {
		logger.Info("removed obsolete file", "path", path)
	}

	fmt.Fprintln(c.stdout, p.Explain())

	return failed(p)
}

func (c *cli) runCheck(opts options) error {
	_, p, err := c.resolve(opts, c.logger(opts))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.stdout, p.Explain())

	return failed(p)
}

func (c *cli) runExplain(opts options) error {
	switch opts.format {
	case "", formatTable, formatYAML:
	default:
		return goerrors.New(codeConfigInvalid,
			fmt.Sprintf("unknown format %q: want %s or %s", opts.format, formatTable, formatYAML))
	}

	_, p, err := c.resolve(opts, c.logger(opts))
	if err != nil {
		return err
	}

	if opts.format == formatYAML {
		data, err := plan.ReportYAML(p)
		if err != nil {
			return wrap(err, codeGenerationFailed, "rendering report")
		}

		_, err = c.stdout.Write(data)

		return err
	}

	fmt.Fprint(c.stdout, plan.FormatReport(plan.GenerateReport(p)))

	return nil
}

// runInit writes the default configuration, set up to process every package
// of the module.
func (c *cli) runInit(opts options) error {
	path := opts.configPath
	if path == "" {
		path = config.DefaultFile
	}

	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			return goerrors.New(codeConfigInvalid, path+" already exists; pass --force to overwrite it")
		} else if !errors.Is(err, fs.ErrNotExist) {
			return wrap(err, codeConfigInvalid, "checking "+path)
		}
	}

	cfg := config.Default()
	cfg.Packages = []string{"./..."}

	if err := config.WriteFile(cfg, path); err != nil {
		return wrap(err, codeConfigInvalid, "writing configuration")
	}

	fmt.Fprintf(c.stdout, "wrote %s\n", path)

	return nil
}
