package command

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/csrftok/internal/cli/output"
	"github.com/yndnr/csrftok/internal/config"
	"github.com/yndnr/csrftok/internal/core/service"
	"github.com/yndnr/csrftok/internal/infra/buildinfo"
	"github.com/yndnr/csrftok/internal/infra/confloader"
	"github.com/yndnr/csrftok/internal/infra/shutdown"
	"github.com/yndnr/csrftok/internal/telemetry/logger"
	"github.com/yndnr/csrftok/internal/telemetry/metric"
)

const envKey = "env"

// shutdownTimeout bounds the cleanup hooks run after a command.
const shutdownTimeout = 5 * time.Second

// ErrTokenRejected is returned by verify for a token that does not check
// out. Commands return plain errors so the After hook always runs; main
// maps any error to exit status 1.
var ErrTokenRejected = errors.New("token rejected")

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "csrftok",
		Usage:   "Create and verify stateless CSRF tokens",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SecretCommand(),
			CreateCommand(),
			VerifyCommand(),
			InspectCommand(),
			AlgorithmsCommand(),
			BenchCommand(),
			ConfigCommand(),
			ReplCommand(),
			VersionCommand(),
		},
		Before: before,
		After:  after,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{"CSRFTOK_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "algorithm",
			Aliases: []string{"a"},
			Usage:   "Digest algorithm (see 'csrftok algorithms')",
		},
		&cli.IntFlag{
			Name:  "salt-length",
			Usage: "Salt length in characters",
		},
		&cli.IntFlag{
			Name:  "secret-length",
			Usage: "Secret length in bytes",
		},
		&cli.DurationFlag{
			Name:  "validity",
			Usage: "Maximum token age, 0 disables expiry",
		},
		&cli.BoolFlag{
			Name:  "user-binding",
			Usage: "Bind tokens to a user identity",
		},
		&cli.StringFlag{
			Name:  "hmac-key",
			Usage: "Key for HMAC digests",
		},
	}
}

// overrides maps the explicitly set global flags onto config keys.
func overrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		m["log.format"] = c.String("log-format")
	}
	if c.IsSet("algorithm") {
		m["tokenizer.algorithm"] = c.String("algorithm")
	}
	if c.IsSet("salt-length") {
		m["tokenizer.salt_length"] = c.Int("salt-length")
	}
	if c.IsSet("secret-length") {
		m["tokenizer.secret_length"] = c.Int("secret-length")
	}
	if c.IsSet("validity") {
		m["tokenizer.validity"] = c.Duration("validity")
	}
	if c.IsSet("user-binding") {
		m["tokenizer.user_binding"] = c.Bool("user-binding")
	}
	if c.IsSet("hmac-key") {
		m["tokenizer.hmac_key"] = c.String("hmac-key")
	}
	return m
}

// env is the state shared by all commands of one invocation.
type env struct {
	cfg       *config.Config
	loader    *confloader.Loader
	log       logger.Logger
	metrics   *metric.Registry
	svc       *service.CSRFService
	formatter output.Formatter
	format    output.Format
	out       io.Writer
	shutdown  *shutdown.Handler
}

func before(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	opts := []confloader.Option{confloader.WithOverrides(overrides(c))}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return err
	}
	if err := config.Verify(cfg); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     c.App.ErrWriter,
		Component:  c.App.Name,
		RedactKeys: cfg.Log.RedactKeys,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)

	reg := metric.NewRegistry()
	svc, err := service.NewCSRFService(cfg.ToTokenizerConfig(),
		service.WithLogger(log),
		service.WithMetrics(reg),
	)
	if err != nil {
		return err
	}

	h := shutdown.NewHandler(shutdownTimeout)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[envKey] = &env{
		cfg:       cfg,
		loader:    loader,
		log:       log,
		metrics:   reg,
		svc:       svc,
		formatter: output.NewFormatter(format, c.Bool("wide")),
		format:    format,
		out:       c.App.Writer,
		shutdown:  h,
	}

	ctx := h.NotifyContext(c.Context)
	ctx = logger.WithLogger(ctx, log)
	c.Context = logger.WithRequestID(ctx, logger.NewRequestID())
	return nil
}

func after(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		// Before failed, nothing to clean up.
		return nil
	}
	return e.shutdown.Shutdown()
}

// getEnv retrieves the invocation state set up by the Before hook.
func getEnv(c *cli.Context) (*env, error) {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e, nil
	}
	return nil, errors.New("command environment not initialized")
}

// print writes data with the selected formatter.
func (e *env) print(data any) error {
	return e.formatter.Format(e.out, data)
}

// printValues writes one value per line in table mode so the output can
// be consumed by shell scripts, and a list otherwise.
func (e *env) printValues(values []string) error {
	if e.format == output.FormatTable {
		for _, v := range values {
			fmt.Fprintln(e.out, v)
		}
		return nil
	}
	return e.print(values)
}

// reload rebuilds the configuration from its sources and swaps the
// tokenizer. A rejected configuration leaves the current one in place.
func (e *env) reload() error {
	cfg := config.Default()
	if err := e.loader.Reload(cfg); err != nil {
		e.metrics.RecordReload("error")
		return err
	}
	if err := config.Verify(cfg); err != nil {
		e.metrics.RecordReload("error")
		return err
	}
	if err := e.svc.Reload(cfg.ToTokenizerConfig()); err != nil {
		return err
	}
	logger.SetLevel(cfg.Log.Level)
	e.cfg = cfg
	return nil
}
