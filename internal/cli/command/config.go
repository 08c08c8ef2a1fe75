package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/csrftok/internal/cli/output"
	"github.com/yndnr/csrftok/internal/config"
	"github.com/yndnr/csrftok/internal/infra/confloader"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"cfg"},
		Usage:   "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "tokenizer",
						Usage: "Show only the tokenizer summary",
					},
				},
				Action: configShow,
			},
			{
				Name:      "validate",
				Aliases:   []string{"test"},
				Usage:     "Validate a configuration file",
				ArgsUsage: "[FILE]",
				Action:    configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	if c.Bool("tokenizer") {
		return e.print(output.NewTokenizerInfo(e.svc.Config()))
	}

	// Nested sections do not fit a table.
	f := e.formatter
	if e.format == output.FormatTable {
		f = &output.YAMLFormatter{}
	}
	return f.Format(e.out, config.Sanitize(e.cfg))
}

func configValidate(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		path = e.loader.FilePath()
	}
	if path == "" {
		return fmt.Errorf("configuration file path required")
	}

	cfg := config.Default()
	if err := confloader.NewLoader(confloader.WithConfigFile(path)).Load(cfg); err != nil {
		return err
	}
	if err := config.Verify(cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(e.out, "Configuration is valid: %s\n", path)
	return nil
}
