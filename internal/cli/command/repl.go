package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/csrftok/internal/cli/repl"
	"github.com/yndnr/csrftok/internal/infra/confloader"
)

// ReplCommand returns the interactive shell command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start an interactive session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history",
				Usage: "History file (default ~/.csrftok/history)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Keep history in memory only",
			},
			&cli.StringFlag{
				Name:  "prompt",
				Value: repl.DefaultPrompt,
				Usage: "Prompt shown before each line",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address while the session runs",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Value: true,
				Usage: "Reload the tokenizer when the config file changes",
			},
		},
		Action: runRepl,
	}
}

func runRepl(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	opts := []repl.Option{
		repl.WithIO(c.App.Reader, e.out),
		repl.WithFormatter(e.formatter),
		repl.WithMetrics(e.metrics),
		repl.WithPrompt(c.String("prompt")),
	}
	switch {
	case c.Bool("no-history"):
		opts = append(opts, repl.WithHistory(repl.NewHistoryFile("")))
	case c.String("history") != "":
		opts = append(opts, repl.WithHistory(repl.NewHistoryFile(c.String("history"))))
	}

	if addr := c.String("metrics-addr"); addr != "" {
		if _, err := serveMetrics(addr, e.metrics, e.shutdown, e.log); err != nil {
			return err
		}
	}

	if path := e.loader.FilePath(); path != "" && c.Bool("watch") {
		w, err := confloader.NewWatcher(confloader.WithWatcherLogger(e.log))
		if err != nil {
			return err
		}
		e.shutdown.OnShutdown(func(context.Context) error {
			return w.Stop()
		})

		if err := w.Watch(path); err != nil {
			return err
		}
		w.OnChange(func(changed string) {
			if err := e.reload(); err != nil {
				e.log.Warn("config reload failed", "path", changed, "error", err)
				return
			}
			e.log.Info("config reloaded", "path", changed)
		})
		w.StartAsync()
	}

	return repl.New(e.svc, opts...).Run(c.Context)
}
