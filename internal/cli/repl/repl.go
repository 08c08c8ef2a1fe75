package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/yndnr/csrftok/internal/cli/output"
	"github.com/yndnr/csrftok/internal/core/service"
	"github.com/yndnr/csrftok/internal/telemetry/metric"
)

// DefaultPrompt is printed before every line.
const DefaultPrompt = "csrftok> "

// errExit ends Run without error.
var errExit = errors.New("exit")

type command struct {
	usage string
	help  string
	run   func(r *REPL, ctx context.Context, args []string) error
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	completer *Completer
	history   *History
	formatter output.Formatter
	svc       *service.CSRFService
	metrics   *metric.Registry
	commands  map[string]command
	now       func() time.Time

	secret string
	token  string
	user   string
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithHistory sets the command history.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithFormatter sets the formatter for structured results.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) {
		r.formatter = f
	}
}

// WithMetrics enables the metrics command.
func WithMetrics(reg *metric.Registry) Option {
	return func(r *REPL) {
		r.metrics = reg
	}
}

// WithPrompt sets the prompt.
func WithPrompt(p string) Option {
	return func(r *REPL) {
		r.prompt = p
	}
}

// New creates a REPL working on svc.
func New(svc *service.CSRFService, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    DefaultPrompt,
		history:   NewHistory(),
		formatter: &output.TableFormatter{},
		svc:       svc,
		commands:  builtins(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	r.completer = NewCompleter(names...)
	r.completer.Add("secret set", "secret show")
	for _, key := range settingKeys {
		r.completer.Add("set " + key)
	}
	for _, alg := range output.Algorithms(svc.Config()) {
		r.completer.Add("set algorithm " + alg.Name)
	}
	return r
}

// Completer returns the command completer.
func (r *REPL) Completer() *Completer {
	return r.completer
}

// Run reads and executes lines until exit, EOF or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: cannot load history: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "warning: cannot save history: %v\n", err)
		}
	}()

	lines, stop := r.readLines()
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.output, r.prompt)

		var in lineResult
		var open bool
		select {
		case in, open = <-lines:
		case <-ctx.Done():
			fmt.Fprintln(r.output)
			return nil
		}

		if !open || (in.err == io.EOF && in.line == "") {
			fmt.Fprintln(r.output)
			return nil
		}
		if in.err != nil && in.err != io.EOF {
			return in.err
		}

		line := strings.TrimSpace(in.line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if err := r.Execute(ctx, line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLines reads input on its own goroutine so Run can give up waiting
// when its context is cancelled. The channel is closed after the first
// read error. Calling stop discards a pending line and ends the goroutine.
func (r *REPL) readLines() (<-chan lineResult, func()) {
	lines := make(chan lineResult)
	done := make(chan struct{})

	go func() {
		defer close(lines)
		reader := bufio.NewReader(r.input)
		for {
			line, err := reader.ReadString('\n')
			select {
			case lines <- lineResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	return lines, func() { close(done) }
}

// Execute runs a single command line.
func (r *REPL) Execute(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, ok := r.commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", args[0])
	}
	return cmd.run(r, ctx, args[1:])
}

func builtins() map[string]command {
	return map[string]command{
		"secret": {
			usage: "secret [set <value> | show]",
			help:  "Generate a new session secret, or set or show the current one",
			run:   (*REPL).cmdSecret,
		},
		"create": {
			usage: "create [user]",
			help:  "Create a token from the current secret",
			run:   (*REPL).cmdCreate,
		},
		"verify": {
			usage: "verify [token [user]]",
			help:  "Verify a token, the last created one by default",
			run:   (*REPL).cmdVerify,
		},
		"inspect": {
			usage: "inspect [token]",
			help:  "Decode a token without verifying it",
			run:   (*REPL).cmdInspect,
		},
		"algorithms": {
			usage: "algorithms",
			help:  "List supported digest algorithms",
			run:   (*REPL).cmdAlgorithms,
		},
		"config": {
			usage: "config",
			help:  "Show the active tokenizer settings",
			run:   (*REPL).cmdConfig,
		},
		"set": {
			usage: "set <key> <value>",
			help:  "Change a tokenizer setting: " + strings.Join(settingKeys, ", "),
			run:   (*REPL).cmdSet,
		},
		"metrics": {
			usage: "metrics",
			help:  "Print session metrics in Prometheus text format",
			run:   (*REPL).cmdMetrics,
		},
		"history": {
			usage: "history",
			help:  "Show command history",
			run:   (*REPL).cmdHistory,
		},
		"help": {
			usage: "help [command]",
			help:  "Show help",
			run:   (*REPL).cmdHelp,
		},
		"exit": {
			usage: "exit",
			help:  "Leave the shell",
			run:   (*REPL).cmdExit,
		},
		"quit": {
			usage: "quit",
			help:  "Leave the shell",
			run:   (*REPL).cmdExit,
		},
	}
}

func (r *REPL) cmdSecret(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "set":
			if len(args) != 2 || args[1] == "" {
				return errors.New("usage: secret set <value>")
			}
			r.secret = args[1]
			fmt.Fprintln(r.output, "secret set")
			return nil
		case "show":
			if r.secret == "" {
				return errors.New("no secret, run secret first")
			}
			fmt.Fprintln(r.output, r.secret)
			return nil
		default:
			return fmt.Errorf("unknown secret subcommand %q", args[0])
		}
	}

	s, err := r.svc.NewSecret(ctx)
	if err != nil {
		return err
	}
	r.secret = s
	fmt.Fprintln(r.output, s)
	return nil
}

func (r *REPL) cmdCreate(ctx context.Context, args []string) error {
	if r.secret == "" {
		return errors.New("no secret, run secret first")
	}
	user := r.user
	if len(args) > 0 {
		user = args[0]
	}

	token, err := r.svc.Issue(ctx, r.secret, user)
	if err != nil {
		return err
	}
	r.token = token
	r.user = user
	fmt.Fprintln(r.output, token)
	return nil
}

func (r *REPL) cmdVerify(ctx context.Context, args []string) error {
	if r.secret == "" {
		return errors.New("no secret, run secret first")
	}
	token, user := r.token, r.user
	if len(args) > 0 {
		token = args[0]
		user = ""
	}
	if len(args) > 1 {
		user = args[1]
	}
	if token == "" {
		return errors.New("no token, run create first or pass one")
	}

	resp := r.svc.Check(ctx, service.CheckRequest{
		Secret:   r.secret,
		Token:    token,
		UserInfo: user,
	})
	return r.formatter.Format(r.output, output.NewVerifyInfo(resp.Result, resp.Duration))
}

func (r *REPL) cmdInspect(_ context.Context, args []string) error {
	token := r.token
	if len(args) > 0 {
		token = args[0]
	}
	if token == "" {
		return errors.New("no token, run create first or pass one")
	}

	parts, err := r.svc.Inspect(token)
	if err != nil {
		return err
	}
	return r.formatter.Format(r.output, output.NewTokenInfo(parts, r.now()))
}

func (r *REPL) cmdAlgorithms(context.Context, []string) error {
	return r.formatter.Format(r.output, output.Algorithms(r.svc.Config()))
}

func (r *REPL) cmdConfig(context.Context, []string) error {
	return r.formatter.Format(r.output, output.NewTokenizerInfo(r.svc.Config()))
}

func (r *REPL) cmdSet(_ context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set <key> <value>, keys: %s", strings.Join(settingKeys, ", "))
	}
	cfg := r.svc.Config()
	if err := applySetting(&cfg, args[0], args[1]); err != nil {
		return err
	}
	if err := r.svc.Reload(cfg); err != nil {
		return err
	}
	fmt.Fprintf(r.output, "%s updated\n", args[0])
	return nil
}

func (r *REPL) cmdMetrics(context.Context, []string) error {
	if r.metrics == nil {
		return errors.New("metrics are not enabled")
	}
	return r.metrics.WriteText(r.output, "csrftok_")
}

func (r *REPL) cmdHistory(context.Context, []string) error {
	for i, entry := range r.history.Entries() {
		fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
	}
	return nil
}

func (r *REPL) cmdHelp(_ context.Context, args []string) error {
	if len(args) > 0 {
		cmd, ok := r.commands[args[0]]
		if !ok {
			return fmt.Errorf("unknown command %q", args[0])
		}
		fmt.Fprintf(r.output, "%s\n    %s\n", cmd.usage, cmd.help)
		return nil
	}

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &output.Table{}
	for _, name := range names {
		t.AddRow(r.commands[name].usage, r.commands[name].help)
	}
	return t.RenderWithOptions(r.output, true)
}

func (r *REPL) cmdExit(context.Context, []string) error {
	return errExit
}
