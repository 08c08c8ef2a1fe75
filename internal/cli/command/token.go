package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/csrftok/internal/cli/output"
	"github.com/yndnr/csrftok/internal/core/service"
)

func secretFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "secret",
		Aliases: []string{"s"},
		Usage:   "Per-session secret",
		EnvVars: []string{"CSRFTOK_SECRET"},
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "User identity the token is bound to",
	}
}

// SecretCommand returns the secret command.
func SecretCommand() *cli.Command {
	return &cli.Command{
		Name:  "secret",
		Usage: "Generate secrets",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Value:   1,
				Usage:   "Number of secrets",
			},
		},
		Action: secretGenerate,
	}
}

func secretGenerate(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	secrets, err := e.svc.NewSecrets(c.Context, c.Int("count"))
	if err != nil {
		return err
	}
	return e.printValues(secrets)
}

// CreateCommand returns the create command.
func CreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create tokens for a secret",
		Flags: []cli.Flag{
			secretFlag(),
			userFlag(),
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Value:   1,
				Usage:   "Number of tokens",
			},
		},
		Action: tokenCreate,
	}
}

func tokenCreate(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	secret := c.String("secret")
	if secret == "" {
		return fmt.Errorf("secret required (--secret or CSRFTOK_SECRET)")
	}
	n := c.Int("count")
	if n < 1 {
		return fmt.Errorf("token count must be >= 1, got %d", n)
	}

	tokens := make([]string, 0, n)
	for i := 0; i < n; i++ {
		token, err := e.svc.Issue(c.Context, secret, c.String("user"))
		if err != nil {
			return err
		}
		tokens = append(tokens, token)
	}
	return e.printValues(tokens)
}

// VerifyCommand returns the verify command.
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify a token against a secret",
		ArgsUsage: "TOKEN",
		Flags:     []cli.Flag{secretFlag(), userFlag()},
		Action:    tokenVerify,
	}
}

func tokenVerify(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	resp := e.svc.Check(c.Context, service.CheckRequest{
		Secret:   c.String("secret"),
		Token:    c.Args().First(),
		UserInfo: c.String("user"),
	})
	if err := e.print(output.NewVerifyInfo(resp.Result, resp.Duration)); err != nil {
		return err
	}
	if !resp.Valid {
		return fmt.Errorf("%w: %s", ErrTokenRejected, resp.Result)
	}
	return nil
}

// InspectCommand returns the inspect command.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Aliases:   []string{"decode"},
		Usage:     "Decode a token without verifying it",
		ArgsUsage: "TOKEN",
		Action:    tokenInspect,
	}
}

func tokenInspect(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	token := c.Args().First()
	if token == "" {
		return fmt.Errorf("token argument required")
	}
	parts, err := e.svc.Inspect(token)
	if err != nil {
		return err
	}
	return e.print(output.NewTokenInfo(parts, time.Now()))
}

// AlgorithmsCommand returns the algorithms command.
func AlgorithmsCommand() *cli.Command {
	return &cli.Command{
		Name:   "algorithms",
		Usage:  "List supported digest algorithms",
		Action: listAlgorithms,
	}
}

func listAlgorithms(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	return e.print(output.Algorithms(e.svc.Config()))
}
