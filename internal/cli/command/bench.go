package command

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/csrftok/internal/cli/output"
	"github.com/yndnr/csrftok/internal/core/service"
)

// BenchCommand returns the bench command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Measure token create and verify throughput",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "iterations",
				Aliases: []string{"n"},
				Value:   10000,
				Usage:   "Operations per phase",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"j"},
				Value:   runtime.NumCPU(),
				Usage:   "Concurrent workers",
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "Limit each phase to N operations per second, 0 for no limit",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show a progress bar on stderr",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print the collected metrics afterwards",
			},
		},
		Action: runBench,
	}
}

func runBench(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	n, workers := c.Int("iterations"), c.Int("concurrency")
	if n < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", n)
	}
	if workers < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", workers)
	}
	limit := c.Int("rate")
	if limit < 0 {
		return fmt.Errorf("rate must be >= 0, got %d", limit)
	}
	limiter := func() *rate.Limiter {
		if limit == 0 {
			return nil
		}
		return rate.NewLimiter(rate.Limit(limit), limit)
	}

	ctx := c.Context
	secret, err := e.svc.NewSecret(ctx)
	if err != nil {
		return err
	}
	user := ""
	if e.svc.Config().UserInfo {
		user = "bench-user"
	}

	bar := func(title string) *output.ProgressBar {
		if !c.Bool("progress") {
			return nil
		}
		p := output.NewProgressBar(c.App.ErrWriter, title)
		p.SetTotal(int64(n))
		return p
	}

	tokens := make([]string, n)
	created := runPhase(ctx, "create", n, workers, limiter(), bar("create"), func(i int) bool {
		token, err := e.svc.Issue(ctx, secret, user)
		if err != nil {
			return false
		}
		tokens[i] = token
		return true
	})
	verified := runPhase(ctx, "verify", n, workers, limiter(), bar("verify"), func(i int) bool {
		return e.svc.Check(ctx, service.CheckRequest{
			Secret:   secret,
			Token:    tokens[i],
			UserInfo: user,
		}).Valid
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := e.print([]output.BenchInfo{created, verified}); err != nil {
		return err
	}
	if c.Bool("metrics") {
		fmt.Fprintln(e.out)
		return e.metrics.WriteText(e.out, "csrftok_")
	}
	return nil
}

// runPhase calls op for indexes 0..n-1 from a pool of workers and counts
// the calls that report failure. A non-nil limiter paces the calls.
func runPhase(ctx context.Context, name string, n, workers int, limiter *rate.Limiter, bar *output.ProgressBar, op func(i int) bool) output.BenchInfo {
	jobs := make(chan int)
	var failures atomic.Int64
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return
					}
				}
				if !op(i) {
					failures.Add(1)
				}
				if bar != nil {
					bar.Increment(1)
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	if bar != nil {
		bar.Finish()
	}
	return output.NewBenchInfo(name, n, workers, failures.Load(), elapsed)
}
