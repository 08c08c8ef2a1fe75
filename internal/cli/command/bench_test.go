package command

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/yndnr/csrftok/internal/cli/output"
)

func TestBenchCommand(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "--user-binding", "bench", "-n", "200", "-j", "4")
	require.NoError(t, err)

	var results []output.BenchInfo
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "create", results[0].Operation)
	assert.Equal(t, "verify", results[1].Operation)
	for _, r := range results {
		assert.Equal(t, 200, r.Iterations)
		assert.Equal(t, 4, r.Concurrency)
		assert.Zero(t, r.Failures)
	}
}

func TestBenchCommand_MetricsAndProgress(t *testing.T) {
	out, errOut, err := run(t, "", "bench", "-n", "20", "-j", "2", "--metrics", "--progress")
	require.NoError(t, err)

	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "csrftok_tokens_created_total 20")
	assert.Contains(t, out, `csrftok_verifications_total{result="valid"} 20`)
	assert.NotContains(t, out, "go_goroutines")
	assert.Contains(t, errOut, "100%")
}

func TestRunPhase_RateLimited(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(100), 1)

	start := time.Now()
	info := runPhase(context.Background(), "op", 11, 2, limiter, nil, func(int) bool { return true })

	assert.Zero(t, info.Failures)
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond, "11 ops at 100/s with burst 1")
}

func TestBenchCommand_Rate(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "bench", "-n", "10", "--rate", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, `"failures": 0`)

	_, _, err = run(t, "", "bench", "--rate", "-1")
	assert.Error(t, err)
}

func TestBenchCommand_InvalidArgs(t *testing.T) {
	_, _, err := run(t, "", "bench", "-n", "0")
	assert.Error(t, err)
	_, _, err = run(t, "", "bench", "-j", "0")
	assert.Error(t, err)
}

func TestRunPhase(t *testing.T) {
	var calls atomic.Int64
	info := runPhase(context.Background(), "op", 100, 8, nil, nil, func(i int) bool {
		calls.Add(1)
		return i%10 != 0
	})

	assert.Equal(t, int64(100), calls.Load())
	assert.Equal(t, int64(10), info.Failures)
	assert.Equal(t, "op", info.Operation)
}

func TestRunPhase_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	runPhase(ctx, "op", 1000, 2, nil, nil, func(int) bool {
		calls.Add(1)
		return true
	})
	assert.Less(t, calls.Load(), int64(1000))
}
