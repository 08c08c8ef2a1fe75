package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar reports how many of a known number of operations are done.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   int64
	current int64
	width   int
	start   time.Time
	mu      sync.Mutex
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(w io.Writer, title string) *ProgressBar {
	return &ProgressBar{
		w:     w,
		title: title,
		width: 40,
		start: time.Now(),
	}
}

// SetTotal sets the number of operations expected.
func (p *ProgressBar) SetTotal(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

// Update sets the progress.
func (p *ProgressBar) Update(current, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = current
	p.total = total
	p.render()
}

// Increment adds n completed operations.
func (p *ProgressBar) Increment(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += n
	p.render()
}

// Finish marks all operations done and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = p.total
	p.render()
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) render() {
	rate := formatRate(p.current, time.Since(p.start))

	if p.total <= 0 {
		fmt.Fprintf(p.w, "\r%s %d ops %s", p.title, p.current, rate)
		return
	}

	percent := float64(p.current) / float64(p.total)
	if percent > 1 {
		percent = 1
	}

	filled := int(float64(p.width) * percent)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	fmt.Fprintf(p.w, "\r%s [%s] %3.0f%% (%d/%d) %s",
		p.title,
		bar,
		percent*100,
		p.current,
		p.total,
		rate,
	)
}

// formatRate renders ops per second with a k/M suffix.
func formatRate(ops int64, elapsed time.Duration) string {
	if elapsed <= 0 || ops <= 0 {
		return "0 ops/s"
	}
	r := float64(ops) / elapsed.Seconds()
	switch {
	case r >= 1e6:
		return fmt.Sprintf("%.1fM ops/s", r/1e6)
	case r >= 1e3:
		return fmt.Sprintf("%.1fk ops/s", r/1e3)
	default:
		return fmt.Sprintf("%.0f ops/s", r)
	}
}
