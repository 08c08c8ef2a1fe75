package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNewProgressBar(t *testing.T) {
	bar := NewProgressBar(&bytes.Buffer{}, "verify")

	if bar.title != "verify" {
		t.Errorf("title = %q, want %q", bar.title, "verify")
	}
	if bar.width != 40 {
		t.Errorf("width = %d, want %d", bar.width, 40)
	}
}

func TestProgressBar_Update(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "create")

	bar.Update(50, 100)

	out := buf.String()
	if !strings.Contains(out, "create") {
		t.Error("output should contain title")
	}
	if !strings.Contains(out, "50%") {
		t.Error("output should contain percentage")
	}
	if !strings.Contains(out, "(50/100)") {
		t.Errorf("output should contain counts, got %q", out)
	}
}

func TestProgressBar_Increment(t *testing.T) {
	bar := NewProgressBar(&bytes.Buffer{}, "create")

	bar.SetTotal(100)
	bar.Increment(25)
	bar.Increment(25)

	if bar.current != 50 {
		t.Errorf("current = %d, want %d", bar.current, 50)
	}
}

func TestProgressBar_Finish(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "verify")

	bar.SetTotal(100)
	bar.Increment(10)
	bar.Finish()

	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Error("output should contain 100%")
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Finish should end the line")
	}
}

func TestProgressBar_UnknownTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	bar := NewProgressBar(buf, "secret")

	bar.Update(1024, 0)

	if !strings.Contains(buf.String(), "1024 ops") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		ops     int64
		elapsed time.Duration
		want    string
	}{
		{0, time.Second, "0 ops/s"},
		{10, 0, "0 ops/s"},
		{500, time.Second, "500 ops/s"},
		{1500, time.Second, "1.5k ops/s"},
		{3_000_000, time.Second, "3.0M ops/s"},
	}

	for _, tt := range tests {
		if got := formatRate(tt.ops, tt.elapsed); got != tt.want {
			t.Errorf("formatRate(%d, %v) = %q, want %q", tt.ops, tt.elapsed, got, tt.want)
		}
	}
}
