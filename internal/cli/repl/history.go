package repl

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHistorySize is the number of entries kept.
const DefaultHistorySize = 1000

// History manages command history for the REPL.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a history persisted to ~/.csrftok/history.
func NewHistory() *History {
	homeDir, _ := os.UserHomeDir()
	return NewHistoryFile(filepath.Join(homeDir, ".csrftok", "history"))
}

// NewHistoryFile creates a history persisted to file. An empty file keeps
// history in memory only.
func NewHistoryFile(file string) *History {
	return &History{
		entries: make([]string, 0),
		maxSize: DefaultHistorySize,
		file:    file,
	}
}

// Add adds a command to history. Lines that would store a secret are
// recorded without their arguments.
func (h *History) Add(cmd string) {
	h.entries = append(h.entries, scrub(cmd))
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

// scrub drops the value from "secret set <value>" and "set hmac_key <value>".
// Words are split the way Execute splits them, so quoting does not hide a
// command from it.
func scrub(cmd string) string {
	f, err := splitArgs(cmd)
	if err != nil {
		f = strings.Fields(cmd)
	}
	switch {
	case len(f) > 2 && f[0] == "secret" && f[1] == "set":
		return "secret set ***"
	case len(f) > 2 && f[0] == "set" && f[1] == "hmac_key":
		return "set hmac_key ***"
	}
	return cmd
}

// Get returns the history entry at index (0 = most recent).
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Entries returns the history oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Load loads history from file.
func (h *History) Load() error {
	if h.file == "" {
		return nil
	}
	file, err := os.Open(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			h.Add(line)
		}
	}
	return scanner.Err()
}

// Save saves history to file.
func (h *History) Save() error {
	if h.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.file), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(h.file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
