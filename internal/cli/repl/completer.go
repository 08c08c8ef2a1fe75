package repl

import (
	"sort"
	"strings"
)

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over the given command lines.
func NewCompleter(commands ...string) *Completer {
	c := &Completer{commands: append([]string(nil), commands...)}
	sort.Strings(c.commands)
	return c
}

// Add registers more completion candidates.
func (c *Completer) Add(commands ...string) {
	c.commands = append(c.commands, commands...)
	sort.Strings(c.commands)
}

// Complete returns completion suggestions for the given prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
