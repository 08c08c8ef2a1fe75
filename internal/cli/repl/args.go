package repl

import (
	"errors"
	"strings"
)

// splitArgs splits a line into words. Single and double quotes group
// words and may produce empty arguments; there are no escapes.
func splitArgs(line string) ([]string, error) {
	var (
		args   []string
		cur    strings.Builder
		quote  rune
		inWord bool
	)

	for _, c := range line {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				continue
			}
			cur.WriteRune(c)
		case c == '\'' || c == '"':
			quote = c
			inWord = true
		case c == ' ' || c == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(c)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
