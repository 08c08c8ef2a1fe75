// Package repl implements the interactive csrftok shell.
//
// A session keeps the current secret, the last token and the last user
// between commands, so a typical exchange is:
//
//	csrftok> secret
//	csrftok> create alice
//	csrftok> verify
//	csrftok> set validity 1s
//
// The shell works directly on a service.CSRFService, so tokenizer
// reloads, from `set` or from a watched configuration file, apply to the
// next command.
package repl
