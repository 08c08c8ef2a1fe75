// Package command provides the csrftok command-line interface.
//
// Commands are defined with urfave/cli/v2. The Before hook loads the
// configuration (defaults, YAML file, CSRFTOK_* environment, then global
// flags), builds the logger, metrics registry and CSRF service, and
// stores them for the command actions. The repl command starts an
// interactive session on the same service.
package command
