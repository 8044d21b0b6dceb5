// Command hogqlfmt is a CLI front end over the five HogQL parse entry
// points, grounded on mr-karan-logchef's cmd/logchef command surface:
// urfave/cli/v3 flags, a charmbracelet/log Before hook, and the teacher
// REPL's "read one thing, print the result" loop collapsed to a single
// invocation instead of an interactive session (AST parsing has no mutable
// session state to loop over the way pgraph's REPL does).
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/hogql-lang/hogql/internal/config"
	"github.com/hogql-lang/hogql/internal/driver"
)

var rules = map[string]func(string, bool) string{
	"expr":                 driver.ParseExpr,
	"order_expr":           driver.ParseOrderExpr,
	"select":               driver.ParseSelect,
	"full_template_string": driver.ParseFullTemplateString,
	"program":              driver.ParseProgram,
}

func readInput(cmd *cli.Command) (string, error) {
	if path := cmd.String("file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", path, err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}

func isErrorResult(s string) bool {
	const marker = `{"error":true`
	return len(s) >= len(marker) && s[:len(marker)] == marker
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "hogqlfmt",
		Usage: "parse HogQL source and print its AST as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rule",
				Aliases: []string{"r"},
				Value:   "select",
				Usage:   "entry rule: expr, order_expr, select, full_template_string, program",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "input file (default: stdin)",
			},
			&cli.BoolFlag{
				Name:  "internal",
				Usage: "omit spans (is_internal=true)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to JSON config file",
				Sources: cli.EnvVars("HOGQL_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				log.Debug("config load warning", "error", err)
				cfg = config.Default()
			}
			driver.MaxInputBytes = cfg.MaxInputBytes
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fn, ok := rules[cmd.String("rule")]
			if !ok {
				return fmt.Errorf("unknown rule: %q", cmd.String("rule"))
			}
			input, err := readInput(cmd)
			if err != nil {
				return err
			}
			result := fn(input, cmd.Bool("internal"))
			fmt.Println(result)
			if isErrorResult(result) {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
