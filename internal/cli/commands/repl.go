package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapview/pkg/ast"
	"github.com/leapstack-labs/leapview/pkg/compiler"
	"github.com/leapstack-labs/leapview/pkg/parser"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively compile markup elements",
		Long: `Start an interactive session. Each line is parsed as a markup
element and compiled into its JSON node, printed immediately. Useful for
exploring how attributes route into the style, properties and data
buckets.`,
		Example: `  leapview repl
  leapview> <Row gap={8}><Text>hi</Text></Row>`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			comp := compiler.New(compiler.Config{
				Registry: cmdCtx.Engine.Registry(),
				Logger:   cmdCtx.Logger,
			})

			historyFile := filepath.Join(filepath.Dir(cmdCtx.Config.StatePath), "repl_history")
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "leapview> ",
				HistoryFile:     historyFile,
				InterruptPrompt: "^C",
				EOFPrompt:       ".quit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize repl: %w", err)
			}
			defer func() { _ = rl.Close() }()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "leapview repl")
			fmt.Fprintln(out, "Type a markup element, .help for commands, .quit to exit")
			fmt.Fprintln(out)

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}

				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}

				if strings.HasPrefix(line, ".") {
					if quit := handleDotCommand(cmd, cmdCtx, line); quit {
						return nil
					}
					continue
				}

				evalLine(cmd, comp, line)
			}
		},
	}
}

// evalLine parses and compiles one repl line.
func evalLine(cmd *cobra.Command, comp *compiler.Compiler, line string) {
	expr, err := parser.ParseExpr(line)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "parse error: %v\n", err)
		return
	}

	el, ok := expr.(*ast.Element)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "not a markup element (got %s)\n", expr.Kind())
		return
	}

	node, err := comp.CompileElement(el)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "compile error: %v\n", err)
		return
	}

	doc, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "marshal error: %v\n", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(doc))
}

// handleDotCommand processes repl dot-commands; returns true to quit.
func handleDotCommand(cmd *cobra.Command, cmdCtx *CommandContext, line string) bool {
	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true
	case ".components":
		names := cmdCtx.Engine.Registry().Valid()
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
	case ".help":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  .components   list valid component tags")
		fmt.Fprintln(out, "  .help         show this help")
		fmt.Fprintln(out, "  .quit         exit the repl")
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "unknown command %s (try .help)\n", line)
	}
	return false
}
