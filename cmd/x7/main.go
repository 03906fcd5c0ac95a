// Command x7 runs the x7 Lisp core: a REPL by default, or a file/expression
// in batch mode. Grounded on the teacher's cmd/golisp-core/main.go (file/
// eval/REPL mode switch), rewired onto spf13/cobra flags in the idiom of
// the rest of the retrieved pack's CLI entry points.
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/x7lang/x7/pkg/lang"
)

func main() {
	var evalExpr string
	var lineMode bool
	var noColor bool

	root := &cobra.Command{
		Use:     "x7 [file]",
		Short:   "x7 is a small dynamically-typed Lisp",
		Version: "0.1.0",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := lang.NewRootEnvironment()
			if err := lang.LoadPrelude(env); err != nil {
				return fmt.Errorf("loading prelude: %w", err)
			}

			switch {
			case evalExpr != "":
				return runEval(env, evalExpr, lineMode)
			case len(args) == 1:
				return runFile(env, args[0], lineMode)
			default:
				return runREPL(env, !noColor)
			}
		},
	}

	root.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate a single expression and print its result")
	root.Flags().BoolVarP(&lineMode, "line", "l", false, "print only the final value, one line, no decoration")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colored REPL output")

	if err := root.Execute(); err != nil {
		reportAndExit(err)
	}
}

func runEval(env *lang.Environment, source string, lineMode bool) error {
	forms, err := lang.ParseAll(source)
	if err != nil {
		return err
	}
	var result lang.Value = lang.Nil{}
	for _, form := range forms {
		result, err = lang.Eval(form, env)
		if err != nil {
			reportAndExit(err)
		}
	}
	printResult(result, lineMode)
	return nil
}

func runFile(env *lang.Environment, path string, lineMode bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	forms, err := lang.ParseAll(string(content))
	if err != nil {
		return err
	}
	var result lang.Value = lang.Nil{}
	for _, form := range forms {
		result, err = lang.Eval(form, env)
		if err != nil {
			reportAndExit(err)
		}
	}
	if lineMode {
		printResult(result, lineMode)
	}
	return nil
}

func runREPL(env *lang.Environment, enableColors bool) error {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     os.ExpandEnv("$HOME/.x7_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	return lang.REPL(env, rl, os.Stdout, enableColors)
}

func printResult(result lang.Value, lineMode bool) {
	if lineMode {
		fmt.Println(result.String())
		return
	}
	fmt.Println(result.String())
}

// reportAndExit renders an *Error's stacktrace and exits with the code
// spec.md/§6 assigns: 2 for an unwound Panic, 1 for any other Error.
func reportAndExit(err error) {
	lerr := lang.AsError(err)
	fmt.Fprintln(os.Stderr, lerr.Error())
	if lerr.Kind == lang.PanicError {
		os.Exit(2)
	}
	os.Exit(1)
}
