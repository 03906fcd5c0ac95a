package lang

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// REPL runs a colored read-eval-print loop against root until EOF or a
// `quit`/`exit` line, reading from rl and writing results/errors to out.
// Grounded on the teacher's pkg/repl/repl.go REPLWithOptions shape:
// readline-backed multi-line collection buffering until parens balance,
// colored `=>` result and colored error rendering.
func REPL(root *Environment, rl *readline.Instance, out io.Writer, enableColors bool) error {
	if !enableColors {
		color.NoColor = true
	}

	promptColor := color.New(color.FgBlue, color.Bold)
	continuationColor := color.New(color.FgHiBlack)
	resultColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed)

	fmt.Fprintln(out, "x7 — type expressions to evaluate them, or 'quit' to exit.")

	for {
		input, err := readCompleteForm(rl, promptColor, continuationColor)
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "quit" || trimmed == "exit" {
			return nil
		}

		forms, err := ParseAll(trimmed)
		if err != nil {
			fmt.Fprintln(out, errorColor.Sprint(AsError(err).Error()))
			continue
		}

		var result Value = Nil{}
		var evalErr error
		for _, form := range forms {
			result, evalErr = Eval(form, root)
			if evalErr != nil {
				break
			}
		}
		if evalErr != nil {
			fmt.Fprintln(out, errorColor.Sprint(AsError(evalErr).Error()))
			continue
		}
		fmt.Fprintf(out, "=> %s\n", resultColor.Sprint(result.String()))
	}
}

// readCompleteForm buffers lines from rl until parentheses balance, so a
// multi-line expression can be typed across several prompts (`>>>` then
// `... `), mirroring the teacher's paren-counting continuation logic.
func readCompleteForm(rl *readline.Instance, promptColor, continuationColor *color.Color) (string, error) {
	var lines []string
	depth := 0
	inString := false
	escaped := false

	for {
		if len(lines) == 0 {
			rl.SetPrompt(promptColor.Sprint(">>> "))
		} else {
			rl.SetPrompt(continuationColor.Sprint("... "))
		}
		line, err := rl.Readline()
		if err != nil {
			if len(lines) > 0 && err == io.EOF {
				return strings.Join(lines, "\n"), nil
			}
			return "", err
		}
		lines = append(lines, line)

		trimmed := strings.TrimSpace(line)
		if len(lines) == 1 && (trimmed == "quit" || trimmed == "exit") {
			return trimmed, nil
		}

		for _, ch := range line {
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				if inString {
					escaped = true
				}
			case '"':
				inString = !inString
			case '(':
				if !inString {
					depth++
				}
			case ')':
				if !inString {
					depth--
				}
			}
		}

		if depth <= 0 && hasNonBlankLine(lines) {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

func hasNonBlankLine(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
