package lang

import (
	"fmt"
	"os"
	"path/filepath"
)

// NewRootEnvironment builds the root frame with every builtin registry
// wired in (spec.md §4.6). Grounded on pkg/core/bootstrap.go's
// NewCoreEnvironment, split across one register func per builtin family
// instead of one monolithic constructor.
func NewRootEnvironment() *Environment {
	root := NewEnvironment(nil)
	registerArithmetic(root)
	registerCollections(root)
	registerSeq(root)
	registerIO(root)
	return root
}

// preludeFiles are bundled x7 source, loaded on top of the builtin
// registry by LoadPrelude. They exist to exercise defn/fn in the language
// itself rather than duplicate them as Go builtins.
var preludeFiles = []string{"x7lib/prelude.x7"}

// LoadPrelude evaluates the bundled prelude files into root, searching the
// working directory and its two parent directories, so the prelude is
// found from the module root or from a package directory such as pkg/lang
// (where `go test` runs); no other location is searched. A missing
// prelude is not an error: the core builtins are already complete without
// it (pkg/core/bootstrap.go's same "continue without it" tolerance).
func LoadPrelude(root *Environment) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}
	for _, name := range preludeFiles {
		var content []byte
		for _, base := range []string{cwd, filepath.Join(cwd, ".."), filepath.Join(cwd, "../..")} {
			data, err := os.ReadFile(filepath.Join(base, name))
			if err == nil {
				content = data
				break
			}
		}
		if content == nil {
			continue
		}
		if err := loadSource(string(content), root); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

func loadSource(source string, env *Environment) error {
	forms, err := ParseAll(source)
	if err != nil {
		return err
	}
	for _, form := range forms {
		if _, err := Eval(form, env); err != nil {
			return err
		}
	}
	return nil
}
