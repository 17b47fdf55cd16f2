package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source is one COOL file ready to be parsed.
type Source struct {
	Path string
	Text string
}

var sourceExtensions = []string{".cl", ".cool"}

// ResolveImports loads path and every file it imports, transitively. Files
// come back in discovery order with the root first and each file appears
// once. Import lines and a leading module line are blanked rather than
// removed so line numbers in diagnostics still match the file on disk.
func ResolveImports(path string) ([]Source, error) {
	var sources []Source
	seen := make(map[string]bool)

	queue := []string{path}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		abs, err := filepath.Abs(current)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", current)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true

		content, err := os.ReadFile(current)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", current)
		}

		text, imports := PreprocessImports(string(content))
		sources = append(sources, Source{Path: current, Text: text})

		baseDir := filepath.Dir(current)
		for _, name := range imports {
			importPath, err := findImport(baseDir, name)
			if err != nil {
				return nil, errors.Wrapf(err, "import in %s", current)
			}
			queue = append(queue, importPath)
		}
	}

	return sources, nil
}

// PreprocessImports blanks import and module lines in code and returns the
// names it found on import lines.
func PreprocessImports(code string) (string, []string) {
	lines := strings.Split(code, "\n")
	var imports []string
	leading := true

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "import "):
			name := strings.Trim(strings.TrimPrefix(trimmed, "import"), " \";")
			if name != "" {
				imports = append(imports, name)
			}
			lines[i] = ""
		case leading && strings.HasPrefix(trimmed, "module "):
			lines[i] = ""
		}
		leading = false
	}

	return strings.Join(lines, "\n"), imports
}

func findImport(baseDir, name string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range sourceExtensions {
			candidates = append(candidates, name+ext, strings.ToLower(name)+ext)
		}
	}

	for _, candidate := range candidates {
		full := filepath.Join(baseDir, candidate)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", errors.Errorf("cannot find imported file %q in %s", name, baseDir)
}
