package compiler

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// manifests are tooling files that a "*.json" pattern would otherwise pick up.
var manifests = []string{
	"package.json",
	"package-lock.json",
	"tsconfig.json",
	"jsconfig.json",
	"composer.json",
}

// Discover walks rootDir and returns every file whose base name matches one
// of patterns, sorted. Hidden directories, node_modules, outDir and
// well-known JSON manifests are skipped.
func Discover(rootDir string, patterns []string, outDir string) ([]string, error) {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", p, err)
		}
	}
	absOut := ""
	if outDir != "" {
		absOut, _ = filepath.Abs(outDir)
	}

	var found []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != rootDir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			if abs, _ := filepath.Abs(path); absOut != "" && abs == absOut {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(manifests, d.Name()) {
			return nil
		}
		for _, p := range patterns {
			if ok, _ := filepath.Match(p, d.Name()); ok {
				found = append(found, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", rootDir, err)
	}
	slices.Sort(found)
	return found, nil
}

// OutputName maps an input file to its module file name: "todo-list.ast"
// becomes "todo-list.js".
func OutputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".js"
}
