package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/anatomique/compiler"
)

// ErrBuildFailed is returned when at least one component did not compile.
var ErrBuildFailed = errors.New("build failed")

func newBuildCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build [inputs...]",
		Short: "Compile components into the output directory",
		Long: `Compile every input into <outDir>/<name>.js, and write runtime.js and
index.html next to them. Inputs may be files or directories; with none,
the project's configured input patterns are scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd, flags)
			if err != nil {
				return err
			}
			b := &builder{session: s, out: newPrinter(os.Stderr)}
			_, err = b.run(cmd.Context(), args)
			return err
		},
	}
}

// builder runs one build.
type builder struct {
	*session
	out *printer
}

// unit is one input file's compilation.
type unit struct {
	path   string
	source string
	output *compiler.Output
	diags  []compiler.Diagnostic
	err    error
}

// inputs expands args, or scans the working directory when there are none.
func (b *builder) inputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return compiler.Discover(".", b.cfg.Inputs, b.cfg.OutDir)
	}
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat input: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := compiler.Discover(arg, b.cfg.Inputs, b.cfg.OutDir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// run compiles every input concurrently, prints diagnostics in input order
// and writes the outputs. It returns the inputs it built.
func (b *builder) run(ctx context.Context, args []string) ([]string, error) {
	start := time.Now()
	paths, err := b.inputs(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no inputs matched %v", b.cfg.Inputs)
	}
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := compiler.OutputName(path)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s and %s both compile to %s", prev, path, name)
		}
		seen[name] = path
	}

	units := make([]unit, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			units[i] = b.compile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, u := range units {
		b.out.diagnostics(u.path, u.source, u.diags)
		switch {
		case u.err != nil && !errors.Is(u.err, compiler.ErrCompilationFailed):
			b.out.failure("%s: %v", u.path, u.err)
			failed++
		case u.err != nil:
			failed++
		case b.cfg.Strict && len(u.diags) > 0:
			b.out.failure("%s: warnings are errors in strict mode", u.path)
			failed++
		}
	}
	if failed > 0 {
		return nil, fmt.Errorf("%w: %d of %d components", ErrBuildFailed, failed, len(units))
	}

	if err := b.write(units); err != nil {
		return nil, err
	}
	b.out.success("built %d component(s) into %s in %s", len(units), b.cfg.OutDir, time.Since(start).Round(time.Millisecond))
	return paths, nil
}

// compile decodes and transpiles one file with its own Transpiler.
func (b *builder) compile(path string) unit {
	u := unit{path: path}
	f, err := os.Open(path)
	if err != nil {
		u.err = fmt.Errorf("failed to open: %w", err)
		return u
	}
	defer f.Close()

	root, err := compiler.Decode(f)
	if err != nil {
		u.err = fmt.Errorf("failed to decode: %w", err)
		return u
	}
	u.source = root.Source

	name := compiler.ComponentName(path)
	t := compiler.New(compiler.Options{
		Name:   name,
		Mode:   b.mode,
		Logger: b.logger.With(slog.String("file", path)),
	})
	u.output, u.err = t.Transpile(root)
	u.diags = t.Diagnostics()
	return u
}

// write persists every module plus the runtime shim and the HTML shell,
// which mounts the first component.
func (b *builder) write(units []unit) error {
	if err := os.MkdirAll(b.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, u := range units {
		if err := b.writeFile(compiler.OutputName(u.path), u.output.Code); err != nil {
			return err
		}
	}
	if err := b.writeFile("runtime.js", compiler.RuntimeShim()); err != nil {
		return err
	}

	first := units[0]
	shell, err := compiler.HTMLShell(compiler.ShellOptions{
		Title:        b.cfg.Title,
		AppRootID:    b.cfg.AppRootID,
		Module:       "./" + compiler.OutputName(first.path),
		Component:    first.output.Name,
		Mode:         b.mode,
		RuntimeFile:  b.cfg.RuntimeFile,
		WasmExecFile: b.cfg.WasmExecFile,
	})
	if err != nil {
		return err
	}
	return b.writeFile("index.html", shell)
}

func (b *builder) writeFile(name, content string) error {
	path := filepath.Join(b.cfg.OutDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	b.logger.Debug("wrote file", "path", path, "bytes", len(content))
	return nil
}
