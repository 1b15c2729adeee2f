// Command anatomique compiles tri-AST component files into JavaScript
// modules driven by the anatomique wasm runtime.
//
// Usage:
//
//	anatomique build                 # every input matched by anatomique.yaml
//	anatomique build src/counter.ast # just these files (or directories)
//	anatomique watch                 # rebuild on change
//	anatomique version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
