//go:build js && wasm

// Command anatomique-runtime is the browser runtime generated components
// import. Built with GOOS=js GOARCH=wasm, it installs the reactive and DOM
// helpers on globalThis.__anatomique and keeps running so callbacks stay
// valid; runtime.js re-exports them as an ES module.
package main

import (
	"log/slog"
	"syscall/js"

	"github.com/vcrobe/anatomique/compiler"
	"github.com/vcrobe/anatomique/console"
	"github.com/vcrobe/anatomique/dom"
	"github.com/vcrobe/anatomique/signals"
)

func main() {
	level := slog.LevelInfo
	if v := js.Global().Get("ANATOMIQUE_LOG_LEVEL"); v.Type() == js.TypeString {
		level = console.ParseLevel(v.String())
	}
	logger := console.New(level)
	slog.SetDefault(logger)

	rt := signals.NewRuntime(signals.WithLogger(logger))
	r := dom.NewRenderer(dom.NewBrowserDocument(), rt)
	b := newBridge(r, dom.NewLifecycle(logger))

	js.Global().Set(compiler.RuntimeGlobal, b.exports())
	logger.Debug("anatomique runtime ready")

	// Keep the Go program running
	select {}
}
