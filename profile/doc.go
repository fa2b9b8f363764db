// Package profile provides optional runtime profiling for the runr
// application.
//
// Profiling is integrated through [github.com/pkg/profile] and compiled in
// only when the "pprof" build tag is set. Without the tag every operation is
// a no-op with zero runtime overhead, and [Modes] reports no available modes.
//
// With the tag, the following modes are supported: allocs, block, clock,
// cpu, goroutine, heap, mem, mutex, thread, and trace. Profile files are
// written to the configured output directory with names matching the mode
// (cpu.pprof, mem.pprof, and so on) and can be inspected with
// "go tool pprof".
//
// The runr command exposes these through the --pprof-mode and --pprof-dir
// flags when built with the tag:
//
//	go build -tags pprof .
//	./runr --pprof-mode cpu --pprof-dir ./profiles run lint
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
