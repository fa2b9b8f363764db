//go:build !pprof

package profile

// Modes reports no available modes when built without the pprof tag.
func Modes() []string { return nil }

// start is a no-op when built without the pprof tag.
func start(_, _ string, _ bool) interface{ Stop() } { return ignore{} }
