package project

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// windowsExts are the script extensions recognized in a virtual
// environment's Scripts directory on Windows.
var windowsExts = []string{".exe", ".bat"}

// ExternalScripts returns the names of the runnable scripts installed in
// dir, sorted. Virtual environment housekeeping scripts and native
// libraries are excluded.
func ExternalScripts(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isExecutableFile(path) || isUnsafeScript(path) {
			continue
		}

		name := entry.Name()
		if runtime.GOOS == "windows" {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// findScript returns the path of the executable named name in dir, or the
// empty string. On Windows the recognized script extensions are probed.
func findScript(dir, name string) string {
	if runtime.GOOS == "windows" {
		for _, ext := range windowsExts {
			path := filepath.Join(dir, name+ext)
			if isExecutableFile(path) {
				return path
			}
		}

		return ""
	}

	path := filepath.Join(dir, name)
	if isExecutableFile(path) {
		return path
	}

	return ""
}

// lookPath searches the directories of a PATH-style list for an executable
// named name and returns its path, or the empty string.
func lookPath(name, pathList string) string {
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		if path := findScript(dir, name); path != "" {
			return path
		}
	}

	return ""
}

// isUnsafeScript reports whether path names a script that must not run as a
// task: environment activation scripts on Windows, and native libraries
// that happen to carry the executable bit elsewhere.
func isUnsafeScript(path string) bool {
	if runtime.GOOS == "windows" {
		name := filepath.Base(path)
		stem := strings.TrimSuffix(name, filepath.Ext(name))

		return stem == "activate" || stem == "deactivate"
	}

	return filepath.Ext(path) == ".dylib"
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	if runtime.GOOS == "windows" {
		return slices.Contains(windowsExts, strings.ToLower(filepath.Ext(path)))
	}

	return info.Mode().Perm()&0o111 != 0
}
