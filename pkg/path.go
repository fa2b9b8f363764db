package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable identifiers.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with cmd
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// CacheDir returns the cache directory path used for transient files.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".cache")
			} else {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					dir = "."
				}
			}
		}

		return filepath.Join(dir, Prefix())
	},
)

// RootedPath resolves paths using the project-root convention.
//
// An empty path resolves to the empty string. A path beginning with a bang
// (!) followed by a path separator, or consisting of a bang alone, resolves
// relative to parent with the bang removed. Any other path is returned
// unchanged.
//
// Paths are manipulated as strings rather than cleaned, because a leading
// "./" is significant when naming an executable in the current directory,
// and path cleaning removes it.
func RootedPath(path, parent string) string {
	if path == "" {
		return ""
	}

	rest, ok := strings.CutPrefix(path, "!")
	if !ok {
		return path
	}

	if rest != "" && !isPathSeparator(rest[0]) {
		// A bang not followed by a separator is not the root convention.
		return path
	}

	return filepath.Join(parent, rest)
}

func isPathSeparator(c byte) bool {
	return c == '/' || c == os.PathSeparator
}
