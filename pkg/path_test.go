package pkg

import (
	"path/filepath"
	"testing"
)

func TestRootedPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		parent string
		want   string
	}{
		{
			name:   "empty path",
			path:   "",
			parent: "/proj",
			want:   "",
		},
		{
			name:   "plain relative path",
			path:   "scripts/build.sh",
			parent: "/proj",
			want:   "scripts/build.sh",
		},
		{
			name:   "plain absolute path",
			path:   "/usr/bin/env",
			parent: "/proj",
			want:   "/usr/bin/env",
		},
		{
			name:   "bang with separator",
			path:   "!/scripts/build.sh",
			parent: "/proj",
			want:   filepath.Join("/proj", "scripts/build.sh"),
		},
		{
			name:   "bang alone",
			path:   "!",
			parent: "/proj",
			want:   "/proj",
		},
		{
			name:   "bang without separator is literal",
			path:   "!important",
			parent: "/proj",
			want:   "!important",
		},
		{
			name:   "dot-slash prefix preserved",
			path:   "./tool",
			parent: "/proj",
			want:   "./tool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RootedPath(tt.path, tt.parent)
			if got != tt.want {
				t.Errorf("RootedPath(%q, %q) = %q, want %q",
					tt.path, tt.parent, got, tt.want)
			}
		})
	}
}
