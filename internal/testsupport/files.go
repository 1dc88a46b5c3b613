package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// WriteTree creates every path on fs. Paths ending in "/" become empty
// directories; everything else becomes a small file.
func WriteTree(t testing.TB, fs billy.Filesystem, paths ...string) {
	t.Helper()

	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			if err := fs.MkdirAll(p, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", p, err)
			}
			continue
		}
		if err := util.WriteFile(fs, p, []byte("RIFF"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// WriteDiskTree is WriteTree against the host filesystem rooted at root.
func WriteDiskTree(t testing.TB, root string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		target := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", target, err)
		}
		if err := os.WriteFile(target, []byte("RIFF"), 0o644); err != nil {
			t.Fatalf("write %s: %v", target, err)
		}
	}
}

// Chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory to dir and restores the previous one on cleanup.
func Chdir(t testing.TB, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory %s: %v", prev, err)
		}
	})
}
