package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	writeScript(t, filepath.Join(dir, name), fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
}

// WriteStubWithOutput writes an executable shell stub that prints output and exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithOutput(t *testing.T, dir string, name string, output string) {
	t.Helper()
	writeScript(t, filepath.Join(dir, name), fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' '%s'\n", output))
}

// MakeInstall creates a minimal Chimera installation tree named name under dir
// and returns its root. The tree holds bin, lib/tcl8.6 and share/chimeraInit.py.
func MakeInstall(t *testing.T, dir string, name string) string {
	t.Helper()
	root := filepath.Join(dir, name)
	for _, sub := range []string{"bin", filepath.Join("lib", "tcl8.6"), "share"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", sub, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "share", "chimeraInit.py"), []byte("def init(*args, **kwargs):\n    pass\n"), 0o644); err != nil {
		t.Fatalf("write chimeraInit: %v", err)
	}
	return root
}

func writeScript(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}
