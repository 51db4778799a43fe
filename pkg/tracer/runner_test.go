package tracer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunner_CommandArgs(t *testing.T) {
	r := &Runner{}
	args := r.CommandArgs("cat /etc/hostname")

	want := []string{"-tttTf", "--decode-fds=path", "cat", "/etc/hostname"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestRunner_AttachArgs(t *testing.T) {
	r := &Runner{}
	args := r.AttachArgs(4233)

	joined := strings.Join(args, " ")
	if joined != "-tttTf --decode-fds=path -p 4233" {
		t.Errorf("args = %q", joined)
	}
}

func TestRunner_ArgsDoNotAlias(t *testing.T) {
	r := &Runner{}
	a := r.CommandArgs("true")
	a[0] = "mutated"

	if b := r.AttachArgs(1); b[0] != "-tttTf" {
		t.Error("invocations share a backing array")
	}
}

func TestSaveRaw(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveRaw(dir, "0.0 close(3</tmp/f>) = 0 <0.001>\n")
	if err != nil {
		t.Fatalf("SaveRaw() error = %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("saved outside dir: %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "iotracer.strace-") {
		t.Errorf("unexpected name: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "close(3</tmp/f>)") {
		t.Error("trace content not persisted")
	}
}

func TestSaveRaw_BadDir(t *testing.T) {
	if _, err := SaveRaw("/nonexistent/dir", "trace"); err == nil {
		t.Error("SaveRaw() expected error for missing directory")
	}
}
