package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.strace")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspectCommand(t *testing.T) {
	path := writeTrace(t, `strace: Process 4233 attached
0.000 openat(AT_FDCWD, "/tmp/f", O_RDONLY) = 3 <0.001>
0.002 read(3</tmp/f>, "data", 10) = 10 <0.003>
0.010 close(3</tmp/f>) = 0 <0.001>
`)

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Errorf("Execute() error = %v", err)
	}
}

func TestInspectCommand_MissingFile(t *testing.T) {
	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"/nonexistent/capture.strace"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInspectFile_Counts(t *testing.T) {
	path := writeTrace(t, `strace: Process 4233 attached
0.000 openat(AT_FDCWD, "/tmp/f", O_RDONLY) = 3 <0.001>
0.001 close(3) = 0 <0.001>
0.002 close(4</tmp/f>) = 0 <0.001>
0.003 read(4</tmp/f>, "", 10) = 0 <0.001>
`)

	result, err := inspectFile(path, 100)
	if err != nil {
		t.Fatalf("inspectFile() error = %v", err)
	}

	if result.SampledLines != 5 {
		t.Errorf("SampledLines = %d, want 5", result.SampledLines)
	}
	if result.ParsedLines != 4 {
		t.Errorf("ParsedLines = %d, want 4", result.ParsedLines)
	}
	if result.Syscalls["close"] != 2 {
		t.Errorf("close count = %d, want 2", result.Syscalls["close"])
	}
	if result.BareFdArgs != 1 {
		t.Errorf("BareFdArgs = %d, want 1", result.BareFdArgs)
	}
	if result.DecoratedArgs != 2 {
		t.Errorf("DecoratedArgs = %d, want 2", result.DecoratedArgs)
	}
}

func TestInspectFile_SampleLimit(t *testing.T) {
	path := writeTrace(t, `0.000 close(3</a>) = 0 <0.001>
0.001 close(4</b>) = 0 <0.001>
0.002 close(5</c>) = 0 <0.001>
`)

	result, err := inspectFile(path, 2)
	if err != nil {
		t.Fatalf("inspectFile() error = %v", err)
	}
	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2", result.SampledLines)
	}
}
