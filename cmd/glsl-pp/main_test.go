package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const combined = `#version 450
#pragma stages(vertex, fragment)
#pragma primitive_topology(line)
#pragma input_layout(rgba32f, 0, 0)
#include "shared.glsl"
void main() {}
`

func TestRun(t *testing.T) {
	src := t.TempDir()
	lib := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(filepath.Join(src, "lines.glsl"), []byte(combined), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib, "shared.glsl"), []byte("float shared;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-I", lib, "-D", "WIDE=2", "-out", out, filepath.Join(src, "lines.glsl")}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	vert, err := os.ReadFile(filepath.Join(out, "lines.vert.glsl"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(vert), "#version 450\n#define WIDE 2\n#define _VERTEX_\n") {
		t.Errorf("unexpected vertex output:\n%s", vert)
	}
	if !strings.Contains(string(vert), "float shared;\n") {
		t.Errorf("include not expanded:\n%s", vert)
	}
	if _, err := os.Stat(filepath.Join(out, "lines.frag.glsl")); err != nil {
		t.Errorf("fragment output: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "lines.comp.glsl")); err == nil {
		t.Errorf("unexpected compute output")
	}
	for _, want := range []string{"primitive topology: LINES", "0: FLOAT x4 normalized=false slot=0 offset=0"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.glsl")
	if err := os.WriteFile(bad, []byte("#pragma stages(vertex)\n#pragma nonsense\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no file", nil, 2},
		{"unknown flag", []string{"-x", bad}, 2},
		{"missing file", []string{filepath.Join(dir, "nope.glsl")}, 1},
		{"malformed macro", []string{"-D", "1x", "-out", dir, bad}, 1},
		{"source errors", []string{"-out", dir, bad}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("run(%q) = %d, want %d\nstderr:\n%s", tt.args, code, tt.code, stderr.String())
			}
		})
	}
}
