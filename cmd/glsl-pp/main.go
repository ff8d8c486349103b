package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	glsl_pp "github.com/fwessels/glsl-pp"
)

// stringList collects repeated flags such as -I and -D.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		includeDirs stringList
		macros      stringList
		out         string
		verbose     bool
	)
	fs := flag.NewFlagSet("glsl-pp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: glsl-pp [-v] [-I dir]... [-D NAME[=VALUE]]... [-out dir] <file.glsl>\n")
		fs.PrintDefaults()
	}
	fs.Var(&includeDirs, "I", "Add `directory` to the include search path")
	fs.Var(&macros, "D", "Define `macro` (NAME or NAME=VALUE) in every stage")
	fs.StringVar(&out, "out", ".", "Path to output `directory`")
	fs.BoolVar(&verbose, "v", false, "Be verbose")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	p := glsl_pp.NewPreprocessor()
	p.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	p.IncludeDirs = includeDirs
	p.Macros = macros

	fname := fs.Arg(0)
	stages, shaders, err := p.ProcessFile(fname)
	if err != nil {
		fmt.Fprintln(stderr, "Error preprocessing file:", err)
		return 1
	}

	if err := os.MkdirAll(out, 0o777); err != nil {
		fmt.Fprintln(stderr, "Error creating output directory:", err)
		return 1
	}
	base := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
	for _, st := range stages.Stages() {
		src, _ := shaders.Variant(st)
		dst := filepath.Join(out, base+"."+st.Ext()+".glsl")
		if err := os.WriteFile(dst, []byte(src), 0o644); err != nil {
			fmt.Fprintln(stderr, "Error writing file:", err)
			return 1
		}
		fmt.Fprintf(stdout, "%s → %s\n", st.Tag(), dst)
	}

	if shaders.InputLayout != nil {
		fmt.Fprintln(stdout, "input layout:")
		for i, a := range shaders.InputLayout {
			fmt.Fprintf(stdout, "  %d: %v x%d normalized=%v slot=%d offset=%d\n",
				i, a.Type, a.Size, a.Normalized, a.Slot, a.RelativeOffset)
		}
	}
	if shaders.PrimitiveTopology != nil {
		fmt.Fprintln(stdout, "primitive topology:", *shaders.PrimitiveTopology)
	}

	if n := shaders.Diagnostics.Errors(); n > 0 {
		fmt.Fprintf(stderr, "%d error(s)\n", n)
		return 1
	}
	return 0
}
