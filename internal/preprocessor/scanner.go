package preprocessor

import (
	"fmt"
	"strconv"
	"strings"
)

// scan walks source line by line, expanding includes, consuming directives
// and appending everything else to the body. Lines removed from the output
// are compensated by a #line directive before the next emitted line.
func (ctx *preprocessContext) scan(frame *IncludeFrame, source string) {
	// Included text needs a #line to leave the includer's numbering.
	lineDirectivePending := frame.Parent != nil

	for i, line := range splitLines(source) {
		curLine := i + 1

		if m := includeRe.FindStringSubmatch(line); m != nil {
			ctx.include(frame, curLine, m[1])
			lineDirectivePending = true
			continue
		}
		if m := versionRe.FindStringSubmatch(line); m != nil {
			ctx.setVersion(frame, curLine, line, m[1], m[2])
			lineDirectivePending = true
			continue
		}
		if m := pragmaRe.FindStringSubmatch(line); m != nil {
			ctx.pragma(frame, curLine, m[1])
			lineDirectivePending = true
			continue
		}

		if lineDirectivePending {
			fmt.Fprintf(&ctx.body, "#line %d %d\n", curLine, frame.ID)
			lineDirectivePending = false
		}
		ctx.body.WriteString(line)
		ctx.body.WriteByte('\n')
	}
}

func (ctx *preprocessContext) setVersion(frame *IncludeFrame, line int, text, digits, profile string) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		ctx.errorf(frame, line, "malformed version directive: %q", text)
		return
	}
	v := Version{Number: n, Profile: profile}
	if ctx.version != nil && *ctx.version != v {
		ctx.warnf(frame, line, "version differs from previously specified version (%v, was %v)", v, *ctx.version)
	}
	ctx.version = &v
}

// splitLines splits s into logical lines. A trailing newline does not start
// an extra empty line, and CRLF endings are accepted.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
