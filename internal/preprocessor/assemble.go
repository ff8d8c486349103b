package preprocessor

import (
	"fmt"
	"regexp"
	"strings"
)

// NAME must not start with a digit; VALUE may be empty.
var macroDefRe = regexp.MustCompile(`^([A-Za-z_]\w*)(?:=(\w*))?$`)

// prologue builds the text shared by every variant: the #version line and
// one #define per caller macro.
func prologue(version Version, macros []string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "#version %v\n", version)
	for _, m := range macros {
		idx := macroDefRe.FindStringSubmatchIndex(m)
		if idx == nil {
			return "", &MacroError{Macro: m}
		}
		b.WriteString("#define ")
		b.WriteString(m[idx[2]:idx[3]])
		if idx[4] >= 0 {
			b.WriteByte(' ')
			b.WriteString(m[idx[4]:idx[5]])
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// variant assembles the source handed to the driver for a single stage.
func variant(prologue string, stage PipelineStages, body string) string {
	var b strings.Builder
	b.Grow(len(prologue) + len(body) + 32)
	b.WriteString(prologue)
	b.WriteString("#define ")
	b.WriteString(stage.Define())
	b.WriteByte('\n')
	b.WriteString("#line 0 0\n")
	b.WriteString(body)
	return b.String()
}
