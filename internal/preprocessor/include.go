package preprocessor

import (
	"fmt"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// IncludeFrame is one link of the active include chain.
type IncludeFrame struct {
	Path   string
	ID     int // index in the source map
	Line   int // line of the #include in Parent, 0 for the root
	Parent *IncludeFrame
}

// Chain returns the include sites that led to f, innermost first.
func (f *IncludeFrame) Chain() []string {
	var sites []string
	for cur := f; cur.Parent != nil; cur = cur.Parent {
		sites = append(sites, fmt.Sprintf("%s:%d", cur.Parent.Path, cur.Line))
	}
	return sites
}

// onChain reports whether path is f or one of its ancestors.
func (f *IncludeFrame) onChain(path string) bool {
	want := canonicalPath(path)
	for cur := f; cur != nil; cur = cur.Parent {
		if canonicalPath(cur.Path) == want {
			return true
		}
	}
	return false
}

func canonicalPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// include expands the file named by an #include in parent at line.
func (ctx *preprocessContext) include(parent *IncludeFrame, line int, name string) {
	path, data, err := ctx.openInclude(filepath.Dir(parent.Path), name)
	if err != nil {
		ctx.fail(parent, line, err, "could not open include file %q: %v", name, err)
		return
	}
	if parent.onChain(path) {
		ctx.errorf(parent, line, "include cycle: %q is already being included", path)
		return
	}
	text, err := decodeSource(data)
	if err != nil {
		ctx.fail(parent, line, err, "could not decode include file %q: %v", path, err)
		return
	}

	frame := ctx.enter(path, parent, line)
	ctx.log.Debug("include", "path", path, "id", frame.ID)
	ctx.scan(frame, text)
}

// openInclude reads name relative to dir, falling back to each include
// directory in order. The error of the dir-relative attempt is returned when
// every candidate fails.
func (ctx *preprocessContext) openInclude(dir, name string) (string, []byte, error) {
	var candidates []string
	if filepath.IsAbs(name) {
		candidates = []string{filepath.Clean(name)}
	} else {
		candidates = append(candidates, filepath.Join(dir, name))
		for _, inc := range ctx.includeDirs {
			candidates = append(candidates, filepath.Join(inc, name))
		}
	}

	var firstErr error
	for _, cand := range candidates {
		data, err := ctx.readFile(cand)
		if err == nil {
			return cand, data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", nil, firstErr
}

// decodeSource drops a leading byte order mark and replaces invalid UTF-8
// with U+FFFD.
func decodeSource(b []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
