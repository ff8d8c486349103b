package preprocessor

import (
	"regexp"
	"strconv"
)

// SourceMapEntry ties the file id used in emitted #line directives to the
// file it came from.
type SourceMapEntry struct {
	Index int
	Path  string
}

// SourceMap lists every file read during expansion. Entry i has Index i;
// entry 0 is the root file.
type SourceMap []SourceMapEntry

// Path returns the path of file id, if known.
func (m SourceMap) Path(id int) (string, bool) {
	if id < 0 || id >= len(m) {
		return "", false
	}
	return m[id].Path, true
}

func (m *SourceMap) push(path string) int {
	id := len(*m)
	*m = append(*m, SourceMapEntry{Index: id, Path: path})
	return id
}

// Matches the "file:line" and "file(line)" locations GLSL drivers print.
var driverLocRe = regexp.MustCompile(`\b(\d+)(?::(\d+)|\((\d+)\))`)

// Remap rewrites driver log locations such as "0:12" or "1(7)" into
// "path:line" form. Locations whose file id is not in the map are left alone.
func (m SourceMap) Remap(log string) string {
	return driverLocRe.ReplaceAllStringFunc(log, func(loc string) string {
		sub := driverLocRe.FindStringSubmatch(loc)
		id, err := strconv.Atoi(sub[1])
		if err != nil {
			return loc
		}
		path, ok := m.Path(id)
		if !ok {
			return loc
		}
		line := sub[2]
		if line == "" {
			line = sub[3]
		}
		return path + ":" + line
	})
}
