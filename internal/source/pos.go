package source

import "fmt"

// LineCol is a 1-based line/column position.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}

// Before reports whether lc is strictly before other, line-major.
func (lc LineCol) Before(other LineCol) bool {
	if lc.Line != other.Line {
		return lc.Line < other.Line
	}
	return lc.Col < other.Col
}

// Pos resolves a byte offset into a 1-based line/column position.
// Offsets past the end of content resolve to the position one past the
// last byte.
func (f *File) Pos(off uint32) LineCol {
	if off > uint32(len(f.Content)) {
		off = uint32(len(f.Content))
	}
	if len(f.lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Binary search for the greatest lineIdx[i] <= off-1, i.e. the last
	// newline strictly before off.
	lo, hi := 0, len(f.lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if f.lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi
	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	startOff := f.lineIdx[line] + 1
	return LineCol{Line: uint32(line + 2), Col: off - startOff + 1}
}

// Line returns the content of a 1-based line without its trailing
// newline. It returns the empty string for out-of-range lines.
func (f *File) Line(line uint32) string {
	if line == 0 {
		return ""
	}
	var start uint32
	if line > 1 {
		if int(line-2) >= len(f.lineIdx) {
			return ""
		}
		start = f.lineIdx[line-2] + 1
	}
	end := uint32(len(f.Content))
	if int(line-1) < len(f.lineIdx) {
		end = f.lineIdx[line-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
