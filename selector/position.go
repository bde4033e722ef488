package selector

// Position represents a line/column position in declaration text.
// 1-based line numbers, 0-based character offsets.
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 0-based character offset within line
	Offset    int `json:"offset"`    // 0-based byte offset in entire source
}

// Range represents a source span from start to end position.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// positionTracker maintains line/column/offset state during tokenization.
type positionTracker struct {
	source    string
	line      int // 1-based
	character int // 0-based within line
	offset    int // 0-based in source
}

func newPositionTracker(source string) *positionTracker {
	return &positionTracker{source: source, line: 1}
}

// advanceBytes advances by n bytes, tracking newlines.
func (pt *positionTracker) advanceBytes(n int) {
	for i := 0; i < n && pt.offset < len(pt.source); i++ {
		if pt.source[pt.offset] == '\n' {
			pt.line++
			pt.character = 0
		} else {
			pt.character++
		}
		pt.offset++
	}
}

// mark returns the current position snapshot.
func (pt *positionTracker) mark() Position {
	return Position{Line: pt.line, Character: pt.character, Offset: pt.offset}
}
