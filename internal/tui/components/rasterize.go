package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tessro/wavebar/internal/progress"
)

// SubRows is the vertical resolution of one terminal row in bar units.
const SubRows = 8

var (
	lowerBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	flatGlyph   = '━'
)

// column is what one terminal column of the bar shows.
type column struct {
	filled bool
	top    float64
	bottom float64
	color  colorful.Color
}

// Raster converts bar fills into terminal rows.
type Raster struct {
	Cols int
	Rows int
	// Background is what translucent fills are composited onto.
	Background colorful.Color
	// Hover highlights one column; -1 for none.
	Hover int
	// HoverColor is blended into the hovered column.
	HoverColor colorful.Color
}

// Bounds returns the drawable size the renderer should lay out into.
func (r Raster) Bounds() progress.Size {
	return progress.Size{Width: float64(r.Cols), Height: float64(r.Rows * SubRows)}
}

// columns resolves fills per terminal column. A fill covers a column when
// it contains the column's center. Coverage is the union of the covering
// fills' vertical spans; the color is that of the last fill painted.
func (r Raster) columns(fills []progress.Fill) []column {
	cols := make([]column, r.Cols)
	for _, f := range fills {
		if f.Rect.Width <= 0 || f.Rect.Height <= 0 || f.Color.Alpha <= 0 {
			continue
		}
		first := int(math.Ceil(f.Rect.X - 0.5))
		last := int(math.Ceil(f.Rect.Right()-0.5)) - 1
		if last < first {
			// Narrower than a column and between centers: take the nearest.
			first = int(math.Floor(f.Rect.X + f.Rect.Width/2))
			last = first
		}
		for c := max(first, 0); c <= last && c < r.Cols; c++ {
			col := &cols[c]
			if !col.filled {
				col.top, col.bottom = f.Rect.Y, f.Rect.Bottom()
			} else {
				col.top = math.Min(col.top, f.Rect.Y)
				col.bottom = math.Max(col.bottom, f.Rect.Bottom())
			}
			col.filled = true
			col.color = f.Color.Over(r.Background)
		}
	}
	return cols
}

// Waveform draws fills as vertical bars using eighth-block glyphs. With a
// single row the bars grow from the bottom; with more rows they stay
// centered.
func (r Raster) Waveform(fills []progress.Fill) []string {
	if r.Cols <= 0 || r.Rows <= 0 {
		return nil
	}
	cols := r.columns(fills)
	lines := make([]string, r.Rows)
	for row := range lines {
		var line lineBuilder
		for c, col := range cols {
			ch, fg, bg := r.waveCell(col, row)
			if c == r.Hover && col.filled {
				fg = fg.BlendRgb(r.HoverColor, 0.5)
			}
			line.add(ch, fg, bg)
		}
		lines[row] = line.String()
	}
	return lines
}

// waveCell picks the glyph for one cell. bg is nil-equivalent when the
// cell uses the terminal background.
func (r Raster) waveCell(col column, row int) (rune, colorful.Color, *colorful.Color) {
	if !col.filled {
		return ' ', col.color, nil
	}

	if r.Rows == 1 {
		h := eighths(col.bottom - col.top)
		return lowerBlocks[h], col.color, nil
	}

	cellTop := float64(row * SubRows)
	cellBottom := cellTop + SubRows
	top := math.Max(col.top, cellTop)
	bottom := math.Min(col.bottom, cellBottom)
	if bottom <= top {
		return ' ', col.color, nil
	}

	center := float64(r.Rows*SubRows) / 2
	if cellBottom <= center || col.bottom >= cellBottom {
		// Filled part hangs from the bottom of the cell.
		return lowerBlocks[eighths(cellBottom-top)], col.color, nil
	}
	// Filled part sits at the top of the cell: draw the empty lower part in
	// the background color over a filled cell.
	empty := SubRows - eighths(bottom-cellTop)
	bg := col.color
	return lowerBlocks[empty], r.Background, &bg
}

// Flat draws the fills as a single heavy line across the middle row.
func (r Raster) Flat(fills []progress.Fill) []string {
	if r.Cols <= 0 || r.Rows <= 0 {
		return nil
	}
	cols := r.columns(fills)
	mid := (r.Rows - 1) / 2

	lines := make([]string, r.Rows)
	for row := range lines {
		if row != mid {
			lines[row] = strings.Repeat(" ", r.Cols)
			continue
		}
		var line lineBuilder
		for c, col := range cols {
			if !col.filled {
				line.add(' ', col.color, nil)
				continue
			}
			fg := col.color
			if c == r.Hover {
				fg = fg.BlendRgb(r.HoverColor, 0.5)
			}
			line.add(flatGlyph, fg, nil)
		}
		lines[row] = line.String()
	}
	return lines
}

// eighths rounds a span in bar units to whole eighths of a cell.
func eighths(span float64) int {
	n := int(math.Round(span))
	if n < 0 {
		return 0
	}
	if n > SubRows {
		return SubRows
	}
	if n == 0 && span > 0 {
		return 1
	}
	return n
}

// lineBuilder groups runs of equally styled cells into one styled string.
type lineBuilder struct {
	b       strings.Builder
	run     []rune
	fg      string
	bg      string
	started bool
}

func (l *lineBuilder) add(ch rune, fg colorful.Color, bg *colorful.Color) {
	fgHex, bgHex := fg.Hex(), ""
	if bg != nil {
		bgHex = bg.Hex()
	}
	if ch == ' ' && bg == nil {
		fgHex = ""
	}
	if l.started && (fgHex != l.fg || bgHex != l.bg) {
		l.flush()
	}
	l.started = true
	l.fg, l.bg = fgHex, bgHex
	l.run = append(l.run, ch)
}

func (l *lineBuilder) flush() {
	if len(l.run) == 0 {
		return
	}
	style := lipgloss.NewStyle()
	if l.fg != "" {
		style = style.Foreground(lipgloss.Color(l.fg))
	}
	if l.bg != "" {
		style = style.Background(lipgloss.Color(l.bg))
	}
	if l.fg == "" && l.bg == "" {
		l.b.WriteString(string(l.run))
	} else {
		l.b.WriteString(style.Render(string(l.run)))
	}
	l.run = l.run[:0]
}

func (l *lineBuilder) String() string {
	l.flush()
	return l.b.String()
}
