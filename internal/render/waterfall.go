// Package render owns the scrolling spectral history and its mapping to
// pixel data. Everything here runs on the render loop goroutine only.
package render

// Waterfall is a fixed-size circular history of spectral frames: rows are
// time, columns are frequency bins. Exactly one row is the newest; pushing
// a row evicts the oldest. All storage is allocated once at construction.
type Waterfall struct {
	rows int
	cols int
	grid [][]float64
	head int    // Index of the newest row in grid.
	pix  []byte // RGBA scratch reused by Snapshot.
}

// NewWaterfall creates a rows x cols history, initially all silence.
func NewWaterfall(rows, cols int) *Waterfall {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	grid := make([][]float64, rows)
	for i := range grid {
		grid[i] = make([]float64, cols)
	}
	return &Waterfall{
		rows: rows,
		cols: cols,
		grid: grid,
		head: rows - 1,
		pix:  make([]byte, rows*cols*4),
	}
}

// PushRow inserts frame as the newest row, evicting the oldest. Frames of
// the wrong width are tolerated: extra bins are truncated, missing bins are
// zero-filled. The analyzer always emits the configured width, but a
// malformed frame must not take the renderer down.
func (w *Waterfall) PushRow(frame []float64) {
	w.head = (w.head + 1) % w.rows
	row := w.grid[w.head]
	n := copy(row, frame)
	for i := n; i < w.cols; i++ {
		row[i] = 0
	}
}

// Size returns the grid dimensions as (cols, rows), matching texture
// conventions (width, height).
func (w *Waterfall) Size() (int, int) {
	return w.cols, w.rows
}

// Snapshot renders the history into RGBA pixel data ordered per opts, ready
// for texture upload. Row 0 of the image is the top. The returned slice is
// reused by the next Snapshot call; upload it before calling again.
func (w *Waterfall) Snapshot(opts Options) []byte {
	for r := 0; r < w.rows; r++ {
		// Age of the row shown at image row r, 0 = newest.
		age := r
		if opts.Scroll == ScrollUp {
			age = w.rows - 1 - r
		}
		src := w.grid[(w.head-age+w.rows*2)%w.rows]

		base := r * w.cols * 4
		for c := 0; c < w.cols; c++ {
			col := c
			if opts.Bins == BinsDescending {
				col = w.cols - 1 - c
			}
			v := src[col]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			intensity := byte(v * 255)
			o := base + c*4
			w.pix[o] = intensity / 2
			w.pix[o+1] = intensity
			w.pix[o+2] = intensity / 2
			w.pix[o+3] = 255
		}
	}
	return w.pix
}

// RowAt returns the stored row that is age steps old (0 = newest). It is a
// test hook; the renderer consumes Snapshot.
func (w *Waterfall) RowAt(age int) []float64 {
	if age < 0 || age >= w.rows {
		return nil
	}
	return w.grid[(w.head-age+w.rows*2)%w.rows]
}
