package ui

import "github.com/hajimehoshi/ebiten/v2"

// drawKaleidoscope tiles the spectrum into four mirrored quadrants meeting
// at the screen center. The top-left quadrant is the plain image; the other
// three flip it horizontally, vertically, or both, so every edge of the
// pattern lines up with its reflection.
func drawKaleidoscope(screen, spectrum *ebiten.Image) {
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())
	iw := float64(spectrum.Bounds().Dx())
	ih := float64(spectrum.Bounds().Dy())

	halfW := sw / 2
	halfH := sh / 2
	sx := halfW / iw
	sy := halfH / ih

	// Top left, unmirrored.
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(sx, sy)
	screen.DrawImage(spectrum, &op)

	// Top right, mirrored horizontally.
	op.GeoM.Reset()
	op.GeoM.Scale(-sx, sy)
	op.GeoM.Translate(sw, 0)
	screen.DrawImage(spectrum, &op)

	// Bottom left, mirrored vertically.
	op.GeoM.Reset()
	op.GeoM.Scale(sx, -sy)
	op.GeoM.Translate(0, sh)
	screen.DrawImage(spectrum, &op)

	// Bottom right, mirrored both ways.
	op.GeoM.Reset()
	op.GeoM.Scale(-sx, -sy)
	op.GeoM.Translate(sw, sh)
	screen.DrawImage(spectrum, &op)
}
