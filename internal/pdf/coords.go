package pdf

import "signdesk/internal/models"

// Default signature box, in viewer pixels, when the client does not say.
const (
	defaultSignatureWidth  = 150.0
	defaultSignatureHeight = 50.0
)

// ToDocumentSpace maps a click in viewer coordinates (origin top-left,
// pixels, Y down) to a signature placement in PDF page coordinates (origin
// bottom-left, points, Y up). pageW/pageH are the native page dimensions in
// points. The click is scaled by the ratio between native and rendered page
// size, flipped on Y, and the resulting box is clamped so the signature
// never lands outside the page.
func ToDocumentSpace(click models.ClickPosition, pageW, pageH float64) models.SignaturePosition {
	sigW := click.Width
	if sigW <= 0 {
		sigW = defaultSignatureWidth
	}

	sigH := click.Height
	if sigH <= 0 {
		sigH = defaultSignatureHeight
	}

	sx, sy := 1.0, 1.0
	if click.PageWidth > 0 {
		sx = pageW / click.PageWidth
	}
	if click.PageHeight > 0 {
		sy = pageH / click.PageHeight
	}

	w := sigW * sx
	h := sigH * sy

	if w > pageW {
		w = pageW
	}
	if h > pageH {
		h = pageH
	}

	x := clamp(click.X*sx, 0, pageW-w)
	y := clamp(pageH-click.Y*sy-h, 0, pageH-h)

	return models.SignaturePosition{
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Page:   click.Page,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
