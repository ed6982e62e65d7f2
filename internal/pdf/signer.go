package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"time"

	"signdesk/internal/models"

	"github.com/phpdave11/gofpdi"
	"github.com/signintech/gopdf"
)

const pkg = "pdfEngine/"

const (
	annotationFont     = "signdesk-annotation"
	annotationFontSize = 7
	annotationGap      = 4.0
)

// SignerMeta is the signer identity stamped beneath the signature image.
type SignerMeta struct {
	Name     string
	Email    string
	SignedAt time.Time
}

// Engine embeds signature images into PDF documents. Page indices are
// 0-based at every entry point.
//
// fontPath points to a TTF used for the annotation line under the
// signature; when empty the annotation is skipped and only the image is
// embedded.
type Engine struct {
	fontPath string
}

func NewEngine(fontPath string) *Engine {
	return &Engine{fontPath: fontPath}
}

// PageCount returns the number of pages in the document.
func (e *Engine) PageCount(pdfBytes []byte) (n int, err error) {
	op := pkg + "PageCount"

	defer recoverCorrupt(op, &err)

	imp, err := openImporter(op, pdfBytes)
	if err != nil {
		return 0, err
	}

	return imp.GetNumPages(), nil
}

// PageSize returns the native MediaBox dimensions of a page in points.
func (e *Engine) PageSize(pdfBytes []byte, page int) (w, h float64, err error) {
	op := pkg + "PageSize"

	defer recoverCorrupt(op, &err)

	imp, err := openImporter(op, pdfBytes)
	if err != nil {
		return 0, 0, err
	}

	n := imp.GetNumPages()
	if page < 0 || page >= n {
		return 0, 0, fmt.Errorf("%s: page %d of %d: %w", op, page, n, models.ErrInvalidPage)
	}

	rect := pageRect(imp.GetPageSizes(), page+1)

	return rect.W, rect.H, nil
}

// EmbedSignature draws the PNG signature onto the target page, scaled to
// pos.Width x pos.Height with its bottom-left corner at (pos.X, pos.Y) in
// page coordinates, and re-serializes the whole document. The input slices
// are never mutated; any failure returns an error and no partial output.
func (e *Engine) EmbedSignature(pdfBytes, signature []byte, pos models.SignaturePosition, meta SignerMeta) (out []byte, err error) {
	op := pkg + "EmbedSignature"

	defer recoverCorrupt(op, &err)

	if _, perr := png.DecodeConfig(bytes.NewReader(signature)); perr != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrBadSignatureImage)
	}

	imp, err := openImporter(op, pdfBytes)
	if err != nil {
		return nil, err
	}

	n := imp.GetNumPages()
	if pos.Page < 0 || pos.Page >= n {
		return nil, fmt.Errorf("%s: page %d of %d: %w", op, pos.Page, n, models.ErrInvalidPage)
	}

	sizes := imp.GetPageSizes()

	doc := gopdf.GoPdf{}
	doc.Start(gopdf.Config{PageSize: *pageRect(sizes, 1), Unit: gopdf.UnitPT})

	annotate := false
	if e.fontPath != "" {
		if ferr := doc.AddTTFFont(annotationFont, e.fontPath); ferr == nil {
			annotate = true
		}
	}

	var src io.ReadSeeker = bytes.NewReader(pdfBytes)

	for i := 1; i <= n; i++ {
		rect := pageRect(sizes, i)

		tpl := doc.ImportPageStream(&src, i, "/MediaBox")

		doc.AddPageWithOption(gopdf.PageOption{PageSize: rect})
		doc.UseImportedTemplate(tpl, 0, 0, rect.W, rect.H)

		if i-1 != pos.Page {
			continue
		}

		img, ierr := gopdf.ImageHolderByBytes(signature)
		if ierr != nil {
			return nil, fmt.Errorf("%s: %w", op, models.ErrBadSignatureImage)
		}

		// gopdf places images from the top-left corner, Y down.
		top := rect.H - pos.Y - pos.Height

		if ierr := doc.ImageByHolder(img, pos.X, top, &gopdf.Rect{W: pos.Width, H: pos.Height}); ierr != nil {
			return nil, fmt.Errorf("%s: draw signature: %w", op, ierr)
		}

		if annotate {
			e.drawAnnotation(&doc, pos.X, top+pos.Height+annotationGap, meta)
		}
	}

	out, err = doc.GetBytesPdfReturnErr()
	if err != nil {
		return nil, fmt.Errorf("%s: serialize: %w", op, err)
	}

	return out, nil
}

func (e *Engine) drawAnnotation(doc *gopdf.GoPdf, x, y float64, meta SignerMeta) {
	if err := doc.SetFont(annotationFont, "", annotationFontSize); err != nil {
		return
	}

	doc.SetTextColor(130, 130, 130)
	doc.SetXY(x, y)

	line := fmt.Sprintf("Signed by %s (%s) on %s UTC", meta.Name, meta.Email, meta.SignedAt.UTC().Format("2006-01-02"))

	_ = doc.Cell(nil, line)
}

// openImporter parses the document. gofpdi reports malformed input by
// panicking; callers must install recoverCorrupt before the first use of
// the returned importer.
func openImporter(op string, pdfBytes []byte) (*gofpdi.Importer, error) {
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF-")) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrCorruptDocument)
	}

	var rs io.ReadSeeker = bytes.NewReader(pdfBytes)

	imp := gofpdi.NewImporter()
	imp.SetSourceStream(&rs)

	return imp, nil
}

func recoverCorrupt(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: parse: %v: %w", op, r, models.ErrCorruptDocument)
	}
}

func pageRect(sizes map[int]map[string]map[string]float64, page int) *gopdf.Rect {
	if box, ok := sizes[page]["/MediaBox"]; ok && box["w"] > 0 && box["h"] > 0 {
		return &gopdf.Rect{W: box["w"], H: box["h"]}
	}

	return gopdf.PageSizeA4
}
