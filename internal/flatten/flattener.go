package flatten

import (
	"bytes"
	"fmt"
	"log"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

const (
	textFont      = "Helvetica"
	typedSigFont  = "Helvetica-Oblique"
	checkboxMark  = "X"
	checkboxPoint = 14
)

// Flattener draws bound field values onto the original document bytes,
// producing a new complete document. The original bytes are never mutated.
type Flattener struct {
	conf *model.Configuration
}

// NewFlattener creates a flattener with relaxed validation, matching how
// uploads are read elsewhere.
func NewFlattener() *Flattener {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Flattener{conf: conf}
}

// Report summarizes a flattening run. Fields that failed to flatten are
// skipped with their reason; a single bad payload never aborts the rest.
type Report struct {
	Flattened []string `json:"flattened"`
	Skipped   []string `json:"skipped,omitempty"`
}

// Flatten walks the fields in z-order and stamps each completed value onto
// its page, converting the stored top-down percentages into the page's
// native bottom-left coordinates.
func (fl *Flattener) Flatten(original []byte, fields []signing.Field, values map[string]signing.Value) ([]byte, *Report, error) {
	if len(original) == 0 {
		return nil, nil, fmt.Errorf("no document bytes to flatten")
	}

	ctx, err := api.ReadContext(bytes.NewReader(original), fl.conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure page count: %w", err)
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	report := &Report{}
	current := original
	for _, f := range fields {
		if !f.Completed {
			continue
		}
		v, ok := values[f.ID]
		if !ok {
			// completed with no value is a latent defect; skip, don't abort
			report.Skipped = append(report.Skipped, fmt.Sprintf("%s: completed field has no value", f.ID))
			continue
		}
		if f.Page < 1 || f.Page > len(dims) {
			report.Skipped = append(report.Skipped, fmt.Sprintf("%s: page %d out of range", f.ID, f.Page))
			continue
		}

		out, err := fl.stampField(current, f, v, dims[f.Page-1])
		if err != nil {
			log.Printf("flatten: skipping field %s: %v", f.ID, err)
			report.Skipped = append(report.Skipped, fmt.Sprintf("%s: %v", f.ID, err))
			continue
		}
		current = out
		report.Flattened = append(report.Flattened, f.ID)
	}

	return current, report, nil
}

// stampField applies one field value as a watermark on its page and
// returns the rewritten document.
func (fl *Flattener) stampField(doc []byte, f signing.Field, v signing.Value, dim types.Dim) ([]byte, error) {
	var wm *model.Watermark
	var err error

	switch v.Kind {
	case signing.KindSignature:
		if v.Modality == signing.ModalityType {
			wm, err = fl.textWatermark(v.Payload, typedSigFont, f, dim)
		} else {
			wm, err = fl.imageWatermark(v.Payload, f, dim)
		}
	case signing.KindDate:
		wm, err = fl.textWatermark(v.Date, textFont, f, dim)
	case signing.KindText:
		wm, err = fl.textWatermark(v.Text, textFont, f, dim)
	case signing.KindCheckbox:
		if !v.Checked {
			return doc, nil
		}
		wm, err = fl.checkboxWatermark(f, dim)
	default:
		return nil, fmt.Errorf("unknown value kind %q", v.Kind)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	pages := []string{strconv.Itoa(f.Page)}
	if err := api.AddWatermarks(bytes.NewReader(doc), &buf, pages, wm, fl.conf); err != nil {
		return nil, fmt.Errorf("stamping page %d: %w", f.Page, err)
	}
	return buf.Bytes(), nil
}

func (fl *Flattener) textWatermark(text, fontName string, f signing.Field, dim types.Dim) (*model.Watermark, error) {
	if !font.SupportedFont(fontName) {
		fontName = textFont
	}
	maxWidth := MaxImageWidthFrac * dim.Width
	size := FitFontSize(text, fontName, maxWidth, DefaultFontSize)

	x, y := TextOrigin(f.X, f.Y, dim.Width, dim.Height, float64(size))
	desc := fmt.Sprintf("fontname:%s, points:%d, scale:1 abs, pos:bl, off:%.2f %.2f, rot:0, opacity:1",
		fontName, size, x, y)
	return api.TextWatermark(text, desc, true, false, types.POINTS)
}

func (fl *Flattener) imageWatermark(payload string, f signing.Field, dim types.Dim) (*model.Watermark, error) {
	data, err := DecodeImagePayload(payload)
	if err != nil {
		return nil, err
	}
	w, _, err := ImageSize(data)
	if err != nil {
		return nil, err
	}

	scale := ImageScale(float64(w), dim.Width, MaxImageWidthFrac)
	x, y := ImageOrigin(f.X, f.Y, dim.Width, dim.Height)
	desc := fmt.Sprintf("pos:bl, off:%.2f %.2f, scale:%.4f abs, rot:0, opacity:1", x, y, scale)
	return api.ImageWatermarkForReader(bytes.NewReader(data), desc, true, false, types.POINTS)
}

func (fl *Flattener) checkboxWatermark(f signing.Field, dim types.Dim) (*model.Watermark, error) {
	x, y := TextOrigin(f.X, f.Y, dim.Width, dim.Height, checkboxPoint)
	desc := fmt.Sprintf("fontname:%s, points:%d, scale:1 abs, pos:bl, off:%.2f %.2f, rot:0, opacity:1",
		textFont, checkboxPoint, x, y)
	return api.TextWatermark(checkboxMark, desc, true, false, types.POINTS)
}
