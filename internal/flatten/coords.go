// Package flatten burns bound field values into the original PDF bytes at
// export time, converting page-relative percentages into the PDF's native
// bottom-left coordinate space.
package flatten

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// image decoders for signature payload sniffing
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/font"
)

const (
	// DefaultFontSize is the starting point size for flattened text.
	DefaultFontSize = 28
	// MinFontSize is the floor for the auto-shrink fit.
	MinFontSize = 6
	// MaxImageWidthFrac bounds a flattened signature image to this fraction
	// of the page width, preserving aspect ratio.
	MaxImageWidthFrac = 0.25
)

// TextOrigin converts a stored top-down percentage position to the
// bottom-left origin of drawn text. The stored y% is measured top-down
// (screen convention); PDF's origin is bottom-left, so the element height
// (the font size) is subtracted from the flipped anchor.
func TextOrigin(xPct, yPct, pageW, pageH, fontSize float64) (x, y float64) {
	x = xPct / 100 * pageW
	y = pageH - yPct/100*pageH - fontSize
	return x, y
}

// ImageOrigin converts a stored top-down percentage position to the
// bottom-left origin of a drawn image, anchored so the image's lower edge
// sits at the field's vertical position.
func ImageOrigin(xPct, yPct, pageW, pageH float64) (x, y float64) {
	x = xPct / 100 * pageW
	y = pageH - yPct/100*pageH
	return x, y
}

// ImageScale returns the proportional scale factor that fits an image of
// origWidth points into the bounded box of maxFrac of the page width.
func ImageScale(origWidth, pageW, maxFrac float64) float64 {
	if origWidth <= 0 || pageW <= 0 {
		return 1
	}
	return maxFrac * pageW / origWidth
}

// FitFontSize shrinks the base font size until the rendered text fits
// within maxWidth, never going below MinFontSize. Width measurement uses
// the core font metrics of the target font.
func FitFontSize(text, fontName string, maxWidth float64, base int) int {
	if base < MinFontSize {
		base = MinFontSize
	}
	for size := base; size > MinFontSize; size-- {
		if font.TextWidth(text, fontName, size) <= maxWidth {
			return size
		}
	}
	return MinFontSize
}

// DecodeImagePayload decodes a capture-surface image payload. Payloads
// arrive either as a bare base64 string or as a data URL
// ("data:image/png;base64,....").
func DecodeImagePayload(payload string) ([]byte, error) {
	if i := strings.Index(payload, "base64,"); i >= 0 {
		payload = payload[i+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}
	return data, nil
}

// ImageSize sniffs the pixel dimensions of an encoded image.
func ImageSize(data []byte) (w, h int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
