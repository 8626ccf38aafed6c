package flatten

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestTextOriginFlipsToBottomLeft(t *testing.T) {
	// a text field at x=10%, y=20% on a US Letter page, font size 28:
	// x = 0.10*612, y = 792 - 0.20*792 - 28
	x, y := TextOrigin(10, 20, 612, 792, 28)
	assert.InDelta(t, 61.2, x, 1e-9)
	assert.InDelta(t, 605.6, y, 1e-9)
}

func TestTextOriginCorners(t *testing.T) {
	tests := []struct {
		name         string
		xPct, yPct   float64
		fontSize     float64
		wantX, wantY float64
	}{
		{"top-left", 0, 0, 12, 0, 780},
		{"bottom-left", 0, 100, 12, 0, -12},
		{"center", 50, 50, 20, 306, 376},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TextOrigin(tt.xPct, tt.yPct, 612, 792, tt.fontSize)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("TextOrigin() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestImageOriginAnchorsLowerEdge(t *testing.T) {
	x, y := ImageOrigin(50, 95, 612, 792)
	assert.InDelta(t, 306, x, 1e-9)
	assert.InDelta(t, 792-0.95*792, y, 1e-9)
}

func TestImageScale(t *testing.T) {
	// a 400pt wide image bounded to 25% of a 612pt page
	s := ImageScale(400, 612, 0.25)
	assert.InDelta(t, 0.3825, s, 1e-9)

	// degenerate inputs fall back to identity
	assert.Equal(t, 1.0, ImageScale(0, 612, 0.25))
	assert.Equal(t, 1.0, ImageScale(400, 0, 0.25))
}

func TestFitFontSize(t *testing.T) {
	t.Run("short text keeps the base size", func(t *testing.T) {
		size := FitFontSize("Jo", "Helvetica", 153, DefaultFontSize)
		assert.Equal(t, DefaultFontSize, size)
	})

	t.Run("long text shrinks to fit", func(t *testing.T) {
		size := FitFontSize("A rather long beneficiary name", "Helvetica", 100, DefaultFontSize)
		assert.Less(t, size, DefaultFontSize)
		assert.GreaterOrEqual(t, size, MinFontSize)
	})

	t.Run("never shrinks below the floor", func(t *testing.T) {
		size := FitFontSize("an absurdly long string that cannot possibly fit in ten points of width no matter what", "Helvetica", 10, DefaultFontSize)
		assert.Equal(t, MinFontSize, size)
	})
}

func TestDecodeImagePayload(t *testing.T) {
	t.Run("data URL", func(t *testing.T) {
		data, err := DecodeImagePayload("data:image/png;base64," + tinyPNG)
		require.NoError(t, err)
		w, h, err := ImageSize(data)
		require.NoError(t, err)
		assert.Equal(t, 1, w)
		assert.Equal(t, 1, h)
	})

	t.Run("bare base64", func(t *testing.T) {
		data, err := DecodeImagePayload(tinyPNG)
		require.NoError(t, err)
		_, _, err = ImageSize(data)
		assert.NoError(t, err)
	})

	t.Run("garbage payload", func(t *testing.T) {
		_, err := DecodeImagePayload("not base64 at all!!!")
		assert.Error(t, err)
	})

	t.Run("valid base64 but not an image", func(t *testing.T) {
		data, err := DecodeImagePayload("aGVsbG8gd29ybGQ=")
		require.NoError(t, err)
		_, _, err = ImageSize(data)
		assert.Error(t, err)
	})
}
