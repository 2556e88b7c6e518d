package report

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/tuumbleweed/xerr"
)

// logoPixelWidth keeps embedded logos small; the PDF draws them 30mm wide.
const logoPixelWidth = 360

/*
loadLogo opens the logo image (any format imaging can decode), scales it down
to logoPixelWidth when it is wider and returns it encoded as PNG, along with
its height to width ratio.
*/
func loadLogo(logoPath string) (pngBytes []byte, aspect float64, e *xerr.Error) {
	img, openErr := imaging.Open(logoPath, imaging.AutoOrientation(true))
	if openErr != nil {
		e = xerr.NewError(openErr, "open logo image", logoPath)
		return nil, 0, e
	}
	if img.Bounds().Dx() == 0 {
		err := fmt.Errorf("image has no width")
		e = xerr.NewError(err, "open logo image", logoPath)
		return nil, 0, e
	}

	if img.Bounds().Dx() > logoPixelWidth {
		img = imaging.Resize(img, logoPixelWidth, 0, imaging.Lanczos)
	}

	var buffer bytes.Buffer
	encodeErr := imaging.Encode(&buffer, img, imaging.PNG)
	if encodeErr != nil {
		e = xerr.NewError(encodeErr, "encode logo as PNG", logoPath)
		return nil, 0, e
	}

	aspect = float64(img.Bounds().Dy()) / float64(img.Bounds().Dx())
	return buffer.Bytes(), aspect, e
}
