package export

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mrsinham/healthsurvey/internal/present"
)

// Page geometry in pixels.
const (
	PageWidth  = 640
	margin     = 24
	lineHeight = 17
	glyphWidth = 7 // basicfont.Face7x13 advance
)

// RenderPage draws the view as black text on a white grayscale page. The
// page grows vertically to fit every line.
func RenderPage(view present.View) *image.Gray {
	lines := wrap(view.Lines(), (PageWidth-2*margin)/glyphWidth)
	height := 2*margin + len(lines)*lineHeight

	img := image.NewGray(image.Rect(0, 0, PageWidth, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		// Baseline sits 13px below the top of each line box.
		drawer.Dot = fixed.P(margin, margin+i*lineHeight+13)
		drawer.DrawString(line)
	}
	return img
}

// wrap breaks lines longer than width characters on spaces. Words longer
// than width are cut.
func wrap(lines []string, width int) []string {
	var out []string
	for _, line := range lines {
		if len(line) <= width {
			out = append(out, line)
			continue
		}
		var cur strings.Builder
		for _, word := range strings.Fields(line) {
			for len(word) > width {
				if cur.Len() > 0 {
					out = append(out, cur.String())
					cur.Reset()
				}
				out = append(out, word[:width])
				word = word[width:]
			}
			if cur.Len() > 0 && cur.Len()+1+len(word) > width {
				out = append(out, cur.String())
				cur.Reset()
			}
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(word)
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		}
	}
	return out
}
