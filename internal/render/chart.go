package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/kakunje/prakriti/internal/assessment"
	q "github.com/kakunje/prakriti/internal/questionnaire"
)

// Chart dimensions in pixels.
const (
	ChartWidth  = 720
	ChartHeight = 400
)

const (
	chartMargin = 48.0
	barWidth    = 56.0
)

var (
	constitutionColor = color.RGBA{R: 0x3b, G: 0x6e, B: 0x8f, A: 0xff}
	stateColor        = color.RGBA{R: 0xd9, G: 0x8c, B: 0x3f, A: 0xff}
	axisColor         = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

// Chart draws the Prakriti and Vikriti distributions as grouped bars and
// writes a PNG.
func Chart(w io.Writer, r *assessment.Report) error {
	dc := gg.NewContext(ChartWidth, ChartHeight)
	dc.SetColor(color.White)
	dc.Clear()

	plotH := float64(ChartHeight) - 2*chartMargin
	baseY := float64(ChartHeight) - chartMargin
	groupW := (float64(ChartWidth) - 2*chartMargin) / float64(len(q.Categories))

	// Grid at 25% steps.
	dc.SetColor(color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	dc.SetLineWidth(1)
	for pct := 25.0; pct <= 100; pct += 25 {
		y := baseY - pct/100*plotH
		dc.DrawLine(chartMargin, y, float64(ChartWidth)-chartMargin, y)
		dc.Stroke()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f%%", pct), chartMargin-6, y, 1, 0.5)
		dc.SetColor(color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	}

	for i, c := range q.Categories {
		cx := chartMargin + groupW*(float64(i)+0.5)
		drawBar(dc, cx-barWidth-4, baseY, plotH, r.Constitution[c], constitutionColor)
		drawBar(dc, cx+4, baseY, plotH, r.State[c], stateColor)

		dc.SetColor(axisColor)
		dc.DrawStringAnchored(c.String(), cx, baseY+16, 0.5, 0.5)
	}

	dc.SetColor(axisColor)
	dc.SetLineWidth(2)
	dc.DrawLine(chartMargin, baseY, float64(ChartWidth)-chartMargin, baseY)
	dc.Stroke()

	drawLegend(dc)
	dc.DrawStringAnchored(fmt.Sprintf("%s: Prakriti vs Vikriti", r.DisplayName()), float64(ChartWidth)/2, chartMargin/2, 0.5, 0.5)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawBar(dc *gg.Context, x, baseY, plotH, pct float64, c color.Color) {
	h := pct / 100 * plotH
	dc.SetColor(c)
	dc.DrawRectangle(x, baseY-h, barWidth, h)
	dc.Fill()

	dc.SetColor(axisColor)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", pct), x+barWidth/2, baseY-h-8, 0.5, 0.5)
}

func drawLegend(dc *gg.Context) {
	x := float64(ChartWidth) - chartMargin - 150
	y := chartMargin / 2
	for _, entry := range []struct {
		label string
		c     color.Color
	}{{"Prakriti", constitutionColor}, {"Vikriti", stateColor}} {
		dc.SetColor(entry.c)
		dc.DrawRectangle(x, y-5, 10, 10)
		dc.Fill()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(entry.label, x+16, y, 0, 0.5)
		x += 80
	}
}
