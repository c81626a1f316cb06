package chart

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/gg"
)

const (
	marginRight  = 24.0
	marginLeft   = 64.0
	marginBottom = 44.0
	titleSpace   = 40.0

	labelFontPt = 12.0
	titleFontPt = 16.0

	frameColor = "FFCBD5E1"
	gridColor  = "FFE2E8F0"
	textColor  = "FF334155"
)

// RenderPNG rasterizes the figure at the given pixel size. It
// satisfies the deck.Figure interface.
func (f *Figure) RenderPNG(widthPx, heightPx int) ([]byte, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("figure size must be positive, got %dx%d", widthPx, heightPx)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	p := &plot{dc: gg.NewContext(widthPx, heightPx), fig: f}
	defer p.dc.Close()

	p.setColor("FFFFFFFF")
	p.dc.DrawRectangle(0, 0, float64(widthPx), float64(heightPx))
	p.fill()

	if f.FontPath != "" {
		if err := p.dc.LoadFontFace(f.FontPath, labelFontPt); err != nil {
			return nil, fmt.Errorf("failed to load chart font %s: %w", f.FontPath, err)
		}
	}

	p.drawTitle(float64(widthPx))

	switch f.Kind {
	case Pie:
		p.drawPie(float64(widthPx), float64(heightPx))
	default:
		p.drawCartesian(float64(widthPx), float64(heightPx))
	}
	if p.err != nil {
		return nil, fmt.Errorf("failed to draw %s figure: %w", f.Kind, p.err)
	}

	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode figure: %w", err)
	}
	return buf.Bytes(), nil
}

// plot carries the drawing context and the first rasterizer error.
type plot struct {
	dc  *gg.Context
	fig *Figure
	err error
}

func (p *plot) fill() {
	if err := p.dc.Fill(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *plot) stroke() {
	if err := p.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}

// setColor accepts ARGB hex (e.g. FF3B82F6).
func (p *plot) setColor(argb string) {
	a, r, g, b := parseARGB(argb)
	p.dc.SetRGBA(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}

func parseARGB(s string) (a, r, g, b uint8) {
	if len(s) == 6 {
		s = "FF" + s
	}
	if len(s) != 8 {
		return 255, 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 255, 0, 0, 0
	}
	return uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)
}

func (p *plot) topMargin() float64 {
	if p.fig.Title != "" {
		return titleSpace
	}
	return 16
}

func (p *plot) drawTitle(w float64) {
	if p.fig.Title == "" {
		return
	}
	if p.fig.FontPath != "" {
		if err := p.dc.LoadFontFace(p.fig.FontPath, titleFontPt); err == nil {
			defer p.dc.LoadFontFace(p.fig.FontPath, labelFontPt)
		}
	}
	p.setColor(textColor)
	p.dc.DrawStringAnchored(p.fig.Title, w/2, titleSpace/2, 0.5, 0.5)
}

// dataRange computes the y range across all series, honoring explicit
// bounds. Bars are anchored at zero.
func (p *plot) dataRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range p.fig.Series {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if p.fig.Kind == Bar {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}
	if p.fig.YMin != nil {
		lo = *p.fig.YMin
	}
	if p.fig.YMax != nil {
		hi = *p.fig.YMax
	}
	if hi == lo {
		hi = lo + 1
	}
	// Headroom above the tallest value.
	pad := (hi - lo) * 0.05
	if p.fig.YMin == nil {
		lo -= pad
	}
	if p.fig.YMax == nil {
		hi += pad
	}
	return lo, hi
}

func (p *plot) drawCartesian(w, h float64) {
	top := p.topMargin()
	px, py := marginLeft, top
	pw, ph := w-marginLeft-marginRight, h-top-marginBottom
	if pw <= 0 || ph <= 0 {
		p.err = fmt.Errorf("figure too small for plot area")
		return
	}

	lo, hi := p.dataRange()
	yToPx := func(v float64) float64 {
		return py + ph - (v-lo)/(hi-lo)*ph
	}

	// Horizontal gridlines with tick labels.
	const ticks = 5
	p.dc.SetLineWidth(1)
	for i := 0; i <= ticks; i++ {
		v := lo + (hi-lo)*float64(i)/ticks
		y := yToPx(v)
		p.setColor(gridColor)
		p.dc.DrawLine(px, y, px+pw, y)
		p.stroke()
		p.setColor(textColor)
		p.dc.DrawStringAnchored(formatTick(v), px-8, y, 1, 0.5)
	}

	// Plot frame.
	p.setColor(frameColor)
	p.dc.DrawRectangle(px, py, pw, ph)
	p.stroke()

	n := p.pointCount()
	switch p.fig.Kind {
	case Bar:
		p.drawBars(px, pw, yToPx, n)
	case Line:
		p.drawLines(px, pw, yToPx, n, true)
	case Scatter:
		p.drawLines(px, pw, yToPx, n, false)
	}

	p.drawXLabels(px, pw, h, n)
	p.drawLegend(px+pw, py)
}

// pointCount is the longest series length.
func (p *plot) pointCount() int {
	n := 0
	for _, s := range p.fig.Series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	return n
}

func (p *plot) drawBars(px, pw float64, yToPx func(float64) float64, n int) {
	groups := float64(n)
	groupW := pw / groups
	// Bars fill 70% of the group, split across series.
	barW := groupW * 0.7 / float64(len(p.fig.Series))
	zero := yToPx(0)

	for si, s := range p.fig.Series {
		p.setColor(p.fig.seriesColor(si))
		for i, v := range s.Values {
			x := px + float64(i)*groupW + groupW*0.15 + float64(si)*barW
			y := yToPx(v)
			top, bottom := y, zero
			if v < 0 {
				top, bottom = zero, y
			}
			p.dc.DrawRectangle(x, top, barW, bottom-top)
			p.fill()
		}
	}
}

func (p *plot) drawLines(px, pw float64, yToPx func(float64) float64, n int, connect bool) {
	step := pw
	if n > 1 {
		step = pw / float64(n-1)
	}
	for si, s := range p.fig.Series {
		p.setColor(p.fig.seriesColor(si))
		if connect && len(s.Values) > 1 {
			p.dc.SetLineWidth(2)
			for i, v := range s.Values {
				x := px + float64(i)*step
				if i == 0 {
					p.dc.MoveTo(x, yToPx(v))
				} else {
					p.dc.LineTo(x, yToPx(v))
				}
			}
			p.stroke()
		}
		for i, v := range s.Values {
			p.dc.DrawCircle(px+float64(i)*step, yToPx(v), 3)
			p.fill()
		}
	}
}

func (p *plot) drawXLabels(px, pw, h float64, n int) {
	if len(p.fig.XLabels) == 0 {
		return
	}
	p.setColor(textColor)
	for i, label := range p.fig.XLabels {
		if i >= n {
			break
		}
		var x float64
		if p.fig.Kind == Bar {
			x = px + (float64(i)+0.5)*pw/float64(n)
		} else if n > 1 {
			x = px + float64(i)*pw/float64(n-1)
		} else {
			x = px + pw/2
		}
		p.dc.DrawStringAnchored(label, x, h-marginBottom/2, 0.5, 0.5)
	}
}

func (p *plot) drawLegend(right, top float64) {
	named := 0
	for _, s := range p.fig.Series {
		if s.Name != "" {
			named++
		}
	}
	if named < 2 {
		return
	}
	y := top + 10
	for si, s := range p.fig.Series {
		if s.Name == "" {
			continue
		}
		tw, _ := p.dc.MeasureString(s.Name)
		x := right - tw - 26
		p.setColor(p.fig.seriesColor(si))
		p.dc.DrawRectangle(x, y-5, 10, 10)
		p.fill()
		p.setColor(textColor)
		p.dc.DrawStringAnchored(s.Name, x+16, y, 0, 0.5)
		y += 18
	}
}

// drawPie renders the first series as wedges; remaining series are
// ignored. Labels come from XLabels.
func (p *plot) drawPie(w, h float64) {
	values := p.fig.Series[0].Values
	var total float64
	for _, v := range values {
		if v < 0 {
			p.err = fmt.Errorf("pie figure has negative value %g", v)
			return
		}
		total += v
	}
	if total == 0 {
		p.err = fmt.Errorf("pie figure sums to zero")
		return
	}

	top := p.topMargin()
	cx, cy := w/2, top+(h-top)/2
	r := math.Min(w, h-top)/2 - 24

	angle := -math.Pi / 2
	for i, v := range values {
		sweep := v / total * 2 * math.Pi
		p.setColor(sliceColor(i))
		p.dc.MoveTo(cx, cy)
		p.dc.DrawArc(cx, cy, r, angle, angle+sweep)
		p.dc.ClosePath()
		p.fill()

		// Label at the wedge midpoint, outside the rim.
		if i < len(p.fig.XLabels) {
			mid := angle + sweep/2
			lx := cx + math.Cos(mid)*(r+14)
			ly := cy + math.Sin(mid)*(r+14)
			p.setColor(textColor)
			p.dc.DrawStringAnchored(p.fig.XLabels[i], lx, ly, 0.5, 0.5)
		}
		angle += sweep
	}
}

func formatTick(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case math.Abs(v) >= 1e4:
		return strconv.FormatFloat(v/1e3, 'f', 0, 64) + "k"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
