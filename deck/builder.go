package deck

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

const (
	defaultDPI = 200

	colorHeading1 = "FF1E40AF"
	colorHeading2 = "FF3B82F6"
	colorHeading3 = "FF475569"
	colorBody     = "FF334155"
)

// Option configures a Builder.
type Option func(*Builder)

// WithDPI sets the raster resolution for figure placeholders.
func WithDPI(dpi int) Option {
	return func(b *Builder) {
		if dpi > 0 {
			b.dpi = dpi
		}
	}
}

// WithColorMap sets the cell-value color map: table cells whose
// rendered text exactly matches a key are colored with its ARGB value.
func WithColorMap(m map[string]string) Option {
	return func(b *Builder) {
		b.colorMap = m
	}
}

// WithLogger injects a line logger.
func WithLogger(logger func(string)) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithProperties sets the document title and creator.
func WithProperties(title, creator string) Option {
	return func(b *Builder) {
		b.docTitle = title
		b.docCreator = creator
	}
}

// Builder compiles content slides into a presentation. It must be
// created with NewBuilder; afterwards Build compiles slides and SaveTo
// writes the deck to a file.
type Builder struct {
	tpl        *Template
	pres       *ppt.Presentation
	dpi        int
	colorMap   map[string]string
	logger     func(string)
	docTitle   string
	docCreator string

	tables     []*Table
	slideCount int
}

// NewBuilder creates a Builder over a validated template.
func NewBuilder(tpl *Template, opts ...Option) *Builder {
	b := &Builder{
		tpl:        tpl,
		pres:       ppt.New(),
		dpi:        defaultDPI,
		docTitle:   tpl.Name,
		docCreator: "deckgen",
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.docTitle == "" {
		b.docTitle = "Presentation"
	}
	b.pres.GetDocumentProperties().Title = b.docTitle
	b.pres.GetDocumentProperties().Creator = b.docCreator
	return b
}

// Layouts lists the layout names available in the builder's template.
func (b *Builder) Layouts() []string {
	return b.tpl.LayoutNames()
}

// Tables returns every table placed so far, in placement order.
func (b *Builder) Tables() []*Table {
	return b.tables
}

// Build compiles a set of content slides into the presentation.
// Slides are appended in order; it may be called more than once.
func (b *Builder) Build(slides []Slide) error {
	for i := range slides {
		if err := b.buildSlide(&slides[i]); err != nil {
			name := slides[i].Name
			if name == "" {
				name = fmt.Sprintf("#%d", b.slideCount+1)
			}
			return fmt.Errorf("slide %s: %w", name, err)
		}
	}
	return nil
}

func (b *Builder) buildSlide(sl *Slide) error {
	layout := b.tpl.Layout(sl.Layout)
	if layout == nil {
		return fmt.Errorf("slide layout %q does not exist in this template, available layouts are: %s",
			sl.Layout, strings.Join(b.tpl.LayoutNames(), ", "))
	}

	slide := b.nextSlide()
	b.paintFurniture(slide, layout)

	if sl.Title != "" {
		if ph := layout.title(); ph != nil {
			b.putText(slide, layout, ph, sl.Title)
		} else {
			b.logf("slide %s: layout %s has no title placeholder, title dropped", sl.Name, layout.Name)
		}
	}

	// Sorted so compile order (and any compile error) is stable.
	names := make([]string, 0, len(sl.Placeholders))
	for name := range sl.Placeholders {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ph := layout.Placeholder(name)
		if ph == nil {
			return fmt.Errorf("placeholder %q is unknown in layout %q, available placeholders are: %s",
				name, layout.Name, strings.Join(layout.PlaceholderNames(), ", "))
		}
		if err := b.putValue(slide, layout, ph, sl.Placeholders[name]); err != nil {
			return err
		}
	}

	b.slideCount++
	return nil
}

// nextSlide reuses the presentation's initial slide for the first deck
// slide, then appends.
func (b *Builder) nextSlide() *ppt.Slide {
	if b.slideCount == 0 {
		return b.pres.GetActiveSlide()
	}
	return b.pres.CreateSlide()
}

// paintFurniture paints the layout background and accent bars.
func (b *Builder) paintFurniture(slide *ppt.Slide, layout *Layout) {
	slideW := inchesToEMU(b.tpl.WidthIn)
	slideH := inchesToEMU(b.tpl.HeightIn)

	if layout.Background != "" {
		bg := slide.CreateRichTextShape()
		bg.SetOffsetX(0).SetOffsetY(0)
		bg.SetWidth(slideW).SetHeight(slideH)
		bg.SetFill(solidFill(layout.Background))
	}
	if layout.Accent != "" {
		topBar := slide.CreateRichTextShape()
		topBar.SetOffsetX(0).SetOffsetY(0)
		topBar.SetWidth(slideW).SetHeight(inchesToEMU(0.08))
		topBar.SetFill(solidFill(layout.Accent))
	}
}

// putValue dispatches a placeholder value on its dynamic type.
func (b *Builder) putValue(slide *ppt.Slide, layout *Layout, ph *Placeholder, value any) error {
	switch v := value.(type) {
	case string:
		b.putText(slide, layout, ph, v)
		return nil
	case []byte:
		return b.putImageBytes(slide, ph, v)
	case Image:
		return b.putImageFile(slide, ph, v)
	case *Image:
		return b.putImageFile(slide, ph, *v)
	case Figure:
		return b.putFigure(slide, ph, v)
	case *Table:
		return b.putTable(slide, layout, ph, v)
	default:
		return fmt.Errorf("no renderer for a value of type %T on placeholder %q (supported: string, []byte, deck.Image, deck.Figure, *deck.Table)",
			value, ph.Name)
	}
}

// putText fills a placeholder with markdown-lite text. Lines are
// wrapped to the placeholder width and styled per heading level.
func (b *Builder) putText(slide *ppt.Slide, layout *Layout, ph *Placeholder, text string) {
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(inchesToEMU(ph.X)).SetOffsetY(inchesToEMU(ph.Y))
	shape.SetWidth(inchesToEMU(ph.W)).SetHeight(inchesToEMU(ph.H))
	if ph.Fill != "" {
		shape.SetFill(solidFill(ph.Fill))
	}

	bodySize := ph.FontSize
	if bodySize <= 0 {
		bodySize = b.tpl.FontSize
	}
	bodyColor := ph.Color
	if bodyColor == "" {
		bodyColor = colorBody
	}
	// Roughly 9 characters per inch at body size.
	maxLen := int(ph.W * 9)
	if maxLen < 16 {
		maxLen = 16
	}

	first := true
	for _, rawLine := range strings.Split(text, "\n") {
		for _, line := range wrapText(rawLine, maxLen) {
			if !first {
				shape.CreateParagraph()
			}
			first = false

			if strings.TrimSpace(line) == "" {
				tr := shape.CreateTextRun(" ")
				tr.GetFont().SetSize(6)
				continue
			}

			format := parseLine(line)
			tr := shape.CreateTextRun(format.text)
			switch format.isHeading {
			case 1:
				tr.GetFont().SetSize(bodySize + 4).SetBold(true).SetColor(ppt.NewColor(colorHeading1))
			case 2:
				tr.GetFont().SetSize(bodySize + 2).SetBold(true).SetColor(ppt.NewColor(colorHeading2))
			case 3, 4:
				tr.GetFont().SetSize(bodySize).SetBold(true).SetColor(ppt.NewColor(colorHeading3))
			default:
				tr.GetFont().SetSize(bodySize).SetBold(ph.Bold).SetColor(ppt.NewColor(bodyColor))
			}
			alignTo(shape.GetActiveParagraph(), ph.Align)
		}
	}
}

// putFigure rasterizes a figure at the placeholder size times DPI.
func (b *Builder) putFigure(slide *ppt.Slide, ph *Placeholder, fig Figure) error {
	widthPx := int(ph.W * float64(b.dpi))
	heightPx := int(ph.H * float64(b.dpi))
	b.logf("figure size (placeholder %s): %dx%d px at %d dpi", ph.Name, widthPx, heightPx, b.dpi)

	png, err := fig.RenderPNG(widthPx, heightPx)
	if err != nil {
		return fmt.Errorf("failed to render figure for placeholder %q: %w", ph.Name, err)
	}
	return b.placeImage(slide, ph, png)
}

// putImageFile inserts a picture from a file.
func (b *Builder) putImageFile(slide *ppt.Slide, ph *Placeholder, img Image) error {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return fmt.Errorf("failed to read image for placeholder %q: %w", ph.Name, err)
	}
	return b.placeImage(slide, ph, data)
}

// putImageBytes inserts a picture from raw bytes (animated GIFs come
// through here).
func (b *Builder) putImageBytes(slide *ppt.Slide, ph *Placeholder, data []byte) error {
	return b.placeImage(slide, ph, data)
}

func (b *Builder) placeImage(slide *ppt.Slide, ph *Placeholder, data []byte) error {
	mime, err := sniffImageMime(data)
	if err != nil {
		return fmt.Errorf("placeholder %q: %w", ph.Name, err)
	}
	shape := slide.CreateDrawingShape()
	shape.SetImageData(data, mime)
	shape.SetOffsetX(inchesToEMU(ph.X)).SetOffsetY(inchesToEMU(ph.Y))
	shape.SetWidth(inchesToEMU(ph.W)).SetHeight(inchesToEMU(ph.H))
	return nil
}

// Bytes serializes the presentation as a pptx document.
func (b *Builder) Bytes() ([]byte, error) {
	w, err := ppt.NewWriter(b.pres, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create pptx writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePreviews renders every compiled slide to an image file. The
// pattern must contain %d for the 1-based slide number, e.g.
// "preview/slide_%d.png".
func (b *Builder) SavePreviews(pattern string, widthPx int) error {
	opts := ppt.DefaultRenderOptions()
	if widthPx > 0 {
		opts.Width = widthPx
	}
	if err := b.pres.SaveSlidesAsImages(pattern, opts); err != nil {
		return fmt.Errorf("failed to render slide previews: %w", err)
	}
	b.logf("previews saved: %s (%d slides)", pattern, b.slideCount)
	return nil
}

// SaveTo writes the compiled deck to a file.
func (b *Builder) SaveTo(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write deck to %s: %w", path, err)
	}
	b.logf("deck saved: %s (%d slides, %d bytes)", path, b.slideCount, len(data))
	return nil
}

func (b *Builder) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger(fmt.Sprintf(format, args...))
	}
}

// sniffImageMime recognizes the image formats the writer accepts.
func sniffImageMime(data []byte) (string, error) {
	switch {
	case len(data) >= 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png", nil
	case len(data) >= 3 && bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return "image/jpeg", nil
	case len(data) >= 6 && (bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))):
		return "image/gif", nil
	case len(data) == 0:
		return "", fmt.Errorf("empty image data")
	default:
		return "", fmt.Errorf("unrecognized image format")
	}
}

func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

func alignTo(p *ppt.Paragraph, align string) {
	switch align {
	case "center":
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
	case "right":
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
	}
}
