package deck

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubFigure renders a solid PNG at the requested size.
type stubFigure struct {
	fail bool
}

func (f stubFigure) RenderPNG(widthPx, heightPx int) ([]byte, error) {
	if f.fail {
		return nil, fmt.Errorf("render blew up")
	}
	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	for i := range img.Pix {
		img.Pix[i] = 0xE0
	}
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	data, err := stubFigure{}.RenderPNG(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func testSlides() []Slide {
	return []Slide{
		{
			Name:   "Opening",
			Layout: "Title",
			Title:  "Quarterly Review",
			Placeholders: map[string]any{
				"Subtitle": "# Welcome\nPrepared by the **data** team\n- revenue\n- growth",
			},
		},
		{
			Name:   "Numbers",
			Layout: "Content",
			Placeholders: map[string]any{
				"Chart": stubFigure{},
				"Data": &Table{
					Name:       "Sales",
					IndexNames: []string{"Region", ""},
					Columns:    []string{"Revenue", "Status"},
					Rows: [][]any{
						{"North", 1, 1234.5, "OK"},
						{"South", 2, 987, "FAIL"},
					},
				},
			},
		},
		{
			Name:   "Picture",
			Layout: "Content",
			Placeholders: map[string]any{
				"Body": []byte(nil),
			},
		},
	}
}

func TestBuildDeck(t *testing.T) {
	tpl := testTemplate(t)

	var logLines []string
	b := NewBuilder(tpl,
		WithDPI(100),
		WithColorMap(map[string]string{"FAIL": "FFDC2626"}),
		WithLogger(func(s string) { logLines = append(logLines, s) }),
		WithProperties("Quarterly Review", "deckgen-test"),
	)

	slides := testSlides()
	slides[2].Placeholders["Body"] = pngBytes(t, 40, 30)

	if err := b.Build(slides); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("deck is empty")
	}
	// pptx documents are zip containers.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("deck does not look like a zip container: % x", data[:4])
	}

	if got := b.Tables(); len(got) != 1 || got[0].Name != "Sales" {
		t.Errorf("Tables() = %v", got)
	}
	if len(logLines) == 0 {
		t.Error("builder logged nothing")
	}
	t.Logf("deck size: %d bytes, %d log lines", len(data), len(logLines))
}

func TestBuildSaveTo(t *testing.T) {
	tpl := testTemplate(t)
	b := NewBuilder(tpl)
	if err := b.Build([]Slide{{Name: "only", Layout: "Title", Title: "Hello"}}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := b.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("saved deck is empty")
	}
}

func TestBuildEmptyDeck(t *testing.T) {
	b := NewBuilder(testTemplate(t))
	if err := b.Build(nil); err != nil {
		t.Fatalf("empty Build failed: %v", err)
	}
	if _, err := b.Bytes(); err != nil {
		t.Fatalf("empty deck should still serialize: %v", err)
	}
}

func TestBuildTitleWithoutTitleRole(t *testing.T) {
	// The Content layout has no title placeholder; the title is
	// dropped, never an error.
	b := NewBuilder(testTemplate(t))
	err := b.Build([]Slide{{Layout: "Content", Title: "ignored"}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name    string
		slide   Slide
		wantErr []string
	}{
		{
			name:    "unknown layout",
			slide:   Slide{Name: "s", Layout: "Nope"},
			wantErr: []string{`"Nope"`, "available layouts", "Title", "Content"},
		},
		{
			name: "unknown placeholder",
			slide: Slide{Layout: "Title", Placeholders: map[string]any{
				"Nope": "text",
			}},
			wantErr: []string{`"Nope"`, "available placeholders", "Heading", "Subtitle"},
		},
		{
			name: "unsupported type",
			slide: Slide{Layout: "Title", Placeholders: map[string]any{
				"Subtitle": 42,
			}},
			wantErr: []string{"no renderer", "int", `"Subtitle"`},
		},
		{
			name: "figure render failure",
			slide: Slide{Layout: "Content", Placeholders: map[string]any{
				"Chart": stubFigure{fail: true},
			}},
			wantErr: []string{"render blew up"},
		},
		{
			name: "empty image bytes",
			slide: Slide{Layout: "Content", Placeholders: map[string]any{
				"Body": []byte{},
			}},
			wantErr: []string{"empty image data"},
		},
		{
			name: "garbage image bytes",
			slide: Slide{Layout: "Content", Placeholders: map[string]any{
				"Body": []byte("not an image"),
			}},
			wantErr: []string{"unrecognized image format"},
		},
		{
			name: "missing image file",
			slide: Slide{Layout: "Content", Placeholders: map[string]any{
				"Body": Image{Path: "/nonexistent/image.png"},
			}},
			wantErr: []string{"failed to read image"},
		},
		{
			name: "ragged table",
			slide: Slide{Layout: "Content", Placeholders: map[string]any{
				"Data": &Table{Columns: []string{"A", "B"}, Rows: [][]any{{1}}},
			}},
			wantErr: []string{"row 0 has 1 values, want 2"},
		},
		{
			name: "table without columns",
			slide: Slide{Layout: "Content", Placeholders: map[string]any{
				"Data": &Table{},
			}},
			wantErr: []string{"no columns"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(testTemplate(t))
			err := b.Build([]Slide{tc.slide})
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, want := range tc.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not contain %q", err, want)
				}
			}
		})
	}
}

func TestSniffImageMime(t *testing.T) {
	gif := []byte("GIF89a trailer")
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0}

	cases := []struct {
		data []byte
		want string
	}{
		{pngBytes(t, 2, 2), "image/png"},
		{jpeg, "image/jpeg"},
		{gif, "image/gif"},
		{[]byte("GIF87a x"), "image/gif"},
	}
	for _, tc := range cases {
		got, err := sniffImageMime(tc.data)
		if err != nil {
			t.Errorf("sniffImageMime failed: %v", err)
			continue
		}
		if got != tc.want {
			t.Errorf("sniffImageMime = %q, want %q", got, tc.want)
		}
	}

	if _, err := sniffImageMime(nil); err == nil {
		t.Error("nil data should fail")
	}
	if _, err := sniffImageMime([]byte("BM bitmap")); err == nil {
		t.Error("unsupported format should fail")
	}
}
