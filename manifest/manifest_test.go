package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckgen/chart"
	"deckgen/deck"
)

const testTemplateYAML = `
name: Test Deck
layouts:
  - name: Title
    placeholders:
      - name: Heading
        role: title
        x: 0.4
        y: 1.6
        w: 9.2
        h: 1.0
  - name: Content
    placeholders:
      - name: Body
        x: 0.4
        y: 1.0
        w: 9.2
        h: 4.3
      - name: Chart
        role: picture
        x: 0.5
        y: 1.0
        w: 9.0
        h: 4.2
      - name: Data
        role: table
        x: 0.4
        y: 1.0
        w: 9.2
        h: 4.0
`

// writeFixtures lays out a template, a csv source and a manifest in a
// temp dir and returns the manifest path.
func writeFixtures(t *testing.T, manifestYAML string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"template.yaml": testTemplateYAML,
		"sales.csv":     "Region,Revenue\nNorth,1200\nSouth,800\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(path, []byte(manifestYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testManifestYAML = `
template: template.yaml
title: Quarterly Review
dpi: 150
slides:
  - layout: Title
    title: Q2 Results
  - name: overview
    layout: Content
    placeholders:
      Body:
        text: |
          # Highlights
          - Revenue up
      Chart:
        chart:
          kind: bar
          title: Revenue
          xLabels: [North, South]
          series:
            - name: Revenue
              values: [1200, 800]
      Data:
        table:
          source: csv:sales.csv
`

func TestLoadManifest(t *testing.T) {
	path := writeFixtures(t, testManifestYAML)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Template == nil || d.Template.Name != "Test Deck" {
		t.Fatalf("template not resolved: %+v", d.Template)
	}
	if len(d.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(d.Slides))
	}
	if d.Slides[0].Name != "slide-1" || d.Slides[0].Title != "Q2 Results" {
		t.Errorf("slide 1 = %+v", d.Slides[0])
	}
	if d.Slides[1].Name != "overview" {
		t.Errorf("slide 2 name = %q", d.Slides[1].Name)
	}

	ph := d.Slides[1].Placeholders
	if text, ok := ph["Body"].(string); !ok || !strings.Contains(text, "# Highlights") {
		t.Errorf("Body = %#v", ph["Body"])
	}
	fig, ok := ph["Chart"].(*chart.Figure)
	if !ok {
		t.Fatalf("Chart = %#v", ph["Chart"])
	}
	if fig.Kind != chart.Bar || len(fig.Series) != 1 || fig.Series[0].Values[0] != 1200 {
		t.Errorf("figure = %+v", fig)
	}
	table, ok := ph["Data"].(*deck.Table)
	if !ok {
		t.Fatalf("Data = %#v", ph["Data"])
	}
	if table.Name != "sales" || len(table.Rows) != 2 {
		t.Errorf("table = %+v", table)
	}

	// The resolved deck compiles end to end.
	b := deck.NewBuilder(d.Template, d.Options...)
	if err := b.Build(d.Slides); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	raw, err := b.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("PK")) {
		t.Error("output is not a zip archive")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeFixtures(t, `
slides:
  - layout: Title
    title: Hello
`)
	d, err := LoadWithDefaults(path, Defaults{
		Template: "template.yaml",
		DPI:      120,
		ColorMap: map[string]string{"FAIL": "FFDC2626"},
	})
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if d.Template == nil {
		t.Fatal("default template not applied")
	}
	// DPI and colormap defaults surface as builder options.
	if len(d.Options) < 2 {
		t.Errorf("got %d options, want dpi and colormap", len(d.Options))
	}
}

func TestManifestValuesWinOverDefaults(t *testing.T) {
	var m Manifest
	m.Template = "mine.yaml"
	m.DPI = 300
	m.ColorMap = map[string]string{"OK": "FF16A34A"}
	m.applyDefaults(Defaults{
		Template: "default.yaml",
		DPI:      100,
		ColorMap: map[string]string{"OK": "FF000000", "FAIL": "FFDC2626"},
	})
	if m.Template != "mine.yaml" || m.DPI != 300 {
		t.Errorf("defaults overrode manifest: %+v", m)
	}
	if m.ColorMap["OK"] != "FF16A34A" || m.ColorMap["FAIL"] != "FFDC2626" {
		t.Errorf("colormap merge wrong: %v", m.ColorMap)
	}
}

func TestInlineTable(t *testing.T) {
	path := writeFixtures(t, `
template: template.yaml
slides:
  - layout: Content
    placeholders:
      Data:
        table:
          name: Totals
          indexNames: [""]
          columns: [Total]
          rows:
            - [North, 1200]
            - [South, 800]
`)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	table := d.Slides[0].Placeholders["Data"].(*deck.Table)
	if table.Name != "Totals" || table.ColumnCount() != 2 {
		t.Errorf("table = %+v", table)
	}
}

func TestManifestErrors(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			"no template",
			"slides:\n  - layout: Title\n",
			"names no template",
		},
		{
			"no slides",
			"template: template.yaml\n",
			"has no slides",
		},
		{
			"slide without layout",
			"template: template.yaml\nslides:\n  - title: Hi\n",
			"names no layout",
		},
		{
			"empty placeholder node",
			"template: template.yaml\nslides:\n  - layout: Content\n    placeholders:\n      Body: {}\n",
			"exactly one of",
		},
		{
			"source and inline rows",
			"template: template.yaml\nslides:\n  - layout: Content\n    placeholders:\n      Data:\n        table:\n          source: csv:sales.csv\n          columns: [A]\n",
			"both a source and inline rows",
		},
		{
			"inline table without columns",
			"template: template.yaml\nslides:\n  - layout: Content\n    placeholders:\n      Data:\n        table:\n          rows:\n            - [1]\n",
			"no columns",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFixtures(t, tc.yaml)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestResolveSourcePath(t *testing.T) {
	cases := []struct {
		spec string
		want string
	}{
		{"csv:data.csv", "csv:" + filepath.Join("base", "data.csv")},
		{"xls:book.xls#Sheet1", "xls:" + filepath.Join("base", "book.xls") + "#Sheet1"},
		{"sqlite:db.sqlite?query=SELECT 1", "sqlite:" + filepath.Join("base", "db.sqlite") + "?query=SELECT 1"},
		{"csv:/abs/data.csv", "csv:/abs/data.csv"},
	}
	for _, tc := range cases {
		if got := resolveSourcePath("base", tc.spec); got != tc.want {
			t.Errorf("resolveSourcePath(%q) = %q, want %q", tc.spec, got, tc.want)
		}
	}
}
