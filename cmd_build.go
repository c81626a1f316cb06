package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"deckgen/deck"
	"deckgen/export"
	"deckgen/manifest"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		output     string
		tablesXLSX string
		dpi        int
		font       string
	)

	cmd := &cobra.Command{
		Use:   "build <manifest.yaml>",
		Short: "Compile a deck manifest into a pptx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := args[0]

			defaults := manifest.Defaults{
				Template: a.cfg.DefaultTemplate,
				Font:     a.cfg.FontPath,
				DPI:      a.cfg.DPI,
				ColorMap: a.cfg.ColorMap,
			}
			if dpi > 0 {
				defaults.DPI = dpi
			}
			if font != "" {
				defaults.Font = font
			}

			d, err := manifest.LoadWithDefaults(manifestPath, defaults)
			if err != nil {
				return err
			}

			builder := deck.NewBuilder(d.Template, append(d.Options, deck.WithLogger(a.logf))...)
			if err := builder.Build(d.Slides); err != nil {
				return WrapOperationError("build deck", err)
			}

			if output == "" {
				output = deckOutputPath(a, manifestPath)
			}
			if err := builder.SaveTo(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deck written: %s (%d slides)\n", output, len(d.Slides))

			if tablesXLSX != "" {
				tables := builder.Tables()
				if len(tables) == 0 {
					a.logf("no tables in deck, skipping " + tablesXLSX)
					return nil
				}
				data, err := export.NewExcelService().ExportTablesToExcel(tables)
				if err != nil {
					return WrapOperationError("export tables workbook", err)
				}
				if err := os.WriteFile(tablesXLSX, data, 0644); err != nil {
					return WrapOperationError("write tables workbook", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "tables workbook written: %s (%d sheets)\n", tablesXLSX, len(tables))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output pptx path (default: manifest name)")
	cmd.Flags().StringVar(&tablesXLSX, "tables-xlsx", "", "also write the deck's tables as an Excel workbook")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "figure raster resolution (overrides config)")
	cmd.Flags().StringVar(&font, "font", "", "TrueType font for chart labels (overrides config)")
	return cmd
}

// deckOutputPath derives the output path from the manifest name,
// honoring the configured output directory.
func deckOutputPath(a *app, manifestPath string) string {
	base := filepath.Base(manifestPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".pptx"
	if a.cfg.OutputDir != "" {
		return filepath.Join(a.cfg.OutputDir, name)
	}
	return name
}
