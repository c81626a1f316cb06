package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"deckgen/deck"
	"deckgen/manifest"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		dir   string
		width int
	)

	cmd := &cobra.Command{
		Use:   "preview <manifest.yaml>",
		Short: "Compile a manifest and render each slide to a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := manifest.Defaults{
				Template: a.cfg.DefaultTemplate,
				Font:     a.cfg.FontPath,
				DPI:      a.cfg.DPI,
				ColorMap: a.cfg.ColorMap,
			}
			d, err := manifest.LoadWithDefaults(args[0], defaults)
			if err != nil {
				return err
			}

			builder := deck.NewBuilder(d.Template, append(d.Options, deck.WithLogger(a.logf))...)
			if err := builder.Build(d.Slides); err != nil {
				return WrapOperationError("build deck", err)
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return WrapOperationError("create preview dir", err)
			}
			// Unique prefix so repeated previews never overwrite each other.
			prefix := uuid.NewString()[:8]
			pattern := filepath.Join(dir, fmt.Sprintf("slide_%s_%%d.png", prefix))
			if err := builder.SavePreviews(pattern, width); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "previews written: %s (%d slides)\n", pattern, len(d.Slides))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "preview", "directory for preview images")
	cmd.Flags().IntVar(&width, "width", 1280, "preview image width in pixels")
	return cmd
}
