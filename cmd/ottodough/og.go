package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottodough/internal/content"
	"github.com/hammamikhairi/ottodough/internal/ogimage"
)

var (
	ogContentDir string
	ogOutDir     string
	ogFont       string
	ogAuthor     string
)

var ogCmd = &cobra.Command{
	Use:   "og",
	Short: "Generate OpenGraph images for site content",
	Long: `Reads every project and post under the content directory and writes
<out>/<collection>/<slug>/og.png for each. Entries that fail are
reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runOG,
}

func init() {
	ogCmd.Flags().StringVar(&ogContentDir, "content", "", "content directory (default from config)")
	ogCmd.Flags().StringVar(&ogOutDir, "out", "", "output directory (default from config)")
	ogCmd.Flags().StringVar(&ogFont, "font", "", "TTF/OTF font file (default: built-in bitmap font)")
	ogCmd.Flags().StringVar(&ogAuthor, "author", "", "author line (default from config)")
}

func runOG(cmd *cobra.Command, args []string) error {
	site := cfg.Site
	if ogContentDir != "" {
		site.ContentDir = ogContentDir
	}
	if ogOutDir != "" {
		site.OutDir = ogOutDir
	}
	if ogFont != "" {
		site.Font = ogFont
	}
	if ogAuthor != "" {
		site.Author = ogAuthor
	}

	var opts []ogimage.Option
	if site.Font != "" {
		data, err := os.ReadFile(site.Font)
		if err != nil {
			return fmt.Errorf("reading font: %w", err)
		}
		opts = append(opts, ogimage.WithFont(data))
	}
	renderer, err := ogimage.NewRenderer(opts...)
	if err != nil {
		return err
	}

	items, loadErr := content.LoadAll(site.ContentDir)
	if loadErr != nil {
		log.Warn("loading content: %v", loadErr)
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", loadErr)
	}

	gen := ogimage.NewGenerator(renderer, site.Author, log)
	n, genErr := gen.Generate(cmd.Context(), items, site.OutDir)
	fmt.Fprintf(cmd.OutOrStdout(), "og: generated %d/%d images in %s\n", n, len(items), site.OutDir)
	if genErr != nil {
		return fmt.Errorf("og image generation failed: %w", genErr)
	}
	return nil
}
