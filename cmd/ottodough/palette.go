package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/palette"
	"github.com/hammamikhairi/ottodough/internal/storage"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Manage saved color palettes",
	Long: `Palettes are named lists of colors kept in the local database.
Palettes and colors are addressed by list number, ID or name.`,
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List palettes",
	Args:  cobra.NoArgs,
	RunE: withPalettes(func(ctx context.Context, svc *palette.Service, cmd *cobra.Command, args []string) error {
		all, err := svc.List(ctx)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no palettes")
			return nil
		}
		for i, p := range all {
			printPalette(cmd, i+1, p)
		}
		return nil
	}),
}

var paletteCreateCmd = &cobra.Command{
	Use:   "create <name> [hex...]",
	Short: "Create a palette",
	Args:  cobra.MinimumNArgs(1),
	RunE: withPalettes(func(ctx context.Context, svc *palette.Service, cmd *cobra.Command, args []string) error {
		p, err := svc.Create(ctx, args[0], args[1:]...)
		if err != nil {
			return err
		}
		printPalette(cmd, 0, *p)
		return nil
	}),
}

var paletteRenameCmd = &cobra.Command{
	Use:   "rename <palette> <name>",
	Short: "Rename a palette",
	Args:  cobra.ExactArgs(2),
	RunE: withPalettes(func(ctx context.Context, svc *palette.Service, cmd *cobra.Command, args []string) error {
		p, err := svc.Rename(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		printPalette(cmd, 0, *p)
		return nil
	}),
}

var paletteDeleteCmd = &cobra.Command{
	Use:   "delete <palette>",
	Short: "Delete a palette",
	Args:  cobra.ExactArgs(1),
	RunE: withPalettes(func(ctx context.Context, svc *palette.Service, cmd *cobra.Command, args []string) error {
		return svc.Delete(ctx, args[0])
	}),
}

var paletteAddCmd = &cobra.Command{
	Use:   "add <palette> <hex>",
	Short: "Add a color to a palette",
	Args:  cobra.ExactArgs(2),
	RunE: withPalettes(func(ctx context.Context, svc *palette.Service, cmd *cobra.Command, args []string) error {
		p, err := svc.AddColor(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		printPalette(cmd, 0, *p)
		return nil
	}),
}

var paletteRemoveCmd = &cobra.Command{
	Use:   "remove <palette> <n|hex>",
	Short: "Remove a color from a palette",
	Args:  cobra.ExactArgs(2),
	RunE: withPalettes(func(ctx context.Context, svc *palette.Service, cmd *cobra.Command, args []string) error {
		p, err := svc.RemoveColor(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		printPalette(cmd, 0, *p)
		return nil
	}),
}

func init() {
	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteCreateCmd)
	paletteCmd.AddCommand(paletteRenameCmd)
	paletteCmd.AddCommand(paletteDeleteCmd)
	paletteCmd.AddCommand(paletteAddCmd)
	paletteCmd.AddCommand(paletteRemoveCmd)
}

type paletteRunFunc func(ctx context.Context, svc *palette.Service, cmd *cobra.Command, args []string) error

// withPalettes opens the configured database for the duration of one
// subcommand.
func withPalettes(fn paletteRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openPalettes()
		if err != nil {
			return err
		}
		defer closeDB()
		return fn(cmd.Context(), svc, cmd, args)
	}
}

func openPalettes() (*palette.Service, func(), error) {
	db, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	blobs, err := storage.NewGormBlobStore(db, log)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return palette.NewService(blobs, log), closeDB, nil
}

func printPalette(cmd *cobra.Command, n int, p domain.Palette) {
	w := cmd.OutOrStdout()
	prefix := ""
	if n > 0 {
		prefix = fmt.Sprintf("%d. ", n)
	}
	colors := "(empty)"
	if len(p.Colors) > 0 {
		colors = strings.Join(p.Colors, " ")
	}
	fmt.Fprintf(w, "%s%s  %s\n", prefix, p.Name, colors)
}
