package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottodough/internal/colorfmt"
)

var (
	colorLang  string
	colorAlpha uint8
	colorName  string
	colorAll   bool
)

var colorCmd = &cobra.Command{
	Use:   "color <hex>",
	Short: "Convert a hex color into a raylib color literal",
	Long: `Convert a hex color such as #7817ff into a raylib Color literal.

Languages: Odin, C, Zig, Go, Lua, C#, Python, Rust.
Run without an argument to list sample colors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runColor,
}

func init() {
	colorCmd.Flags().StringVarP(&colorLang, "lang", "l", string(colorfmt.Odin), "target language")
	colorCmd.Flags().Uint8VarP(&colorAlpha, "alpha", "a", 255, "alpha channel (0-255)")
	colorCmd.Flags().StringVarP(&colorName, "name", "n", "", "wrap the literal in a named constant")
	colorCmd.Flags().BoolVar(&colorAll, "all", false, "print the literal for every language")
}

func runColor(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, ex := range colorfmt.Examples {
			fmt.Fprintf(w, "%-14s %s\n", ex.Name, ex.Hex)
		}
		return nil
	}

	c, err := colorfmt.ParseHex(args[0])
	if err != nil {
		return err
	}
	log.Debug("color %s parsed as %v", args[0], c)

	langs := colorfmt.Languages
	if !colorAll {
		lang, err := colorfmt.ParseLanguage(colorLang)
		if err != nil {
			return err
		}
		langs = []colorfmt.Language{lang}
	}

	for _, lang := range langs {
		out, err := colorfmt.Format(lang, c, colorAlpha, colorName)
		if err != nil {
			return err
		}
		if colorAll {
			fmt.Fprintf(w, "%-7s %s\n", lang, out)
		} else {
			fmt.Fprintln(w, out)
		}
	}
	return nil
}
