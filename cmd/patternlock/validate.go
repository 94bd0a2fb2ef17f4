package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codeninelabs/cnl-patternlock/gridgraph"
	"github.com/codeninelabs/cnl-patternlock/pattern"
)

var validateCmd = &cobra.Command{
	Use:   "validate PATTERN",
	Short: "Check a pattern against the grid rules",
	Long: `Parses PATTERN (for example "(0,0)-(1,1)-(2,1)" or "0,0 1,1 2,1"), draws it
on the grid and reports whether it is a valid unlock pattern. Exits 1 when it is not.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		size := cfg.GridSize
		if cmd.Flags().Changed("size") {
			size, _ = cmd.Flags().GetInt("size")
		}

		profile := termenv.Ascii
		if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			profile = termenv.ColorProfile()
		}
		return runValidate(cmd.OutOrStdout(), strings.Join(args, " "), size, profile)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().IntP("size", "n", 3, "grid size N (overrides the config file)")
}

func runValidate(w io.Writer, text string, size int, profile termenv.Profile) error {
	p, err := pattern.Parse(text)
	if err != nil {
		return err
	}
	if _, err := gridgraph.New(size); err != nil {
		return err
	}

	res := pattern.Evaluate(p, size)
	renderGrid(w, p, size, res.OK(), profile)

	if !res.OK() {
		fmt.Fprintln(w, profile.String("✗ "+res.Reason()).Foreground(profile.Color("#ef4444")))
		var ipe *pattern.InvalidPatternError
		if errors.As(res.Err(), &ipe) {
			fmt.Fprintln(w, "  "+ipe.Detail())
		}
		return errInvalidPattern
	}

	fmt.Fprintln(w, profile.String(fmt.Sprintf("✓ valid pattern of %d dots: %s", len(p), p)).Foreground(profile.Color("#22c55e")))
	return nil
}

// renderGrid prints one row per grid row. Selected dots show their 1-based
// position in the pattern.
func renderGrid(w io.Writer, p pattern.Pattern, size int, ok bool, profile termenv.Profile) {
	order := make(map[gridgraph.Point]int, len(p))
	for i, pt := range p {
		if _, seen := order[pt]; !seen {
			order[pt] = i + 1
		}
	}

	colour := profile.Color("#22c55e")
	if !ok {
		colour = profile.Color("#ef4444")
	}

	var b strings.Builder
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x > 0 {
				b.WriteString(" ")
			}
			if n, hit := order[gridgraph.Pt(x, y)]; hit {
				b.WriteString(profile.String(fmt.Sprintf("%2d", n)).Foreground(colour).Bold().String())
			} else {
				b.WriteString(profile.String(" ·").Faint().String())
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}
