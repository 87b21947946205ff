package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"zcss/css"
	"zcss/state"
)

// summary describes parsed stylesheet.
type summary struct {
	Imports     int
	Rules       int
	MediaBlocks int
	Warnings    []string
}

func summarize(sheet *css.Stylesheet) summary {
	return summary{
		Imports:     len(sheet.Imports()),
		Rules:       len(sheet.Rules()),
		MediaBlocks: len(sheet.MediaBlocks()),
		Warnings:    sheet.Warnings,
	}
}

// RunCheck parses stylesheet and optionally resolves property value for
// selector at given viewport width.
func RunCheck(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		return errors.New("no stylesheet has been specified")
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}

	sheet := css.NewParser(log).Parse(data, fname)
	s := summarize(sheet)
	for _, w := range s.Warnings {
		log.Warn("Stylesheet problem", zap.String("file", fname), zap.String("warning", w))
	}
	log.Info("Stylesheet parsed", zap.String("file", fname),
		zap.Int("imports", s.Imports), zap.Int("rules", s.Rules), zap.Int("media", s.MediaBlocks))

	if cmd.Bool("tree") {
		fmt.Fprint(os.Stdout, sheet.Tree())
	}

	selector, property := cmd.String("selector"), cmd.String("property")
	if len(selector) > 0 && len(property) > 0 {
		if err := printEffective(os.Stdout, sheet, selector, property, int(cmd.Int("viewport"))); err != nil {
			return err
		}
	}
	if len(s.Warnings) > 0 {
		return fmt.Errorf("stylesheet has %d problem(s)", len(s.Warnings))
	}
	return nil
}

func printEffective(w io.Writer, sheet *css.Stylesheet, selector, property string, viewport int) error {
	value, ok := sheet.Effective(selector, property, viewport)
	if !ok {
		_, err := fmt.Fprintf(w, "%s { %s } is not set at %dpx\n", selector, property, viewport)
		return err
	}
	_, err := fmt.Fprintf(w, "%s { %s: %s } at %dpx\n", selector, property, value, viewport)
	return err
}
