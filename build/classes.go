package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"zcss/compiler"
	"zcss/config"
	"zcss/state"
)

type checker interface {
	Check(name string) error
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

// listClasses writes every class name with its compilation status and
// returns number of names which would not compile.
func listClasses(w io.Writer, c checker, names []string, onlyFailed bool) (failed int) {
	for _, name := range names {
		err := c.Check(name)
		if err != nil {
			failed++
		}
		switch {
		case err != nil:
			reason := "unrecognized"
			switch {
			case errors.Is(err, compiler.ErrUnresolvedBreakpoint):
				reason = "unknown breakpoint"
			case errors.Is(err, compiler.ErrInvalidClassName):
				reason = "invalid"
			}
			failColor.Fprintf(w, "%s\t%s\n", name, reason)
		case !onlyFailed:
			okColor.Fprintln(w, name)
		}
	}
	return failed
}

// RunClasses lists class names found in templates.
func RunClasses(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("classes")

	sources, err := absPaths(cmd.Args().Slice())
	if err != nil {
		return err
	}
	env.SetEncodings(cmd.String("encoding"), cmd.String("force-zip-cp"))

	names, err := collect(ctx, env.Scanner(), sources)
	if err != nil {
		return err
	}
	if cmd.Bool("sort") {
		sort.Sort(natural.StringSlice(names))
	}

	color.NoColor = !config.EnableColorOutput(os.Stdout)
	comp := compiler.New(compiler.NewMemorySink(), compiler.OptionsFromConfig(&env.Cfg.Compiler), zap.NewNop())
	failed := listClasses(os.Stdout, comp, names, cmd.Bool("unknown"))

	log.Info("Classes listed", zap.Int("total", len(names)), zap.Int("failed", failed))
	if failed > 0 && env.Cfg.Compiler.ErrorMode == string(compiler.ErrorModeStrict) {
		return fmt.Errorf("%d of %d class names would not compile", failed, len(names))
	}
	return nil
}
