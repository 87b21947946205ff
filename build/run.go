// Package build implements subcommands compiling class names found in
// templates into stylesheets.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"zcss/compiler"
	"zcss/config"
	"zcss/misc"
	"zcss/scan"
	"zcss/state"
	"zcss/watch"
)

// job keeps single compiler for the whole run, in watch mode every batch
// extends the same stylesheet.
type job struct {
	env     *state.LocalEnv
	log     *zap.Logger
	sources []string
	dst     string
	minify  bool

	sink    *compiler.MemorySink
	comp    *compiler.Compiler
	scanner *scan.Scanner
	// number of compiled classes in the last written stylesheet
	written int
}

func newJob(env *state.LocalEnv, sources []string, dst string, minify bool, log *zap.Logger) *job {
	sink := compiler.NewMemorySink()
	return &job{
		env:     env,
		log:     log,
		sources: sources,
		dst:     dst,
		minify:  minify,
		sink:    sink,
		comp:    compiler.New(sink, compiler.OptionsFromConfig(&env.Cfg.Compiler), log),
		scanner: env.Scanner(),
		written: -1,
	}
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	sources, err := absPaths(cmd.Args().Slice())
	if err != nil {
		return err
	}

	dst := cmd.String("out")
	if len(dst) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
		dst = defaultDestination(wd, sources[0])
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	env.Overwrite = cmd.Bool("overwrite")
	if _, err := os.Stat(dst); err == nil && !env.Overwrite {
		return fmt.Errorf("destination already exists: %s", dst)
	}

	enc := cmd.String("encoding")
	if len(enc) == 0 {
		enc = env.Cfg.Output.Encoding
	}
	env.SetEncodings(enc, cmd.String("force-zip-cp"))

	if err := env.Rpt.StoreSources(sources...); err != nil {
		log.Debug("Unable to store sources in report", zap.Error(err))
	}

	log.Info("Processing starting", zap.Strings("sources", sources), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	j := newJob(env, sources, dst, env.Cfg.Output.Minify || cmd.Bool("minify"), log)
	names, err := collect(ctx, j.scanner, sources)
	if err != nil {
		return err
	}
	if err := j.compile(names); err != nil {
		return err
	}
	if !cmd.Bool("watch") {
		return nil
	}
	return j.watch(ctx)
}

func absPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	out := make([]string, 0, len(args))
	for _, a := range args {
		p, err := filepath.Abs(a)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// collect scans paths and returns class names in order of discovery.
func collect(ctx context.Context, scanner *scan.Scanner, paths []string) ([]string, error) {
	var sources []scan.Source
	for _, p := range paths {
		srcs, err := scanner.Scan(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("unable to scan %s: %w", p, err)
		}
		sources = append(sources, srcs...)
	}
	return scan.Classes(sources), nil
}

// compile processes class names and writes stylesheet. Stylesheet is
// written even when some classes failed in strict mode.
func (j *job) compile(names []string) (err error) {
	if cerr := j.comp.ProcessBatch(names); cerr != nil {
		err = fmt.Errorf("unable to compile classes: %w", cerr)
	}
	return multierr.Append(err, j.write())
}

func (j *job) write() error {
	processed := len(j.comp.Processed())
	if processed == j.written {
		j.log.Debug("Nothing new to write", zap.Int("classes", processed))
		return nil
	}

	header, err := expandHeader(j.env.Cfg.Output.HeaderTemplate, Values{
		App:      misc.GetAppName(),
		Version:  misc.GetVersion(),
		Compiler: j.comp.ID().String(),
		Sources:  j.sources,
		Classes:  processed,
		Time:     time.Now(),
	})
	if err != nil {
		j.log.Warn("Unable to prepare stylesheet header", zap.Error(err))
		header = ""
	}

	data, err := render(j.sink, header, j.minify)
	if err != nil {
		return err
	}
	if err := writeFile(j.dst, data); err != nil {
		return err
	}
	j.written = processed

	err = j.env.Rpt.StoreStylesheet(config.Snapshot{
		Stylesheet: j.dst,
		Compiler:   j.comp.ID().String(),
		Sources:    j.sources,
		Classes:    j.comp.Processed(),
		Partitions: j.sink.Widths(),
		Data:       data,
	})
	if err != nil {
		j.log.Debug("Unable to store stylesheet in report", zap.Error(err))
	}
	j.log.Info("Stylesheet written", zap.String("file", j.dst), zap.Int("classes", processed), zap.Int("bytes", len(data)))
	return nil
}

func watchable(path string) bool {
	return scan.KindOf(path) != scan.KindUnknown || strings.EqualFold(filepath.Ext(path), ".zip")
}

// watch recompiles on every batch of changed templates until context is
// cancelled.
func (j *job) watch(ctx context.Context) error {
	cfg := j.env.Cfg.Watch
	w, err := watch.New(cfg.BatchDelay, cfg.MaxBatchSize, watchable, j.log)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, src := range j.sources {
		if err := w.Add(src); err != nil {
			return fmt.Errorf("unable to watch %s: %w", src, err)
		}
	}

	j.log.Info("Watching for changes", zap.Strings("sources", j.sources))
	return w.Run(ctx, func(ctx context.Context, paths []string) error {
		var sources []scan.Source
		for _, p := range paths {
			srcs, err := j.scanner.Scan(ctx, p)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				// removed or half written, next event will bring it back
				j.log.Warn("Unable to scan changed file", zap.String("file", p), zap.Error(err))
				continue
			}
			sources = append(sources, srcs...)
		}
		return j.compile(scan.Classes(sources))
	})
}
