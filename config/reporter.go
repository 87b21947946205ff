package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/maruel/natural"
	"gopkg.in/yaml.v3"

	"zcss/misc"
)

// Templates larger than this are listed in the manifest but not archived.
const maxSnapshotSize = 4 << 20

const manifestName = "manifest.yaml"

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {

	r := &Report{entries: make(map[string]*entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

// EntryKind tells what report entry holds.
type EntryKind string

const (
	EntryLog        EntryKind = "log"
	EntryConfig     EntryKind = "config"
	EntrySource     EntryKind = "source"
	EntryStylesheet EntryKind = "stylesheet"
	EntryCompile    EntryKind = "compile"
)

type entry struct {
	Name    string    `yaml:"name"`
	Kind    EntryKind `yaml:"kind"`
	Origin  string    `yaml:"origin,omitempty"`
	Stamp   time.Time `yaml:"stamp"`
	Size    int64     `yaml:"size"`
	Skipped string    `yaml:"skipped,omitempty"`

	// log files are still written to when entry is created, so they are
	// read when report is closed
	path string
	data []byte
}

// Snapshot describes single stylesheet write.
type Snapshot struct {
	Stylesheet string    `yaml:"stylesheet"`
	Compiler   string    `yaml:"compiler"`
	Sources    []string  `yaml:"sources"`
	Classes    []string  `yaml:"classes"`
	Partitions []int     `yaml:"partitions,flow"`
	Time       time.Time `yaml:"time"`
	// stylesheet content
	Data []byte `yaml:"-"`
}

// Report accumulates debug information: logs, effective configuration,
// template snapshots and every generated stylesheet together with the class
// list it was compiled from. Safe for concurrent use since watcher stores
// snapshots from its own goroutine. Nil report quietly ignores everything.
type Report struct {
	mu         sync.Mutex
	entries    map[string]*entry
	sources    int
	generation int
	file       *os.File
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// AttachLog registers log file, its content is archived on Close.
func (r *Report) AttachLog(name, file string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	name = "logs/" + name
	if old, exists := r.entries[name]; exists && old.path != file {
		panic(fmt.Sprintf("Attempt to attach different log to the report for [%s]: was %s, now %s", name, old.path, file))
	}
	r.entries[name] = &entry{Name: name, Kind: EntryLog, Origin: file, path: file}
}

// StoreConfig saves effective configuration.
func (r *Report) StoreConfig(name string, data []byte) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.add(&entry{Name: "config/" + name, Kind: EntryConfig, data: data})
}

// StoreSources snapshots template files, directories and bundles as they are
// at the time of the call.
func (r *Report) StoreSources(paths ...string) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("unable to snapshot source: %w", err)
		}

		r.sources++
		prefix := path.Join("sources", strconv.Itoa(r.sources)+"-"+filepath.Base(abs))
		if !info.IsDir() {
			r.snapshot(prefix, abs, info)
			continue
		}
		err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil || !d.Type().IsRegular() {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(abs, p)
			if err != nil {
				return err
			}
			r.snapshot(path.Join(prefix, filepath.ToSlash(rel)), p, info)
			return nil
		})
		if err != nil {
			return fmt.Errorf("unable to snapshot source directory: %w", err)
		}
	}
	return nil
}

func (r *Report) snapshot(name, file string, info fs.FileInfo) {
	e := &entry{Name: name, Kind: EntrySource, Origin: file, Stamp: info.ModTime(), Size: info.Size()}
	if info.Size() > maxSnapshotSize {
		e.Skipped = "too large"
	} else if data, err := os.ReadFile(file); err != nil {
		e.Skipped = err.Error()
	} else {
		e.data = data
	}
	r.add(e)
}

// StoreStylesheet saves stylesheet content along with description of the
// compilation which produced it. Every call makes new generation.
func (r *Report) StoreStylesheet(s Snapshot) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Time.IsZero() {
		s.Time = time.Now()
	}
	meta, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("unable to describe stylesheet: %w", err)
	}

	r.generation++
	gen := strconv.Itoa(r.generation)
	r.add(&entry{Name: "stylesheets/" + gen + "-" + filepath.Base(s.Stylesheet), Kind: EntryStylesheet, Origin: s.Stylesheet, Stamp: s.Time, data: s.Data})
	r.add(&entry{Name: "compile/" + gen + ".yaml", Kind: EntryCompile, Origin: s.Compiler, Stamp: s.Time, data: meta})
	return nil
}

func (r *Report) add(e *entry) {
	if _, exists := r.entries[e.Name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", e.Name))
	}
	if e.Stamp.IsZero() {
		e.Stamp = time.Now()
	}
	if e.data != nil {
		e.Size = int64(len(e.data))
	}
	r.entries[e.Name] = e
}

// Close finalizes debug report.
func (r *Report) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

// finalize writes manifest followed by every entry in manifest order.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)
	defer arc.Close()

	names := make([]string, 0, len(r.entries))
	for name, e := range r.entries {
		if e.Kind == EntryLog {
			r.readLog(e)
		}
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	manifest := make([]*entry, 0, len(names))
	for _, name := range names {
		manifest = append(manifest, r.entries[name])
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("unable to prepare report manifest: %w", err)
	}
	if err := saveFile(arc, manifestName, time.Now(), bytes.NewReader(data)); err != nil {
		return err
	}

	for _, e := range manifest {
		if len(e.Skipped) > 0 {
			continue
		}
		if err := saveFile(arc, e.Name, e.Stamp, bytes.NewReader(e.data)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) readLog(e *entry) {
	info, err := os.Stat(e.path)
	if err != nil {
		e.Skipped = "absent"
		return
	}
	if e.data, err = os.ReadFile(e.path); err != nil {
		e.Skipped = err.Error()
		return
	}
	e.Stamp, e.Size = info.ModTime(), int64(len(e.data))
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return nil
}
