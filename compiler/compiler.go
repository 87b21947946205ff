// Package compiler turns utility class names into CSS rules.
//
// Class name grammar is "<family>[-<breakpoint>]-<value>" where family key
// selects decoder and value is decoder specific compact or single form.
// Every distinct class name produces its rule at most once per Compiler.
package compiler

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"zcss/css"
)

// Compiler keeps track of processed class names and writes generated rules
// into its sink.
type Compiler struct {
	id   uuid.UUID
	opts Options
	sink StyleSink
	log  *zap.Logger

	mu         sync.Mutex
	seen       []string
	known      map[string]struct{}
	cursor     int
	transforms transformRegistry
	warned     bool

	decls *cache.Cache // declaration-only results
}

// New creates compiler writing into sink and seeds transform defaults.
func New(sink StyleSink, opts Options, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Breakpoints == nil {
		opts.Breakpoints = DefaultBreakpoints()
	}
	if len(opts.ErrorMode) == 0 {
		opts.ErrorMode = ErrorModeSilent
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	c := &Compiler{
		id:    id,
		opts:  opts,
		sink:  sink,
		log:   log.Named("compiler").With(zap.Stringer("id", id)),
		known: make(map[string]struct{}),
	}
	if opts.CacheEnable {
		c.decls = cache.New(cache.NoExpiration, 0)
	}

	sink.SetTransformVariables(transformVariables())
	sink.ReplaceTransformRule(c.transforms.rule())
	return c
}

// ID returns unique compiler instance id.
func (c *Compiler) ID() uuid.UUID {
	return c.id
}

// Dispatch compiles single class name regardless of whether it was seen
// before. With declarationsOnly set it returns bare declaration body and
// writes nothing, otherwise the rule goes to the sink, result is empty and
// the name counts as processed so later batches skip it. Names which could
// not be compiled produce nothing.
func (c *Compiler) Dispatch(name string, declarationsOnly bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if declarationsOnly {
		decls, err := c.declarations(name)
		c.report(name, err)
		return decls.Body()
	}
	c.report(name, c.emit(name))
	c.record(name)
	return ""
}

// Observe records class names, already known names are ignored. Nothing is
// compiled until Flush.
func (c *Compiler) Observe(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observe(names)
}

// Flush compiles every observed name past the cursor and advances it. In
// strict error mode failures are returned combined.
func (c *Compiler) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flush()
}

// ProcessBatch records names and compiles new ones atomically.
func (c *Compiler) ProcessBatch(names []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observe(names)
	return c.flush()
}

// Check reports why class name cannot be compiled, nil if it can. Nothing
// is recorded or written.
func (c *Compiler) Check(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pc, em, err := c.decode(name)
	if err != nil || em.role != roleBase {
		return err
	}
	bp := pc.breakpoint
	if em.ownBreakpoint {
		bp = em.breakpoint
	}
	if len(bp) == 0 {
		return nil
	}
	if _, _, ok := c.opts.Breakpoints.Resolve(bp); !ok {
		return fmt.Errorf("class %q breakpoint %q: %w", name, bp, ErrUnresolvedBreakpoint)
	}
	return nil
}

// Processed returns class names compiled so far in order of arrival.
func (c *Compiler) Processed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, c.cursor)
	copy(out, c.seen[:c.cursor])
	return out
}

func (c *Compiler) observe(names []string) {
	for _, name := range names {
		if len(name) == 0 {
			continue
		}
		if _, ok := c.known[name]; ok {
			continue
		}
		c.known[name] = struct{}{}
		c.seen = append(c.seen, name)
	}
	if c.opts.WarnThreshold > 0 && !c.warned && len(c.seen) >= c.opts.WarnThreshold {
		c.warned = true
		c.log.Warn("Large number of class names processed", zap.Int("count", len(c.seen)), zap.Int("threshold", c.opts.WarnThreshold))
	}
}

// record moves name into processed part of seen list.
func (c *Compiler) record(name string) {
	if len(name) == 0 {
		return
	}
	if _, ok := c.known[name]; ok {
		i := slices.Index(c.seen[c.cursor:], name)
		if i < 0 {
			return
		}
		c.seen = slices.Delete(c.seen, c.cursor+i, c.cursor+i+1)
	} else {
		c.known[name] = struct{}{}
	}
	c.seen = slices.Insert(c.seen, c.cursor, name)
	c.cursor++
}

func (c *Compiler) flush() error {
	var errs error
	for ; c.cursor < len(c.seen); c.cursor++ {
		name := c.seen[c.cursor]
		if err := c.emit(name); err != nil {
			c.report(name, err)
			errs = multierr.Append(errs, err)
		}
	}
	if c.opts.ErrorMode == ErrorModeStrict {
		return errs
	}
	return nil
}

func (c *Compiler) report(name string, err error) {
	if err == nil || c.opts.ErrorMode == ErrorModeSilent {
		return
	}
	c.log.Warn("Unable to compile class", zap.String("class", name), zap.Error(err))
}

func invalidRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune("{};<\\\"'`", r)
}

// decode parses class name and runs matching decoder.
func (c *Compiler) decode(name string) (*parsedClass, emission, error) {
	if c.opts.ValidateClasses && strings.ContainsFunc(name, invalidRune) {
		return nil, emission{}, fmt.Errorf("class %q: %w", name, ErrInvalidClassName)
	}
	pc, ok := parseClass(name, c.opts.ClassPrefix)
	if !ok {
		return nil, emission{}, fmt.Errorf("class %q: %w", name, ErrUnrecognizedClass)
	}

	var em emission
	if strings.HasPrefix(pc.base, "__") {
		em = c.decodeSelector(pc)
	} else if r, found := lookup(pc); found {
		em = r.decode(pc)
	}
	if len(em.decls) == 0 && len(em.raw) == 0 {
		return nil, emission{}, fmt.Errorf("class %q: %w", name, ErrUnrecognizedClass)
	}
	if pc.important {
		em.decls = em.decls.Important()
	}
	return pc, em, nil
}

// declarations returns declarations for utility class, results are cached.
func (c *Compiler) declarations(name string) (css.Declarations, error) {
	if c.decls != nil {
		if v, ok := c.decls.Get(name); ok {
			return v.(css.Declarations), nil
		}
	}
	if strings.HasPrefix(name, "__") {
		return nil, fmt.Errorf("class %q: %w", name, ErrUnrecognizedClass)
	}
	_, em, err := c.decode(name)
	if err != nil {
		return nil, err
	}
	if c.decls != nil {
		if c.opts.CacheMaxSize > 0 && c.decls.ItemCount() >= c.opts.CacheMaxSize {
			c.decls.Flush()
		}
		c.decls.Set(name, em.decls, cache.NoExpiration)
	}
	return em.decls, nil
}

// decodeSelector handles "__<selector>[--<breakpoint>]@util1,util2", body of
// the rule is made of declarations of every utility. "__" inside selector is
// descendant combinator.
func (c *Compiler) decodeSelector(pc *parsedClass) (em emission) {
	head, utils, ok := strings.Cut(strings.TrimPrefix(pc.base, "__"), "@")
	if !ok || len(head) == 0 {
		return
	}
	selector, bp, _ := strings.Cut(head, "--")
	selector = strings.ReplaceAll(selector, "__", " ")

	for util := range strings.SplitSeq(utils, ",") {
		decls, err := c.declarations(util)
		if err != nil {
			c.report(pc.name, err)
			continue
		}
		em.decls = append(em.decls, decls...)
		if usesTransformVariables(util) {
			em.transform = true
			em.transformSelector = selector
		}
	}
	em.selector = selector
	em.breakpoint, em.ownBreakpoint = bp, true
	return
}

// render produces complete rule text for emission.
func (c *Compiler) render(pc *parsedClass, em emission) string {
	if len(em.raw) > 0 {
		return em.raw + em.extra
	}

	decls := em.decls
	if c.opts.Important {
		decls = decls.Important()
	}

	var rule string
	switch {
	case len(em.pseudoElement) > 0:
		target := em.pseudoTarget
		if len(target) == 0 {
			target = pc.selector()
		}
		rule = css.BuildPseudoRule(decls, target, em.pseudoElement, false)
	case len(em.selector) > 0:
		rule = css.BuildSelectorRule(decls, em.selector)
	default:
		rule = css.BuildSelectorRule(decls, pc.selector())
	}
	return rule + em.extra
}

// emit compiles class name into the sink.
func (c *Compiler) emit(name string) error {
	pc, em, err := c.decode(name)
	if err != nil {
		return err
	}

	switch em.role {
	case roleFontImport:
		c.sink.AppendFontImport(c.render(pc, em))
		return nil
	case roleVariables:
		c.sink.AppendVariables(c.render(pc, em))
		return nil
	}

	bp := pc.breakpoint
	if em.ownBreakpoint {
		bp = em.breakpoint
	}
	if len(bp) == 0 {
		c.sink.AppendBase(c.render(pc, em))
	} else {
		feature, width, ok := c.opts.Breakpoints.Resolve(bp)
		if !ok {
			return fmt.Errorf("class %q breakpoint %q: %w", name, bp, ErrUnresolvedBreakpoint)
		}
		c.sink.AppendForPartition(width, css.WrapMedia(feature, width, c.render(pc, em)))
	}

	if em.transform {
		selector := em.transformSelector
		if len(selector) == 0 {
			selector = pc.selector()
		}
		if c.transforms.add(selector) {
			c.sink.ReplaceTransformRule(c.transforms.rule())
		}
	}
	return nil
}
