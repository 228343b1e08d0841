// Package pipeline orchestrates a full merge pass over a mod: classify
// the source and target trees, extract source entries, reconcile them
// against the existing translation, route the results to files, and
// serialize. Parsing and serialization fan out over a worker pool; one
// broken file never aborts the pass.
package pipeline

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/RimLocale/rimloc"
	"github.com/RimLocale/rimloc/extract"
	"github.com/RimLocale/rimloc/resource"
	"github.com/RimLocale/rimloc/worker"
)

// Config holds everything one merge pass needs.
type Config struct {
	ModRoot    string // mod root containing Defs/ and Languages/
	SourceLang string // reference language folder under Languages/ (default "English")
	TargetLang string // target language code, e.g. "zh-CN"
	TargetDir  string // output tree override; default Languages/<target folder>

	Policy   rimloc.Policy
	Strategy rimloc.Strategy

	IncludeUnchanged bool      // keep unchanged entries in plan output
	Workers          int       // pool size for parsing and writing
	Now              time.Time // timestamp for history notes; zero means time.Now()

	Translator *rimloc.Translator // optional machine-translation pass
	Progress   bool               // render a progress bar on writes
	Logger     *zap.Logger
}

// namespace binds one source subtree to one target subtree with the
// scanner that extracts it.
type namespace struct {
	name      rimloc.Namespace
	sourceDir string
	targetDir string
	scan      func(dir string, rep *rimloc.Report) ([]rimloc.SourceEntry, error)
}

// pass is the shared prologue of Run and Collect: resolved namespaces,
// selected modes, and extracted source entries, validated fatally before
// anything downstream happens.
type pass struct {
	cfg        Config
	now        time.Time
	log        *zap.Logger
	pool       *worker.Pool
	rep        *rimloc.Report
	namespaces []namespace
	modes      []rimloc.Mode
	extracted  [][]rimloc.SourceEntry
}

// Run executes one merge pass and returns its report. Configuration
// errors abort before any file is written; per-file failures are recorded
// in the report and the pass continues.
func Run(ctx context.Context, cfg Config) (*rimloc.Report, error) {
	p, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	defer p.pool.Release()

	for i, ns := range p.namespaces {
		mode := p.modes[i]
		// Serialization needs the full plan: updated entries rewrite their
		// annotations in place, and unchanged ones anchor the update walk.
		entries, err := p.plan(ctx, ns, mode, p.extracted[i], true)
		if err != nil {
			return p.rep, err
		}

		files, diags := rimloc.GroupByFile(entries, strategyFor(ns, cfg.Strategy), mode == rimloc.ModeRebuild)
		for _, d := range diags {
			p.rep.RecordRejected(d)
		}

		if err := p.write(ctx, ns, mode, files); err != nil {
			return p.rep, err
		}
	}

	p.log.Info("merge pass complete", zap.String("summary", p.rep.Summary()))
	return p.rep, nil
}

// Collect runs the pass up to routing and returns the planned entries
// instead of serializing them. Entry paths are prefixed with their
// namespace, so a collected plan can be applied back onto the language
// root later. Nothing is written.
func Collect(ctx context.Context, cfg Config) ([]rimloc.MergedEntry, *rimloc.Report, error) {
	p, err := prepare(cfg)
	if err != nil {
		return nil, nil, err
	}
	defer p.pool.Release()

	var all []rimloc.MergedEntry
	for i, ns := range p.namespaces {
		mode := p.modes[i]
		entries, err := p.plan(ctx, ns, mode, p.extracted[i], cfg.IncludeUnchanged)
		if err != nil {
			return nil, p.rep, err
		}

		files, diags := rimloc.GroupByFile(entries, strategyFor(ns, cfg.Strategy), mode == rimloc.ModeRebuild)
		for _, d := range diags {
			p.rep.RecordRejected(d)
		}
		for rel, es := range files {
			for _, e := range es {
				e.OriginFile = path.Join(string(ns.name), rel)
				all = append(all, e)
			}
		}
	}

	p.log.Info("plan collected",
		zap.Int("entries", len(all)),
		zap.String("summary", p.rep.Summary()),
	)
	return all, p.rep, nil
}

// strategyFor resolves the routing strategy per namespace. Keyed keys carry
// no type discriminant, so a grouping strategy would pile every added key
// into one Misc file; keyed entries always mirror their source placement.
func strategyFor(ns namespace, strategy rimloc.Strategy) rimloc.Strategy {
	if ns.name == rimloc.NamespaceKeyed {
		return rimloc.StrategyMirrorReference
	}
	return strategy
}

func prepare(cfg Config) (*pass, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}

	sourceLang := cfg.SourceLang
	if sourceLang == "" {
		sourceLang = "English"
	}
	targetBase := cfg.TargetDir
	if targetBase == "" {
		targetBase = filepath.Join(cfg.ModRoot, "Languages", rimloc.FolderName(cfg.TargetLang))
	}

	namespaces, err := resolveNamespaces(cfg.ModRoot, sourceLang, targetBase)
	if err != nil {
		return nil, err
	}

	pool, err := worker.NewPool(cfg.Workers, log)
	if err != nil {
		return nil, err
	}

	p := &pass{
		cfg:        cfg,
		now:        now,
		log:        log,
		pool:       pool,
		rep:        &rimloc.Report{},
		namespaces: namespaces,
		modes:      make([]rimloc.Mode, len(namespaces)),
		extracted:  make([][]rimloc.SourceEntry, len(namespaces)),
	}

	// Extract every namespace before planning any of them: the
	// cross-namespace conflict check needs both sides, and a fatal
	// conflict must abort before the first write.
	for i, ns := range namespaces {
		mode, err := rimloc.SelectMode(rimloc.PresencePresent, rimloc.Classify(ns.targetDir), cfg.Policy)
		if err != nil {
			pool.Release()
			return nil, err
		}
		p.modes[i] = mode

		entries, err := ns.scan(ns.sourceDir, p.rep)
		if err != nil {
			pool.Release()
			return nil, err
		}
		p.extracted[i] = entries
		log.Info("extracted source entries",
			zap.String("namespace", string(ns.name)),
			zap.String("mode", mode.String()),
			zap.Int("entries", len(entries)),
		)
	}

	if err := checkConflicts(namespaces, p.extracted); err != nil {
		pool.Release()
		return nil, err
	}
	return p, nil
}

// resolveNamespaces decides which (source, target) subtree pairs take
// part in the pass. The DefInjected reference tree is preferred; when the
// source mod ships no reference translation, the raw Defs tree feeds the
// DefInjected namespace instead. A mod with no translatable source at all
// is a configuration error.
func resolveNamespaces(modRoot, sourceLang, targetBase string) ([]namespace, error) {
	sourceBase := filepath.Join(modRoot, "Languages", sourceLang)

	var namespaces []namespace

	if dir := filepath.Join(sourceBase, "DefInjected"); rimloc.Classify(dir) == rimloc.PresencePresent {
		namespaces = append(namespaces, namespace{
			name:      rimloc.NamespaceDefInjected,
			sourceDir: dir,
			targetDir: filepath.Join(targetBase, "DefInjected"),
			scan:      extract.ScanDefInjected,
		})
	} else if dir := filepath.Join(modRoot, "Defs"); rimloc.Classify(dir) == rimloc.PresencePresent {
		namespaces = append(namespaces, namespace{
			name:      rimloc.NamespaceDefInjected,
			sourceDir: dir,
			targetDir: filepath.Join(targetBase, "DefInjected"),
			scan:      extract.ScanDefs,
		})
	}

	if dir := filepath.Join(sourceBase, "Keyed"); rimloc.Classify(dir) == rimloc.PresencePresent {
		namespaces = append(namespaces, namespace{
			name:      rimloc.NamespaceKeyed,
			sourceDir: dir,
			targetDir: filepath.Join(targetBase, "Keyed"),
			scan:      extract.ScanKeyed,
		})
	}

	if len(namespaces) == 0 {
		return nil, &rimloc.ConfigError{Message: "no translatable source found under " + modRoot}
	}
	return namespaces, nil
}

func checkConflicts(namespaces []namespace, extracted [][]rimloc.SourceEntry) error {
	var definjected, keyed []rimloc.SourceEntry
	for i, ns := range namespaces {
		switch ns.name {
		case rimloc.NamespaceDefInjected:
			definjected = extracted[i]
		case rimloc.NamespaceKeyed:
			keyed = extracted[i]
		}
	}
	return rimloc.CheckNamespaceConflicts(definjected, keyed)
}

// plan reconciles one namespace and applies the optional incremental
// filter and machine-translation pass.
func (p *pass) plan(ctx context.Context, ns namespace, mode rimloc.Mode, source []rimloc.SourceEntry, includeUnchanged bool) ([]rimloc.MergedEntry, error) {
	var target []rimloc.TargetEntry
	if mode == rimloc.ModeMerge || mode == rimloc.ModeIncremental {
		var err error
		target, err = p.loadTarget(ctx, ns.targetDir)
		if err != nil {
			return nil, err
		}
	}

	plan, err := rimloc.Plan(source, target, rimloc.PlanOptions{
		IncludeUnchanged: includeUnchanged,
		Now:              p.now,
	})
	if err != nil {
		return nil, err
	}
	for _, d := range plan.Diagnostics {
		p.rep.RecordRejected(d)
	}
	p.rep.AddStats(plan.Stats)

	entries := plan.Entries
	if mode == rimloc.ModeIncremental {
		entries = rimloc.FilterActions(entries, rimloc.ActionAdded)
	}

	if p.cfg.Translator != nil {
		translated, stats, err := p.cfg.Translator.TranslateEntries(ctx, entries)
		if err != nil {
			return nil, err
		}
		entries = translated
		p.log.Info("machine translation applied",
			zap.String("namespace", string(ns.name)),
			zap.Int("translated", stats.Translated),
			zap.Int("cached", stats.Cached),
			zap.Int("skipped", stats.Skipped),
		)
	}
	return entries, nil
}

// loadTarget parses every file of the target subtree on the pool.
func (p *pass) loadTarget(ctx context.Context, root string) ([]rimloc.TargetEntry, error) {
	files, err := resource.ListFiles(root)
	if err != nil {
		return nil, err
	}

	results := make([][]rimloc.TargetEntry, len(files))
	err = p.pool.Map(ctx, len(files), func(ctx context.Context, i int) {
		rel := files[i]
		entries, err := resource.LoadFile(filepath.Join(root, filepath.FromSlash(rel)), rel)
		if err != nil {
			p.rep.RecordParse(rel, err.Error())
			return
		}
		results[i] = entries
	})
	if err != nil {
		return nil, err
	}

	var all []rimloc.TargetEntry
	for _, entries := range results {
		all = append(all, entries...)
	}
	return all, nil
}

// write serializes the routed file groups on the pool. Merge and
// incremental passes update files in place; build and rebuild write fresh
// trees.
func (p *pass) write(ctx context.Context, ns namespace, mode rimloc.Mode, files map[string][]rimloc.MergedEntry) error {
	// A rebuild discards the target tree wholesale. Files no source key
	// routes to would otherwise survive with stale entries.
	if mode == rimloc.ModeRebuild {
		if err := os.RemoveAll(ns.targetDir); err != nil {
			return &rimloc.SerializeError{Path: ns.targetDir, Message: "clear target tree", Cause: err}
		}
	}

	rels := make([]string, 0, len(files))
	for rel := range files {
		rels = append(rels, rel)
	}

	var bar *progressbar.ProgressBar
	if p.cfg.Progress {
		bar = progressbar.Default(int64(len(rels)), "writing "+string(ns.name))
	}

	fresh := mode == rimloc.ModeBuild || mode == rimloc.ModeRebuild
	err := p.pool.Map(ctx, len(rels), func(ctx context.Context, i int) {
		rel := rels[i]
		path := filepath.Join(ns.targetDir, filepath.FromSlash(rel))
		if bar != nil {
			defer func() { _ = bar.Add(1) }()
		}

		if fresh {
			if err := resource.WriteFile(path, files[rel]); err != nil {
				p.rep.RecordWrite(rel, err.Error())
				return
			}
			p.rep.RecordFileWritten()
			return
		}

		written, err := resource.UpdateFile(path, files[rel])
		if err != nil {
			p.rep.RecordWrite(rel, err.Error())
			return
		}
		if written {
			p.rep.RecordFileWritten()
		}
	})
	if err != nil {
		return err
	}

	p.log.Debug("namespace serialized",
		zap.String("namespace", string(ns.name)),
		zap.Int("files", len(rels)),
	)
	return nil
}
