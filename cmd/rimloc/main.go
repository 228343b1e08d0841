// Command rimloc reconciles localization trees for RimWorld-style mods.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/RimLocale/rimloc"
	"github.com/RimLocale/rimloc/cache"
	"github.com/RimLocale/rimloc/csvio"
	"github.com/RimLocale/rimloc/extract"
	"github.com/RimLocale/rimloc/pipeline"
	"github.com/RimLocale/rimloc/provider"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("a command is required")
	}

	switch args[0] {
	case "merge":
		return runMerge(args[1:], stdout, stderr, false)
	case "translate":
		return runMerge(args[1:], stdout, stderr, true)
	case "extract":
		return runExtract(args[1:], stdout, stderr)
	case "export":
		return runExport(args[1:], stdout, stderr)
	case "import":
		return runImport(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "%s %s\n", rimloc.Name, rimloc.FullVersion())
		return nil
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `%s - %s

Usage:
  rimloc merge     -mod <dir> -lang <code> [flags]   reconcile the target tree with the source
  rimloc translate -mod <dir> -lang <code> [flags]   merge, then machine-translate new and stale entries
  rimloc extract   -mod <dir> [flags]                dump source entries to CSV
  rimloc export    -mod <dir> -lang <code> [flags]   write the merge plan to CSV without touching the tree
  rimloc import    -mod <dir> -lang <code> -in <csv> apply a translated CSV back onto the tree
  rimloc version                                     print the version

Settings may also come from rimloc.yaml in the working directory or
RIMLOC_* environment variables; flags win.
`, rimloc.Name, rimloc.Description)
}

// settings carries the file- and env-sourced defaults the flag sets are
// seeded with.
type settings struct {
	v *viper.Viper
}

func loadSettings() settings {
	v := viper.New()
	v.SetConfigName("rimloc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path := os.Getenv("RIMLOC_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix("RIMLOC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mod", "")
	v.SetDefault("lang", "")
	v.SetDefault("source-lang", "English")
	v.SetDefault("policy", "merge")
	v.SetDefault("strategy", "mirror-reference")
	v.SetDefault("workers", 4)
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("base-url", "")
	v.SetDefault("glossary", "")
	v.SetDefault("cache", "memory")
	v.SetDefault("cache-ttl", 0)
	v.SetDefault("redis-url", "redis://localhost:6379")
	v.SetDefault("batch-size", 50)
	v.SetDefault("rpm", 60)

	// Missing config file is fine; a broken one is not worth aborting a
	// CLI over either, the flags still work.
	_ = v.ReadInConfig()

	return settings{v: v}
}

func (s settings) str(key string) string { return s.v.GetString(key) }
func (s settings) num(key string) int    { return s.v.GetInt(key) }

// mergeFlags registers the flags shared by merge, translate, and export.
func mergeFlags(fs *flag.FlagSet, s settings) (mod, lang, sourceLang, policy, strategy *string, includeUnchanged *bool, workers *int, quiet, verbose *bool) {
	mod = fs.String("mod", s.str("mod"), "Mod root directory")
	lang = fs.String("lang", s.str("lang"), "Target language code (e.g. zh-CN, de)")
	sourceLang = fs.String("source-lang", s.str("source-lang"), "Source language folder under Languages/")
	policy = fs.String("policy", s.str("policy"), "Conflict policy: new, merge, incremental, rebuild")
	strategy = fs.String("strategy", s.str("strategy"), "Structural strategy: mirror-reference, group-by-type, mirror-source")
	includeUnchanged = fs.Bool("include-unchanged", false, "Keep unchanged entries in plan output")
	workers = fs.Int("workers", s.num("workers"), "Parallel file workers")
	quiet = fs.Bool("quiet", false, "Suppress progress output")
	verbose = fs.Bool("verbose", false, "Verbose logging")
	return
}

func newLogger(verbose, quiet bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func buildConfig(mod, lang, sourceLang, policyStr, strategyStr string, includeUnchanged bool, workers int, log *zap.Logger, progress bool) (pipeline.Config, error) {
	if mod == "" {
		return pipeline.Config{}, errors.New("-mod is required")
	}
	if lang == "" {
		return pipeline.Config{}, errors.New("-lang is required")
	}
	policy, err := rimloc.ParsePolicy(policyStr)
	if err != nil {
		return pipeline.Config{}, err
	}
	strategy, err := rimloc.ParseStrategy(strategyStr)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		ModRoot:          mod,
		SourceLang:       sourceLang,
		TargetLang:       lang,
		Policy:           policy,
		Strategy:         strategy,
		IncludeUnchanged: includeUnchanged,
		Workers:          workers,
		Progress:         progress,
		Logger:           log,
	}, nil
}

// runMerge handles both merge and translate; translate additionally wires
// a machine-translation provider into the pass.
func runMerge(args []string, stdout, stderr io.Writer, translate bool) error {
	s := loadSettings()
	name := "merge"
	if translate {
		name = "translate"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	mod, lang, sourceLang, policy, strategy, includeUnchanged, workers, quiet, verbose := mergeFlags(fs, s)

	var apiKey, model, baseURL, glossaryPath, cacheBackend, redisURL *string
	var cacheTTL, batchSize, rpm *int
	if translate {
		apiKey = fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
		model = fs.String("model", s.str("model"), "OpenAI model")
		baseURL = fs.String("base-url", s.str("base-url"), "OpenAI-compatible API base URL")
		glossaryPath = fs.String("glossary", s.str("glossary"), "YAML glossary of preferred translations")
		cacheBackend = fs.String("cache", s.str("cache"), "Translation cache: memory, redis, none")
		redisURL = fs.String("redis-url", s.str("redis-url"), "Redis URL for -cache redis")
		cacheTTL = fs.Int("cache-ttl", s.num("cache-ttl"), "Cache TTL in seconds (0 = no expiry)")
		batchSize = fs.Int("batch-size", s.num("batch-size"), "Texts per provider call")
		rpm = fs.Int("rpm", s.num("rpm"), "Provider requests per minute")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	log := newLogger(*verbose, *quiet)
	defer func() { _ = log.Sync() }()

	cfg, err := buildConfig(*mod, *lang, *sourceLang, *policy, *strategy, *includeUnchanged, *workers, log, !*quiet)
	if err != nil {
		return err
	}

	if translate {
		translator, cleanup, err := buildTranslator(*lang, *sourceLang, *apiKey, *model, *baseURL, *glossaryPath, *cacheBackend, *redisURL, *cacheTTL, *batchSize, *rpm)
		if err != nil {
			return err
		}
		defer cleanup()
		cfg.Translator = translator
	}

	start := time.Now()
	rep, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n", rep.Summary())
	if !*quiet {
		fmt.Fprintf(stderr, "done in %v\n", time.Since(start).Round(time.Millisecond))
	}
	if rep.Failures() > 0 {
		return fmt.Errorf("%d files failed; see log", rep.Failures())
	}
	return nil
}

func buildTranslator(lang, sourceLang, apiKey, model, baseURL, glossaryPath, cacheBackend, redisURL string, cacheTTL, batchSize, rpm int) (*rimloc.Translator, func(), error) {
	key := apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, nil, errors.New("OpenAI API key required (-api-key or OPENAI_API_KEY env)")
	}

	var p rimloc.Provider = provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:  key,
		Model:   model,
		BaseURL: baseURL,
	})
	p = rimloc.NewRetryableProvider(p, rimloc.DefaultRetryConfig())
	p = rimloc.NewRateLimitedProvider(p, rimloc.RateLimitConfig{RequestsPerMinute: rpm})

	cleanup := func() {}
	opts := []rimloc.TranslatorOption{
		rimloc.WithBatchSize(batchSize),
	}
	if code := rimloc.CodeForFolder(sourceLang); code != "" {
		opts = append(opts, rimloc.WithSourceLang(code))
	}

	switch cacheBackend {
	case "none":
	case "redis":
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: redisURL, TTL: cacheTTL})
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = rc.Close() }
		opts = append(opts, rimloc.WithCache(rc))
	default:
		opts = append(opts, rimloc.WithCache(cache.NewMemoryCache(0, cacheTTL)))
	}

	if glossaryPath != "" {
		glossary, err := provider.LoadGlossary(glossaryPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, rimloc.WithGlossary(glossary))
	}

	return rimloc.NewTranslator(lang, p, opts...), cleanup, nil
}

// runExtract dumps source entries as CSV without planning anything.
func runExtract(args []string, stdout, stderr io.Writer) error {
	s := loadSettings()
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)

	mod := fs.String("mod", s.str("mod"), "Mod root directory")
	sourceLang := fs.String("source-lang", s.str("source-lang"), "Source language folder under Languages/")
	defs := fs.Bool("defs", false, "Scan the raw Defs/ tree instead of the reference translation")
	out := fs.String("out", "", "Output CSV file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mod == "" {
		return errors.New("-mod is required")
	}

	rep := &rimloc.Report{}
	var entries []rimloc.SourceEntry

	if *defs {
		scanned, err := extract.ScanDefs(filepath.Join(*mod, "Defs"), rep)
		if err != nil {
			return err
		}
		entries = scanned
	} else {
		base := filepath.Join(*mod, "Languages", *sourceLang)
		injected, err := extract.ScanDefInjected(filepath.Join(base, "DefInjected"), rep)
		if err != nil {
			return err
		}
		keyed, err := extract.ScanKeyed(filepath.Join(base, "Keyed"), rep)
		if err != nil {
			return err
		}
		entries = append(injected, keyed...)
	}

	w := io.Writer(stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := csvio.WriteSource(w, entries); err != nil {
		return err
	}
	for _, d := range rep.ParseErrors {
		fmt.Fprintf(stderr, "skipped %s\n", d)
	}
	fmt.Fprintf(stderr, "%d entries\n", len(entries))
	return nil
}

// runExport writes the merge plan as CSV; the target tree is untouched.
func runExport(args []string, stdout, stderr io.Writer) error {
	s := loadSettings()
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)

	mod, lang, sourceLang, policy, strategy, includeUnchanged, workers, quiet, verbose := mergeFlags(fs, s)
	out := fs.String("out", "", "Output CSV file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	log := newLogger(*verbose, *quiet)
	defer func() { _ = log.Sync() }()

	cfg, err := buildConfig(*mod, *lang, *sourceLang, *policy, *strategy, *includeUnchanged, *workers, log, false)
	if err != nil {
		return err
	}

	entries, rep, err := pipeline.Collect(context.Background(), cfg)
	if err != nil {
		return err
	}

	w := io.Writer(stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := csvio.WritePlan(w, entries); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s\n", rep.Summary())
	return nil
}

// runImport applies a translated CSV back onto the target tree.
func runImport(args []string, stdout, stderr io.Writer) error {
	s := loadSettings()
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stderr)

	mod := fs.String("mod", s.str("mod"), "Mod root directory")
	lang := fs.String("lang", s.str("lang"), "Target language code")
	in := fs.String("in", "", "Translated CSV file")
	workers := fs.Int("workers", s.num("workers"), "Parallel file workers")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	verbose := fs.Bool("verbose", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mod == "" {
		return errors.New("-mod is required")
	}
	if *lang == "" {
		return errors.New("-lang is required")
	}
	if *in == "" {
		return errors.New("-in is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close()

	entries, err := csvio.ReadPlan(f)
	if err != nil {
		return err
	}

	log := newLogger(*verbose, *quiet)
	defer func() { _ = log.Sync() }()

	targetDir := filepath.Join(*mod, "Languages", rimloc.FolderName(*lang))
	rep, err := pipeline.ApplyTranslations(context.Background(), targetDir, entries, *workers, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "applied %d entries to %d files\n", len(entries), rep.FilesWritten)
	if rep.Failures() > 0 {
		return fmt.Errorf("%d files failed; see log", rep.Failures())
	}
	return nil
}
