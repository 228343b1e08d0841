package rimloc

import "context"

// Provider is the interface for machine-translation backends. Providers are
// external collaborators: the merge engine itself never calls one, it only
// marks which entries need (re-)translation.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]string, error)
}

// TranslateRequest contains the parameters for one batched provider call.
type TranslateRequest struct {
	Texts      []string
	TargetLang string
	SourceLang string
	Keys       []string          // entry keys, same order as Texts; disambiguation hints
	Glossary   map[string]string // preferred translations for specific phrases
}

// TranslationCache is the interface for caching machine translations.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// TranslateStats is the result of applying a provider to a plan.
type TranslateStats struct {
	Translated int // entries filled by a fresh provider call
	Cached     int // entries filled from the cache
	Skipped    int // unchanged entries left alone
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithSourceLang sets the source language (default "en").
func WithSourceLang(lang string) TranslatorOption {
	return func(t *Translator) {
		t.sourceLang = lang
	}
}

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithGlossary sets preferred translations for specific phrases.
func WithGlossary(glossary map[string]string) TranslatorOption {
	return func(t *Translator) {
		t.glossary = glossary
	}
}

// WithBatchSize caps how many texts go into one provider call.
func WithBatchSize(n int) TranslatorOption {
	return func(t *Translator) {
		if n > 0 {
			t.batchSize = n
		}
	}
}

// Translator applies a machine-translation provider to the updated and
// added entries of a merge plan. Unchanged entries are never touched.
type Translator struct {
	targetLang string
	sourceLang string
	provider   Provider
	cache      TranslationCache
	glossary   map[string]string
	batchSize  int
}

// NewTranslator creates a Translator for the given target language.
func NewTranslator(targetLang string, provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		targetLang: targetLang,
		sourceLang: "en",
		provider:   provider,
		batchSize:  50,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TranslateEntries fills Translated on every updated or added entry, from
// the cache where possible and from the provider otherwise. The snapshot is
// the text to translate: for updated entries it already holds the new
// source text, for added entries it equals the placeholder. Input order is
// preserved; the snapshot itself is never modified.
func (t *Translator) TranslateEntries(ctx context.Context, entries []MergedEntry) ([]MergedEntry, TranslateStats, error) {
	out := make([]MergedEntry, len(entries))
	copy(out, entries)

	var stats TranslateStats
	translations := make(map[string]string)
	fromCache := make(map[string]bool)
	var misses []int // indices into out, one representative per distinct hash
	seen := make(map[string]bool)

	for i := range out {
		if out[i].Action == ActionUnchanged {
			stats.Skipped++
			continue
		}

		hash := HashText(out[i].Snapshot)
		if seen[hash] || fromCache[hash] {
			continue
		}
		if t.cache != nil {
			if cached, ok := t.cache.Get(CacheKey(hash, t.targetLang)); ok {
				translations[hash] = cached
				fromCache[hash] = true
				continue
			}
		}
		seen[hash] = true
		misses = append(misses, i)
	}

	for start := 0; start < len(misses); start += t.batchSize {
		end := start + t.batchSize
		if end > len(misses) {
			end = len(misses)
		}
		batch := misses[start:end]

		texts := make([]string, len(batch))
		keys := make([]string, len(batch))
		for j, idx := range batch {
			texts[j] = out[idx].Snapshot
			keys[j] = out[idx].Key
		}

		results, err := t.provider.Translate(ctx, TranslateRequest{
			Texts:      texts,
			TargetLang: t.targetLang,
			SourceLang: t.sourceLang,
			Keys:       keys,
			Glossary:   t.glossary,
		})
		if err != nil {
			return nil, stats, err
		}
		if len(results) != len(texts) {
			return nil, stats, &CountMismatchError{Expected: len(texts), Got: len(results)}
		}

		for j, idx := range batch {
			hash := HashText(out[idx].Snapshot)
			translations[hash] = results[j]
			if t.cache != nil {
				_ = t.cache.Set(CacheKey(hash, t.targetLang), results[j]) // cache set errors are not fatal
			}
		}
	}

	for i := range out {
		if out[i].Action == ActionUnchanged {
			continue
		}
		hash := HashText(out[i].Snapshot)
		translated, ok := translations[hash]
		if !ok {
			continue
		}
		out[i].Translated = translated
		if fromCache[hash] {
			stats.Cached++
		} else {
			stats.Translated++
		}
	}

	return out, stats, nil
}

// TargetLang returns the target language.
func (t *Translator) TargetLang() string {
	return t.targetLang
}

// SourceLang returns the source language.
func (t *Translator) SourceLang() string {
	return t.sourceLang
}

// Glossary returns the glossary of preferred translations.
func (t *Translator) Glossary() map[string]string {
	return t.glossary
}
