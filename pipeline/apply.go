package pipeline

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/RimLocale/rimloc"
	"github.com/RimLocale/rimloc/resource"
	"github.com/RimLocale/rimloc/worker"
)

// ApplyTranslations writes entries that came back from a translator (via
// the CSV exchange format) onto the target tree. Every entry must carry a
// file placement; entries without one are recorded and skipped.
func ApplyTranslations(ctx context.Context, targetDir string, entries []rimloc.MergedEntry, workers int, log *zap.Logger) (*rimloc.Report, error) {
	if log == nil {
		log = zap.NewNop()
	}

	pool, err := worker.NewPool(workers, log)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	rep := &rimloc.Report{}

	files := make(map[string][]rimloc.MergedEntry)
	for _, e := range entries {
		if e.OriginFile == "" {
			rep.RecordRejected(rimloc.Diagnostic{Path: e.Key, Reason: "no file placement"})
			continue
		}
		files[e.OriginFile] = append(files[e.OriginFile], e)
	}

	rels := make([]string, 0, len(files))
	for rel := range files {
		rels = append(rels, rel)
	}

	err = pool.Map(ctx, len(rels), func(ctx context.Context, i int) {
		rel := rels[i]
		path := filepath.Join(targetDir, filepath.FromSlash(rel))

		written, err := resource.UpdateFile(path, files[rel])
		if err != nil {
			rep.RecordWrite(rel, err.Error())
			return
		}
		if written {
			rep.RecordFileWritten()
		}
	})
	if err != nil {
		return rep, err
	}

	log.Info("translations applied",
		zap.Int("entries", len(entries)),
		zap.Int("files", rep.FilesWritten),
	)
	return rep, nil
}
