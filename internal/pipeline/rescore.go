package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/durgeshw22/campaignwatch/internal/detect"
	"github.com/durgeshw22/campaignwatch/internal/models"
)

// RunRescore recomputes scores for every stored document against the current
// keyword snapshot. Run after keyword changes so old documents reflect the new
// set. An invalid keyword aborts the pass; other per-document failures are
// logged and skipped.
func RunRescore(ctx context.Context, records *models.RecordStore, keywords *models.KeywordStore) error {
	slog.Info("rescore: starting run")
	startTime := time.Now()

	snapshot, err := keywords.Snapshot(ctx)
	if err != nil {
		return err
	}

	docs, err := records.ListDocuments(ctx)
	if err != nil {
		return err
	}

	rescored := 0
	for i := range docs {
		if ctx.Err() != nil {
			break
		}
		doc := &docs[i]

		res, err := detect.Score(detect.Document{ID: doc.ID, Text: doc.Title + "\n" + doc.RawText}, snapshot)
		if err != nil {
			if errors.Is(err, detect.ErrInvalidKeyword) {
				return err
			}
			slog.Error("rescore: score document", "id", doc.ID, "err", err)
			continue
		}

		if err := records.Save(ctx, doc, res); err != nil {
			slog.Error("rescore: save result", "id", doc.ID, "err", err)
			continue
		}
		rescored++
	}

	slog.Info("rescore: run complete",
		"documents", len(docs),
		"rescored", rescored,
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return nil
}
