package image

import (
	"context"

	"github.com/sirupsen/logrus"

	"luckyticket/internal/metrics"
	"luckyticket/internal/storage"
)

type CleanupOutcome string

const (
	CleanupRemoved CleanupOutcome = "removed"
	CleanupFailed  CleanupOutcome = "failed"
)

// CleanupResult reports a compensating blob deletion. A failed cleanup leaves
// an orphaned blob; it is logged and counted, never returned to the caller.
type CleanupResult struct {
	Filename string
	Outcome  CleanupOutcome
	Err      error
}

func compensateBlob(ctx context.Context, store storage.FileStore, log *logrus.Logger, filename, reason string) CleanupResult {
	res := CleanupResult{Filename: filename, Outcome: CleanupRemoved}
	if err := store.Remove(context.WithoutCancel(ctx), filename); err != nil {
		res.Outcome = CleanupFailed
		res.Err = err
		log.WithError(err).
			WithField("filename", filename).
			WithField("reason", reason).
			Warn("blob cleanup failed")
	} else {
		log.WithField("filename", filename).
			WithField("reason", reason).
			Debug("blob removed")
	}
	metrics.RecordCleanup(string(res.Outcome))
	return res
}
