// Package scheduler
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/scoutdesk/scoutdesk/repository"
	"github.com/scoutdesk/scoutdesk/utils"
)

// NotificationRetentionWorker periodically purges notifications older than
// the configured retention window. Housekeeping only: a missed run never
// affects correctness, the next run catches up.
type NotificationRetentionWorker struct {
	notificationRepo repository.NotificationRepository
	logger           *log.Logger
	interval         time.Duration
	retention        time.Duration

	logFile *os.File
}

func NewNotificationRetentionWorker(
	notificationRepo repository.NotificationRepository,
	interval time.Duration,
	retention time.Duration,
) *NotificationRetentionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = utils.DefaultNotificationRetention
	}

	w := &NotificationRetentionWorker{
		notificationRepo: notificationRepo,
		interval:         interval,
		retention:        retention,
	}

	// Initialize worker-specific logger (to stdout and persistent file)
	if err := w.initWorkerLogger(); err != nil {
		// Fallback to default stdout logger if file logger init fails
		w.logger = log.Default()
		w.logger.Printf("retention: failed to initialize file logger: %v", err)
	}

	return w
}

// initWorkerLogger configures a logger that writes to both stdout and a persistent file under data/ (or /data)
func (w *NotificationRetentionWorker) initWorkerLogger() error {
	// Prefer relative data/ then fallback to /data for containerized environments
	candidates := []string{
		filepath.Join("data"),
		"/data",
	}
	for _, dir := range candidates {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		logPath := filepath.Join(dir, "retention.log")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			continue
		}
		w.logFile = f
		mw := io.MultiWriter(os.Stdout, f)
		// log.Logger is goroutine-safe; include timestamps with microseconds and UTC
		w.logger = log.New(mw, "retention ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
		return nil
	}
	return fmt.Errorf("could not create retention log file in any candidate directory")
}

// Start launches the worker loop in a background goroutine and returns a stop function
func (w *NotificationRetentionWorker) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				if w.logFile != nil {
					_ = w.logFile.Close()
				}
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (w *NotificationRetentionWorker) runOnce(ctx context.Context) {
	cutoff := utils.UTCNow().Add(-w.retention)

	purged, err := w.notificationRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		w.logger.Printf("retention: purge failed: %v", err)
		return
	}
	if purged > 0 {
		w.logger.Printf("retention: purged %d notifications older than %s", purged, cutoff.Format(time.RFC3339))
	}
}
