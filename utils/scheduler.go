package utils

import (
	"certgen/sheetdb"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SHEET-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileSheetSchemas re-runs the column reconciler over every partition.
// Sheets are human-editable, so new form columns can appear between
// deployments; the sweep keeps the canonical columns present. Idempotent, so
// the common case performs zero writes.
func reconcileSheetSchemas() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, partition := range sheetdb.Partitions {
		if _, err := sheetdb.Database.EnsureColumns(ctx, partition); err != nil {
			logScheduler("Error reconciling " + partition + " sheet: " + err.Error())
			continue
		}
	}
	logScheduler("Partition schemas reconciled")
}

// snapshotStats logs per-partition lifecycle counts once a day.
func snapshotStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stats, err := sheetdb.Database.Stats(ctx)
	if err != nil {
		logScheduler("Error collecting stats: " + err.Error())
		return
	}
	for partition, ps := range stats {
		logScheduler(fmt.Sprintf("%s: total=%d pending=%d generated=%d issued=%d revoked=%d",
			partition, ps.Total, ps.Pending, ps.Generated, ps.Issued, ps.Revoked))
	}
}

// StartSheetScheduler runs the hourly schema reconcile and the daily stats
// snapshot.
func StartSheetScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 * * * *", reconcileSheetSchemas); err != nil {
		log.Printf("Failed to schedule schema reconcile: %v", err)
	}
	if _, err := c.AddFunc("0 6 * * *", snapshotStats); err != nil {
		log.Printf("Failed to schedule stats snapshot: %v", err)
	}

	c.Start()
	logScheduler("Sheet scheduler started")
}
