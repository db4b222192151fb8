package jobs

import (
	"context"
	"time"

	"travelmate/internal/directory"
	"travelmate/internal/logging"
)

// SnapshotLoader loads the current directory/post state from storage.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (*directory.Snapshot, error)
}

// RefreshOnce reloads the snapshot from storage and swaps it into the
// provider. A load error keeps the previous snapshot in place.
func RefreshOnce(ctx context.Context, loader SnapshotLoader, provider *directory.Provider) error {
	snap, err := loader.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	provider.Swap(snap)
	return nil
}

// RunSnapshotRefresh reloads the directory snapshot on the interval
// until ctx is done. Recommendation requests always see a complete
// snapshot; eventual consistency with the directory is acceptable.
func RunSnapshotRefresh(ctx context.Context, loader SnapshotLoader, provider *directory.Provider, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := RefreshOnce(ctx, loader, provider); err != nil {
				logging.Warn("snapshot_refresh_failed", map[string]any{"error": err.Error()})
			}
		}
	}
}
