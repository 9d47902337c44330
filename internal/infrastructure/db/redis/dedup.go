package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker remembers recently processed upload payloads so the same
// file is not sent to the analyzer twice in quick succession.
// Key format: upload:<sha256-hex-of-payload>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether a payload with this digest was already
// processed within the dedup window.
func (d *DedupChecker) IsDuplicate(ctx context.Context, digest string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(digest)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that a payload with this digest has been processed
// (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, digest string) error {
	return d.client.Set(ctx, d.key(digest), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(digest string) string {
	return "upload:" + digest
}
