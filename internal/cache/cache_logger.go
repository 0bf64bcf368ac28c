package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates a cache pattern with logging.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateAccountCache drops the cached account and its derived
// onboarding state after a role or profile change.
func InvalidateAccountCache(ctx context.Context, cm *CacheManager, userID string) {
	SafeDelete(ctx, cm.Account,
		fmt.Sprintf("id:%s", userID),
		fmt.Sprintf("stage:%s", userID))
	SafeInvalidatePattern(ctx, cm.Profile, fmt.Sprintf("user:%s:*", userID))
}

// InvalidateJobCache drops job caches after a posting changes.
func InvalidateJobCache(ctx context.Context, cm *CacheManager, jobID, companyID string) {
	SafeDelete(ctx, cm.Job, fmt.Sprintf("id:%s", jobID))
	SafeInvalidatePattern(ctx, cm.Job, fmt.Sprintf("company:%s:*", companyID))
	SafeInvalidatePattern(ctx, cm.Job, "list:*")
}

// InvalidateWaitlistCache drops the cached signup count.
func InvalidateWaitlistCache(ctx context.Context, cm *CacheManager) {
	SafeDelete(ctx, cm.Waitlist, "count")
}
