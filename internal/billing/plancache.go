package billing

import (
	"time"
)

// DefaultPlanTTL bounds plan staleness. The cache is cosmetic: plans change
// rarely and a stale price display corrects itself within the TTL.
const DefaultPlanTTL = 5 * time.Minute

// PlanCache is an explicit, time-boxed snapshot of the provider's plans. It
// is a plain value passed in and returned by Refresh, never module state, so
// nothing leaks between requests; the holder decides where it lives.
type PlanCache struct {
	Plans     []Plan
	FetchedAt time.Time
	TTL       time.Duration
}

// NewPlanCache returns an empty cache with the given TTL (DefaultPlanTTL
// when zero).
func NewPlanCache(ttl time.Duration) PlanCache {
	if ttl == 0 {
		ttl = DefaultPlanTTL
	}
	return PlanCache{TTL: ttl}
}

// Fresh reports whether the snapshot is still servable at now.
func (c PlanCache) Fresh(now time.Time) bool {
	return len(c.Plans) > 0 && now.Sub(c.FetchedAt) < c.TTL
}

// Invalidate drops the snapshot, keeping the TTL. Call after any local
// billing mutation so the next read refetches.
func (c PlanCache) Invalidate() PlanCache {
	return PlanCache{TTL: c.TTL}
}

// Refresh returns the cached plans when fresh, otherwise fetches through the
// provider and returns the updated cache value alongside the plans.
func (c PlanCache) Refresh(provider Provider, now time.Time) (PlanCache, []Plan, error) {
	if c.Fresh(now) {
		return c, c.Plans, nil
	}

	plans, err := provider.ListPlans()
	if err != nil {
		return c, nil, err
	}
	return PlanCache{Plans: plans, FetchedAt: now, TTL: c.TTL}, plans, nil
}
