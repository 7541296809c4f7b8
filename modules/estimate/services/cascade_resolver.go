package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stroyhub/backoffice/modules/estimate/domain/costing"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

// CascadeLevel identifies one link of the dependent-selector chain.
// Levels are ordered; selecting at level n resets every level past it.
type CascadeLevel int

const (
	LevelCostCategory CascadeLevel = iota
	LevelDetailCostCategory
	LevelWorkSet
	LevelRate
)

var cascadeOps = map[CascadeLevel]string{
	LevelCostCategory:       "cascade.cost_categories",
	LevelDetailCostCategory: "cascade.detail_cost_categories",
	LevelWorkSet:            "cascade.work_sets",
	LevelRate:               "cascade.rates",
}

// CascadeResolver resolves valid options for each level of the
// cost category -> detail cost category -> work set -> rate chain.
// Option lists are cached per (level, parent) key; a changed parent is
// a disjoint cache entry, never a reuse. A response that arrives after
// its parent changed is simply never read again: its key no longer
// matches anything the resolver asks for.
type CascadeResolver struct {
	mu         sync.Mutex
	source     costing.OptionsSource
	cache      *querycache.Cache
	selections map[CascadeLevel]uuid.UUID
}

func NewCascadeResolver(source costing.OptionsSource, cache *querycache.Cache) *CascadeResolver {
	return &CascadeResolver{
		source:     source,
		cache:      cache,
		selections: make(map[CascadeLevel]uuid.UUID),
	}
}

// Selection returns the current value at the level, if any.
func (r *CascadeResolver) Selection(level CascadeLevel) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.selections[level]
	return id, ok
}

// Options returns the valid options for the level. While the required
// parent is unset the level is disabled: no query executes and the
// caller gets (nil, false, nil).
func (r *CascadeResolver) Options(ctx context.Context, level CascadeLevel) ([]costing.Option, bool, error) {
	var (
		parent uuid.UUID
		ok     bool
	)
	if level > LevelCostCategory {
		parent, ok = r.Selection(level - 1)
		if !ok {
			return nil, false, nil
		}
	}

	key := querycache.NewKey(cascadeOps[level], parent)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.load(ctx, level, parent)
	})
	if err != nil {
		return nil, true, err
	}
	return v.([]costing.Option), true, nil
}

// OptionsFor resolves options for a level against an explicit parent
// instead of the stored selections. The HTTP surface uses this form
// because the client owns the form state; the cache keys are shared
// with Options.
func (r *CascadeResolver) OptionsFor(ctx context.Context, level CascadeLevel, parent *uuid.UUID) ([]costing.Option, bool, error) {
	var p uuid.UUID
	if level > LevelCostCategory {
		if parent == nil {
			return nil, false, nil
		}
		p = *parent
	}
	key := querycache.NewKey(cascadeOps[level], p)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.load(ctx, level, p)
	})
	if err != nil {
		return nil, true, err
	}
	return v.([]costing.Option), true, nil
}

func (r *CascadeResolver) load(ctx context.Context, level CascadeLevel, parent uuid.UUID) ([]costing.Option, error) {
	switch level {
	case LevelCostCategory:
		return r.source.CostCategories(ctx)
	case LevelDetailCostCategory:
		return r.source.DetailCostCategories(ctx, parent)
	case LevelWorkSet:
		return r.source.WorkSets(ctx, parent)
	default:
		return r.source.Rates(ctx, parent)
	}
}

// Select stores the value at the level and synchronously resets every
// deeper level: selections are cleared and their cached option lists
// invalidated before Select returns, so no fetch issued afterwards can
// observe a stale parent.
func (r *CascadeResolver) Select(level CascadeLevel, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selections[level] = id
	r.resetBelow(level)
}

// Clear unsets the level and resets everything past it.
func (r *CascadeResolver) Clear(level CascadeLevel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.selections, level)
	r.resetBelow(level)
}

func (r *CascadeResolver) resetBelow(level CascadeLevel) {
	var ops []string
	for l := level + 1; l <= LevelRate; l++ {
		delete(r.selections, l)
		ops = append(ops, cascadeOps[l])
	}
	if len(ops) > 0 {
		r.cache.InvalidateOp(ops...)
	}
}
