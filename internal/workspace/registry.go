package workspace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Registry keeps live workspaces in memory. A workspace that is not touched
// for the idle TTL is evicted and closed.
type Registry struct {
	ctx   context.Context
	deps  Deps
	cache *cache.Cache
	log   *zap.Logger
}

func NewRegistry(ctx context.Context, deps Deps, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	c := cache.New(idleTTL, idleTTL/2)
	r := &Registry{ctx: ctx, deps: deps, cache: c, log: deps.Log}
	c.OnEvicted(func(key string, v interface{}) {
		if w, ok := v.(*Workspace); ok {
			w.Close()
			r.log.Debug("workspace evicted", zap.String("workspace_id", key))
		}
	})
	return r
}

func (r *Registry) Create() *Workspace {
	w := New(r.ctx, r.deps)
	r.cache.Set(w.ID().String(), w, cache.DefaultExpiration)
	r.log.Info("workspace created", zap.String("workspace_id", w.ID().String()))
	return w
}

// Get returns a live workspace and extends its idle deadline.
func (r *Registry) Get(id uuid.UUID) (*Workspace, bool) {
	key := id.String()
	v, found := r.cache.Get(key)
	if !found {
		return nil, false
	}
	w := v.(*Workspace)
	r.cache.Set(key, w, cache.DefaultExpiration)
	return w, true
}

// Delete closes and forgets a workspace.
func (r *Registry) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Close evicts every workspace.
func (r *Registry) Close() {
	for key := range r.cache.Items() {
		r.cache.Delete(key)
	}
}
