// Package readcache caches tenant-scoped read models. Mutations invalidate by tag.
package readcache

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-backoffice/internal/logger"
	"github.com/BruksfildServices01/barber-backoffice/internal/metrics"
)

// Entities a cached read can depend on.
const (
	Appointments   = "appointments"
	Finance        = "finance"
	Products       = "products"
	StockMovements = "stock_movements"
	Expenses       = "expenses"
	Clients        = "clients"
	Services       = "services"
	Staff          = "staff"
	Organization   = "organization"
	Dashboard      = "dashboard"
)

type Cache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}

func Tag(organizationID uint, entity string) string {
	return fmt.Sprintf("org:%d:%s", organizationID, entity)
}

// Tags expands entities into organization-scoped tags.
func Tags(organizationID uint, entities ...string) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = Tag(organizationID, e)
	}
	return out
}

func Key(organizationID uint, entity string, parts ...any) string {
	var b strings.Builder
	b.WriteString(Tag(organizationID, entity))
	for _, p := range parts {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}

// Remember returns the cached value for key or loads, stores and returns it.
// Cache failures are logged and never fail the read.
func Remember[T any](ctx context.Context, c Cache, key string, tags []string, load func() (T, error)) (T, error) {
	var cached T
	if c != nil {
		found, err := c.Get(ctx, key, &cached)
		if err != nil {
			logger.FromContext(ctx).Warn("read cache get failed", zap.String("key", key), zap.Error(err))
		}
		metrics.RecordCacheLookup(found)
		if found {
			return cached, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if c != nil {
		if err := c.Set(ctx, key, value, tags...); err != nil {
			logger.FromContext(ctx).Warn("read cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

// Forget invalidates the given entities of an organization, logging failures.
func Forget(ctx context.Context, c Cache, organizationID uint, entities ...string) {
	if c == nil || len(entities) == 0 {
		return
	}
	if err := c.Invalidate(ctx, Tags(organizationID, entities...)...); err != nil {
		logger.FromContext(ctx).Warn("read cache invalidate failed",
			zap.Strings("entities", entities), zap.Error(err))
	}
}
