// Package noop provides a cache that never stores anything, used when Redis is not configured.
package noop

import (
	"context"
	"time"

	"github.com/ymoumine/RentalAI/internal/port/cache"
)

type Cache struct{}

func New() cache.CacheRepository { return Cache{} }

func (Cache) Get(context.Context, string) ([]byte, error) { return nil, cache.ErrNotFound }

func (Cache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Cache) Delete(context.Context, string) error { return nil }
