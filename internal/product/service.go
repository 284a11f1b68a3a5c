package product

import (
	"context"
	"errors"

	"shopelite/internal/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const defaultCacheSize = 256

// Service is the catalog accessor used by the rest of the app. Fetch
// failures are logged and reported as empty results: callers cannot tell
// "catalog unreachable" from "catalog empty".
type Service interface {
	FetchProducts(ctx context.Context) []Product
	FetchCategories(ctx context.Context) []string
	FetchProductByID(ctx context.Context, id int) (Product, bool)
}

type service struct {
	repo      Repository
	rubPerUSD float64
	cache     *lru.Cache[int, Product]
}

// NewService wraps repo. rubPerUSD converts source prices (<= 0 disables
// conversion); cacheSize bounds the by-id cache.
func NewService(repo Repository, rubPerUSD float64, cacheSize int) Service {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	// lru.New only fails on a non-positive size
	cache, _ := lru.New[int, Product](cacheSize)

	return &service{repo: repo, rubPerUSD: rubPerUSD, cache: cache}
}

func (s *service) FetchProducts(ctx context.Context) []Product {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchProducts"),
	)

	records, err := s.repo.GetProducts(ctx)
	if err != nil {
		log.Error("error fetching products", zap.Error(err))
		return []Product{}
	}

	products := make([]Product, 0, len(records))
	for _, rec := range records {
		p := Normalize(rec, s.rubPerUSD)
		s.cache.Add(p.ID, p)
		products = append(products, p)
	}

	log.Debug("products fetched", zap.Int("count", len(products)))
	return products
}

func (s *service) FetchCategories(ctx context.Context) []string {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("error fetching categories", zap.Error(err))
		return []string{}
	}

	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func (s *service) FetchProductByID(ctx context.Context, id int) (Product, bool) {
	if p, ok := s.cache.Get(id); ok {
		return p, true
	}

	log := logger.FromCtx(ctx).With(zap.Int("product_id", id))

	rec, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInvalidProductID) {
			log.Info("product not found")
		} else {
			log.Error("error fetching product", zap.Error(err))
		}
		return Product{}, false
	}

	p := Normalize(*rec, s.rubPerUSD)
	s.cache.Add(p.ID, p)
	return p, true
}
