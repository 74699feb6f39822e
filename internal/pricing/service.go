package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbmodels "github.com/lmarchal/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
	pkgredis "github.com/lmarchal/grocerly-backend/pkg/redis"
)

// Service estimates the retail cost of shopping lists.
type Service interface {
	EstimateListCost(ctx context.Context, listID uuid.UUID) (*EstimateDTO, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
}

type productSearcher interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
}

type listReader interface {
	FindListByID(ctx context.Context, id uuid.UUID) (*dbmodels.ShoppingList, error)
	ItemsForList(ctx context.Context, listID uuid.UUID) ([]dbmodels.ShoppingListItem, error)
}

type ingredientLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dbmodels.Ingredient, error)
}

// Config holds the estimate tunables derived from the pricing configuration.
type Config struct {
	Currency string
	CacheTTL time.Duration
}

// service implements the pricing service.
type service struct {
	client      productSearcher
	lists       listReader
	ingredients ingredientLoader
	cache       pkgredis.Cache
	currency    string
	cacheTTL    time.Duration
	logg        *logger.Logger
}

// NewService constructs a pricing service instance. The cache is optional:
// without one every estimate hits the retailer API.
func NewService(client productSearcher, lists listReader, ingredients ingredientLoader, cache pkgredis.Cache, cfg Config, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("pricing client required")
	}
	if lists == nil {
		return nil, fmt.Errorf("list reader required")
	}
	if ingredients == nil {
		return nil, fmt.Errorf("ingredient loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "EUR"
	}
	return &service{
		client:      client,
		lists:       lists,
		ingredients: ingredients,
		cache:       cache,
		currency:    currency,
		cacheTTL:    cfg.CacheTTL,
		logg:        logg,
	}, nil
}

// SearchProducts proxies a catalog search through the cache.
func (s *service) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	return s.cachedSearch(ctx, query, limit)
}

// EstimateListCost prices every line of the list and sums the result. Lines
// whose ingredient has a search term use it as the retailer query; lines the
// retailer knows nothing about still price through the mock fallback, so the
// estimate always covers the whole list.
func (s *service) EstimateListCost(ctx context.Context, listID uuid.UUID) (*EstimateDTO, error) {
	list, err := s.lists.FindListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shopping list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load shopping list")
	}

	rows, err := s.lists.ItemsForList(ctx, list.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load shopping list items")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	ingredients, err := s.ingredients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load ingredients")
	}
	byID := make(map[uuid.UUID]dbmodels.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	estimate := &EstimateDTO{
		ShoppingListID: list.ID,
		TotalCost:      decimal.Zero,
		Currency:       s.currency,
		Items:          []EstimatedItemDTO{},
	}
	for _, row := range rows {
		ing, ok := byID[row.IngredientID]
		if !ok {
			continue
		}
		query := ing.Name
		if ing.SearchTerm != nil && *ing.SearchTerm != "" {
			query = *ing.SearchTerm
		}

		products, err := s.cachedSearch(ctx, query, 1)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			continue
		}
		product := products[0]
		lineTotal := product.Price.Mul(row.Quantity)
		estimate.TotalCost = estimate.TotalCost.Add(lineTotal)
		estimate.Items = append(estimate.Items, EstimatedItemDTO{
			IngredientID: row.IngredientID,
			Name:         ing.Name,
			Quantity:     row.Quantity,
			Unit:         row.Unit.String(),
			UnitPrice:    product.Price,
			TotalPrice:   lineTotal,
			ProductID:    product.ID,
		})
	}
	estimate.TotalCost = estimate.TotalCost.Round(2)
	estimate.ItemCount = len(estimate.Items)
	return estimate, nil
}

// cachedSearch reads through the price cache. Cache failures are logged and
// ignored so the retailer call still happens.
func (s *service) cachedSearch(ctx context.Context, query string, limit int) ([]Product, error) {
	if s.cache == nil {
		return s.searchUpstream(ctx, query, limit)
	}

	key := s.cache.PricingKey("search", query, fmt.Sprintf("limit=%d", limit))
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var products []Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
	} else if !pkgredis.IsCacheMiss(err) {
		s.logg.Warn(s.logg.WithField(ctx, "key", key), "price cache read failed")
	}

	products, err := s.searchUpstream(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", key), "price cache write failed")
		}
	}
	return products, nil
}

func (s *service) searchUpstream(ctx context.Context, query string, limit int) ([]Product, error) {
	products, err := s.client.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retailer search failed")
	}
	return products, nil
}
