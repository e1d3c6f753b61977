package stock

import (
	"context"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/stock"
	"github.com/BruksfildServices01/barber-backoffice/internal/dto"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

type ListHistory struct {
	repo  domain.Repository
	cache readcache.Cache
}

func NewListHistory(repo domain.Repository, cache readcache.Cache) *ListHistory {
	return &ListHistory{repo: repo, cache: cache}
}

func (uc *ListHistory) Execute(ctx context.Context, actor authz.Actor, f domain.HistoryFilter) ([]dto.StockMovementDTO, error) {
	key := readcache.Key(actor.OrganizationID, readcache.StockMovements, f.ProductID, f.Limit)
	tags := readcache.Tags(actor.OrganizationID, readcache.StockMovements, readcache.Products, readcache.Staff)

	return readcache.Remember(ctx, uc.cache, key, tags, func() ([]dto.StockMovementDTO, error) {
		rows, err := uc.repo.History(ctx, actor.OrganizationID, f)
		if err != nil {
			return nil, err
		}
		return dto.NewStockMovementList(rows), nil
	})
}

type Reconcile struct {
	repo domain.Repository
}

func NewReconcile(repo domain.Repository) *Reconcile {
	return &Reconcile{repo: repo}
}

func (uc *Reconcile) Execute(ctx context.Context, actor authz.Actor, productID uint) (domain.Reconciliation, error) {
	counter, sum, err := uc.repo.LedgerSum(ctx, actor.OrganizationID, productID)
	if err != nil {
		return domain.Reconciliation{}, err
	}
	return domain.Reconcile(productID, counter, sum), nil
}
