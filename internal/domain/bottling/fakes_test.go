package bottling

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/core/types"
	"essentia/internal/domain"
	"essentia/internal/domain/allocation"
	"essentia/internal/domain/catalogs/bottlesize"
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/domain/catalogs/product"
	"essentia/internal/domain/catalogs/shop"
)

// world is the shared in-memory state behind all fake repositories.
type world struct {
	lots     map[id.ID]lot.BulkLot
	comps    map[id.ID]bottlesize.ComponentStock
	products map[id.ID]product.RetailProduct
	shops    map[id.ID]shop.Shop
	allocs   map[id.ID]allocation.ShopAllocation
	records  []ConversionRecord

	// recordCreateErr injects a failure into record appends
	recordCreateErr error
}

func newWorld() *world {
	return &world{
		lots:     make(map[id.ID]lot.BulkLot),
		comps:    make(map[id.ID]bottlesize.ComponentStock),
		products: make(map[id.ID]product.RetailProduct),
		shops:    make(map[id.ID]shop.Shop),
		allocs:   make(map[id.ID]allocation.ShopAllocation),
	}
}

func (w *world) clone() *world {
	c := newWorld()
	for k, v := range w.lots {
		c.lots[k] = v
	}
	for k, v := range w.comps {
		c.comps[k] = v
	}
	for k, v := range w.products {
		c.products[k] = v
	}
	for k, v := range w.shops {
		c.shops[k] = v
	}
	for k, v := range w.allocs {
		c.allocs[k] = v
	}
	c.records = append(c.records, w.records...)
	c.recordCreateErr = w.recordCreateErr
	return c
}

// fakeTxManager snapshots the world before the callback and restores it
// when the callback fails, mimicking a rollback.
type fakeTxManager struct {
	w *world
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	backup := m.w.clone()
	if err := fn(ctx); err != nil {
		*m.w = *backup
		return err
	}
	return nil
}

// --- lot repository ---

type fakeLotRepo struct {
	domain.CatalogRepository[*lot.BulkLot]
	w *world
}

func (r *fakeLotRepo) GetByID(ctx context.Context, lotID id.ID) (*lot.BulkLot, error) {
	l, ok := r.w.lots[lotID]
	if !ok {
		return nil, apperror.NewNotFound("bulk lot", lotID.String())
	}
	cp := l
	return &cp, nil
}

func (r *fakeLotRepo) GetForUpdate(ctx context.Context, lotID id.ID) (*lot.BulkLot, error) {
	return r.GetByID(ctx, lotID)
}

// Update enforces the store's optimistic-lock contract: the struct's
// version must match the stored row, and the incremented version is
// synced back after the write.
func (r *fakeLotRepo) Update(ctx context.Context, l *lot.BulkLot) error {
	cur, ok := r.w.lots[l.ID]
	if !ok {
		return apperror.NewNotFound("bulk lot", l.ID.String())
	}
	if cur.Version != l.Version {
		return apperror.NewConcurrentModification("bulk_lots", l.ID)
	}
	l.SetVersion(cur.Version + 1)
	r.w.lots[l.ID] = *l
	return nil
}

func (r *fakeLotRepo) FindByName(ctx context.Context, name string) (*lot.BulkLot, error) {
	for _, l := range r.w.lots {
		if l.Name == name {
			cp := l
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("bulk lot", name)
}

func (r *fakeLotRepo) ListEligible(ctx context.Context, minVolumeML types.Volume) ([]*lot.BulkLot, error) {
	var out []*lot.BulkLot
	for _, l := range r.w.lots {
		if l.IsEligible(minVolumeML) {
			cp := l
			out = append(out, &cp)
		}
	}
	sortLots(out)
	return out, nil
}

func (r *fakeLotRepo) ListActive(ctx context.Context) ([]*lot.BulkLot, error) {
	var out []*lot.BulkLot
	for _, l := range r.w.lots {
		if l.Active && !l.DeletionMark {
			cp := l
			out = append(out, &cp)
		}
	}
	sortLots(out)
	return out, nil
}

func sortLots(lots []*lot.BulkLot) {
	sort.Slice(lots, func(i, j int) bool { return lots[i].Name < lots[j].Name })
}

// --- component stock repository ---

type fakeComponentRepo struct {
	domain.CatalogRepository[*bottlesize.ComponentStock]
	w *world
}

func (r *fakeComponentRepo) GetBySize(ctx context.Context, sizeML types.Volume) (*bottlesize.ComponentStock, error) {
	for _, c := range r.w.comps {
		if c.SizeML == sizeML {
			cp := c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("bottle size", sizeML.String())
}

func (r *fakeComponentRepo) GetBySizeForUpdate(ctx context.Context, sizeML types.Volume) (*bottlesize.ComponentStock, error) {
	return r.GetBySize(ctx, sizeML)
}

func (r *fakeComponentRepo) Update(ctx context.Context, c *bottlesize.ComponentStock) error {
	cur, ok := r.w.comps[c.ID]
	if !ok {
		return apperror.NewNotFound("bottle size", c.ID.String())
	}
	if cur.Version != c.Version {
		return apperror.NewConcurrentModification("bottle_sizes", c.ID)
	}
	c.SetVersion(cur.Version + 1)
	r.w.comps[c.ID] = *c
	return nil
}

// --- product repository ---

type fakeProductRepo struct {
	domain.CatalogRepository[*product.RetailProduct]
	w *world
}

func (r *fakeProductRepo) Create(ctx context.Context, p *product.RetailProduct) error {
	r.w.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.RetailProduct, error) {
	p, ok := r.w.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.RetailProduct, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeProductRepo) Update(ctx context.Context, p *product.RetailProduct) error {
	cur, ok := r.w.products[p.ID]
	if !ok {
		return apperror.NewNotFound("product", p.ID.String())
	}
	if cur.Version != p.Version {
		return apperror.NewConcurrentModification("products", p.ID)
	}
	p.SetVersion(cur.Version + 1)
	r.w.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*product.RetailProduct, error) {
	for _, p := range r.w.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (r *fakeProductRepo) FindBySKUForUpdate(ctx context.Context, sku string) (*product.RetailProduct, error) {
	return r.FindBySKU(ctx, sku)
}

func (r *fakeProductRepo) ListActive(ctx context.Context) ([]*product.RetailProduct, error) {
	var out []*product.RetailProduct
	for _, p := range r.w.products {
		if p.Active && !p.DeletionMark {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *fakeProductRepo) ListByLot(ctx context.Context, lotID id.ID) ([]*product.RetailProduct, error) {
	var out []*product.RetailProduct
	for _, p := range r.w.products {
		if p.LotID != nil && *p.LotID == lotID {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- shop repository ---

type fakeShopRepo struct {
	domain.CatalogRepository[*shop.Shop]
	w *world
}

func (r *fakeShopRepo) GetByID(ctx context.Context, shopID id.ID) (*shop.Shop, error) {
	s, ok := r.w.shops[shopID]
	if !ok {
		return nil, apperror.NewNotFound("shop", shopID.String())
	}
	cp := s
	return &cp, nil
}

func (r *fakeShopRepo) ListActive(ctx context.Context) ([]*shop.Shop, error) {
	var out []*shop.Shop
	for _, s := range r.w.shops {
		if s.Active && !s.DeletionMark {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- allocation repository ---

type fakeAllocRepo struct {
	w *world
}

func (r *fakeAllocRepo) Get(ctx context.Context, shopID, productID id.ID) (*allocation.ShopAllocation, error) {
	for _, a := range r.w.allocs {
		if a.ShopID == shopID && a.ProductID == productID {
			cp := a
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("allocation", shopID.String())
}

func (r *fakeAllocRepo) AddQuantity(ctx context.Context, alloc *allocation.ShopAllocation) (*allocation.ShopAllocation, error) {
	for aid, a := range r.w.allocs {
		if a.ShopID == alloc.ShopID && a.ProductID == alloc.ProductID {
			a.Quantity += alloc.Quantity
			r.w.allocs[aid] = a
			cp := a
			return &cp, nil
		}
	}
	r.w.allocs[alloc.ID] = *alloc
	cp := *alloc
	return &cp, nil
}

func (r *fakeAllocRepo) SetQuantity(ctx context.Context, allocID id.ID, quantity int) error {
	a, ok := r.w.allocs[allocID]
	if !ok {
		return apperror.NewNotFound("allocation", allocID.String())
	}
	a.Quantity = quantity
	r.w.allocs[allocID] = a
	return nil
}

func (r *fakeAllocRepo) Zero(ctx context.Context, allocID id.ID) error {
	return r.SetQuantity(ctx, allocID, 0)
}

func (r *fakeAllocRepo) BulkInsert(ctx context.Context, allocs []*allocation.ShopAllocation) error {
	for _, a := range allocs {
		r.w.allocs[a.ID] = *a
	}
	return nil
}

func (r *fakeAllocRepo) ListByShop(ctx context.Context, shopID id.ID) ([]*allocation.ShopAllocation, error) {
	var out []*allocation.ShopAllocation
	for _, a := range r.w.allocs {
		if a.ShopID == shopID {
			cp := a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAllocRepo) ListNonZero(ctx context.Context) ([]*allocation.ShopAllocation, error) {
	var out []*allocation.ShopAllocation
	for _, a := range r.w.allocs {
		if a.Quantity > 0 {
			cp := a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeAllocRepo) SumByProduct(ctx context.Context, productID id.ID) (int, error) {
	total := 0
	for _, a := range r.w.allocs {
		if a.ProductID == productID {
			total += a.Quantity
		}
	}
	return total, nil
}

func (r *fakeAllocRepo) DeleteByShop(ctx context.Context, shopID id.ID) (int64, error) {
	var deleted int64
	for aid, a := range r.w.allocs {
		if a.ShopID == shopID {
			delete(r.w.allocs, aid)
			deleted++
		}
	}
	return deleted, nil
}

// --- conversion record repository ---

type fakeRecordRepo struct {
	w *world
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec *ConversionRecord) error {
	if r.w.recordCreateErr != nil {
		return r.w.recordCreateErr
	}
	r.w.records = append(r.w.records, *rec)
	return nil
}

func (r *fakeRecordRepo) List(ctx context.Context, f RecordFilter) ([]*ConversionRecord, int64, error) {
	var out []*ConversionRecord
	for i := range r.w.records {
		rec := r.w.records[i]
		if f.LotID != nil && rec.LotID != *f.LotID {
			continue
		}
		if f.ShopID != nil && rec.ShopID != *f.ShopID {
			continue
		}
		if f.SizeML != nil && rec.SizeML != *f.SizeML {
			continue
		}
		out = append(out, &rec)
	}
	return out, int64(len(out)), nil
}

// --- sequence querier for the numerator ---

type seqRow struct {
	val int64
}

func (r seqRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = r.val
		}
	}
	return nil
}

type seqQuerier struct {
	n int64
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.n++
	return seqRow{val: q.n}
}
