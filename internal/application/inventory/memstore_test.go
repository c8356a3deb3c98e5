package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/safwanadnan/bazaar/internal/application/inventory"
	"github.com/safwanadnan/bazaar/internal/domain"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

// memDB is an in-memory stand-in for the postgres adapter. Run serializes
// transactions under one mutex and rolls state back when the callback
// fails, so the optimistic-concurrency behavior of the real adapter is
// reproduced faithfully: ApplyDelta mirrors the version-conditioned upsert
// (a missing row or a row at the expected version commits, anything else
// conflicts and aborts the whole unit, ledger append included) and
// GetForUpdate materializes the row it locks, as the adapter does.
type memDB struct {
	mu             sync.Mutex
	products       map[string]*entity.Product
	stores         map[string]*entity.Store
	movements      []*entity.StockMovement
	levels         map[pairKey]*entity.StockLevel
	keys           map[idemKey]int64
	nextMovementID int64

	// forceConflict makes every ApplyDelta fail, for retry-exhaustion tests.
	forceConflict   bool
	applyDeltaCalls int
}

type pairKey struct{ productID, storeID string }

type idemKey struct {
	productID, storeID, key string
}

func newMemDB() *memDB {
	return &memDB{
		products: make(map[string]*entity.Product),
		stores:   make(map[string]*entity.Store),
		levels:   make(map[pairKey]*entity.StockLevel),
		keys:     make(map[idemKey]int64),
	}
}

func (db *memDB) addProduct(id, sku string) {
	db.products[id] = &entity.Product{ID: id, SKU: sku, Name: sku, CreatedAt: time.Now().UTC()}
}

func (db *memDB) addStore(id, name string) {
	db.stores[id] = &entity.Store{ID: id, Name: name, CreatedAt: time.Now().UTC()}
}

// Run implements inventory.TxRunner.
func (db *memDB) Run(ctx context.Context, fn func(
	movements repository.MovementRepository,
	levels repository.LevelRepository,
	keys repository.IdempotencyKeyRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	movLen := len(db.movements)
	nextID := db.nextMovementID
	levelsCopy := make(map[pairKey]*entity.StockLevel, len(db.levels))
	for k, v := range db.levels {
		c := *v
		levelsCopy[k] = &c
	}
	keysCopy := make(map[idemKey]int64, len(db.keys))
	for k, v := range db.keys {
		keysCopy[k] = v
	}

	err := fn(
		&memMovementRepo{db: db, inTx: true},
		&memLevelRepo{db: db, inTx: true},
		&memKeyRepo{db: db, inTx: true},
	)
	if err != nil {
		db.movements = db.movements[:movLen]
		db.nextMovementID = nextID
		db.levels = levelsCopy
		db.keys = keysCopy
		return err
	}
	return nil
}

var _ inventory.TxRunner = (*memDB)(nil)

func (db *memDB) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	db.mu.Lock()
	return db.mu.Unlock
}

// --- catalog repos (only used outside transactions) ---

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.db.lock(false)()
	r.db.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.db.lock(false)()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.db.lock(false)()
	for _, p := range r.db.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.db.lock(false)()
	var list []*entity.Product
	for _, p := range r.db.products {
		c := *p
		list = append(list, &c)
	}
	return list, nil
}

type memStoreRepo struct{ db *memDB }

func (r *memStoreRepo) Create(_ context.Context, s *entity.Store) error {
	defer r.db.lock(false)()
	r.db.stores[s.ID] = s
	return nil
}

func (r *memStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	defer r.db.lock(false)()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *memStoreRepo) List(_ context.Context, limit, offset int) ([]*entity.Store, error) {
	defer r.db.lock(false)()
	var list []*entity.Store
	for _, s := range r.db.stores {
		c := *s
		list = append(list, &c)
	}
	return list, nil
}

// --- ledger ---

type memMovementRepo struct {
	db   *memDB
	inTx bool
}

func (r *memMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	defer r.db.lock(r.inTx)()
	r.db.nextMovementID++
	m.ID = r.db.nextMovementID
	m.CommittedAt = time.Now().UTC()
	c := *m
	r.db.movements = append(r.db.movements, &c)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	defer r.db.lock(r.inTx)()
	for _, m := range r.db.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.db.lock(r.inTx)()
	var matched []*entity.StockMovement
	for _, m := range r.db.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.StoreID != "" && m.StoreID != f.StoreID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CommittedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CommittedAt.After(*f.To) {
			continue
		}
		c := *m
		matched = append(matched, &c)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// --- levels ---

type memLevelRepo struct {
	db   *memDB
	inTx bool
}

func (r *memLevelRepo) Get(_ context.Context, productID, storeID string) (*entity.StockLevel, error) {
	defer r.db.lock(r.inTx)()
	return r.db.levelCopy(productID, storeID), nil
}

func (r *memLevelRepo) GetForUpdate(_ context.Context, productID, storeID string) (*entity.StockLevel, error) {
	defer r.db.lock(r.inTx)()
	k := pairKey{productID, storeID}
	if _, ok := r.db.levels[k]; !ok {
		r.db.levels[k] = &entity.StockLevel{
			ProductID: productID,
			StoreID:   storeID,
			UpdatedAt: time.Now().UTC(),
		}
	}
	return r.db.levelCopy(productID, storeID), nil
}

func (db *memDB) levelCopy(productID, storeID string) *entity.StockLevel {
	if l, ok := db.levels[pairKey{productID, storeID}]; ok {
		c := *l
		return &c
	}
	return &entity.StockLevel{ProductID: productID, StoreID: storeID}
}

func (r *memLevelRepo) ApplyDelta(_ context.Context, productID, storeID string, delta, expectedVersion int64) (*entity.StockLevel, error) {
	defer r.db.lock(r.inTx)()
	r.db.applyDeltaCalls++
	if r.db.forceConflict {
		return nil, domain.ErrConcurrentModification
	}
	k := pairKey{productID, storeID}
	current, ok := r.db.levels[k]
	if !ok {
		l := &entity.StockLevel{
			ProductID: productID,
			StoreID:   storeID,
			Quantity:  delta,
			Version:   expectedVersion + 1,
			UpdatedAt: time.Now().UTC(),
		}
		r.db.levels[k] = l
		c := *l
		return &c, nil
	}
	if current.Version != expectedVersion {
		return nil, domain.ErrConcurrentModification
	}
	current.Quantity += delta
	current.Version++
	current.UpdatedAt = time.Now().UTC()
	c := *current
	return &c, nil
}

func (r *memLevelRepo) Overwrite(_ context.Context, level *entity.StockLevel) error {
	defer r.db.lock(r.inTx)()
	k := pairKey{level.ProductID, level.StoreID}
	if current, ok := r.db.levels[k]; ok {
		current.Quantity = level.Quantity
		current.UpdatedAt = level.UpdatedAt
		return nil
	}
	c := *level
	r.db.levels[k] = &c
	return nil
}

func (r *memLevelRepo) ListByStore(_ context.Context, storeID string, limit, offset int) ([]*entity.StockLevel, error) {
	defer r.db.lock(r.inTx)()
	var list []*entity.StockLevel
	for _, l := range r.db.levels {
		if l.StoreID == storeID {
			c := *l
			list = append(list, &c)
		}
	}
	return list, nil
}

// --- idempotency keys ---

type memKeyRepo struct {
	db   *memDB
	inTx bool
}

func (r *memKeyRepo) Seen(_ context.Context, productID, storeID, key string) (bool, error) {
	defer r.db.lock(r.inTx)()
	_, seen := r.db.keys[idemKey{productID, storeID, key}]
	return seen, nil
}

func (r *memKeyRepo) Record(_ context.Context, productID, storeID, key string, movementID int64) error {
	defer r.db.lock(r.inTx)()
	k := idemKey{productID, storeID, key}
	if _, exists := r.db.keys[k]; exists {
		return domain.ErrDuplicate
	}
	r.db.keys[k] = movementID
	return nil
}
