package localstore

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"

	"github.com/xenking/kirana-storefront/internal/domain/order"
)

// orderKey matches the storefront's localStorage key for the current order.
const orderKey = "currentOrder"

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository over the local store.
type OrderRepository struct {
	store *Store
	lg    *zap.Logger
}

// NewOrderRepository returns an OrderRepository backed by the given store.
func NewOrderRepository(store *Store, lg *zap.Logger) *OrderRepository {
	return &OrderRepository{store: store, lg: lg}
}

// Save stores the order snapshot, replacing any previous one.
func (r *OrderRepository) Save(_ context.Context, o *order.Order) error {
	e := &jx.Encoder{}
	encodeOrder(e, o)
	return r.store.Set(orderKey, e.Bytes())
}

// Current returns the stored order snapshot. Both an absent key and a corrupt
// payload count as "no order": corruption is logged and downgraded so the
// confirmation view can redirect instead of failing.
func (r *OrderRepository) Current(_ context.Context) (*order.Order, error) {
	data, err := r.store.Get(orderKey)
	if errors.Is(err, ErrNotFound) {
		return nil, order.ErrNoOrder
	}
	if err != nil {
		return nil, errors.Wrap(err, "read order")
	}

	o, err := decodeOrder(jx.DecodeBytes(data))
	if err != nil {
		r.lg.Warn("stored order is corrupt, treating as absent", zap.Error(err))
		return nil, order.ErrNoOrder
	}
	return o, nil
}
