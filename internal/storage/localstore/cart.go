package localstore

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/kirana-storefront/internal/domain/cart"
)

// cartKey matches the storefront's localStorage key.
const cartKey = "patilKiranaCart"

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository over the local store.
type CartRepository struct {
	store *Store
}

// NewCartRepository returns a CartRepository backed by the given store.
func NewCartRepository(store *Store) *CartRepository {
	return &CartRepository{store: store}
}

// Load returns the persisted cart. An absent key yields an empty cart; a
// corrupt payload is an error the engine downgrades to an empty cart.
func (r *CartRepository) Load(_ context.Context) ([]cart.LineItem, error) {
	data, err := r.store.Get(cartKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read cart")
	}

	items, err := decodeLineItems(jx.DecodeBytes(data))
	if err != nil {
		return nil, errors.Wrap(err, "parse cart")
	}
	return items, nil
}

// Save replaces the persisted cart.
func (r *CartRepository) Save(_ context.Context, items []cart.LineItem) error {
	e := &jx.Encoder{}
	encodeLineItems(e, items)
	return r.store.Set(cartKey, e.Bytes())
}
