package cache

import (
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoCache "github.com/eko/gocache/store/ristretto/v4"
)

const DefaultMaxCost = 1 << 27

// NewStore builds the in-process cache the services share, maxCost is in bytes.
func NewStore(maxCost int64) (store.StoreInterface, error) {
	if maxCost <= 0 {
		maxCost = DefaultMaxCost
	}
	ris, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost / 100,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return ristrettoCache.NewRistretto(ris), nil
}
