package billcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/tundex/airtime-bot/internal/errors"
	"github.com/tundex/airtime-bot/internal/types"
)

// Store holds bill details for backends that have no bill-by-reference
// endpoint, so details captured at vend time can be served later.
type Store interface {
	Put(ctx context.Context, reference string, bill *types.BillDetail) error

	// Get fails with not_found for references never written to this store.
	Get(ctx context.Context, reference string) (*types.BillDetail, error)
}

func notFound(reference string) error {
	return errors.New(errors.CodeNotFound,
		fmt.Sprintf("no bill found for reference %q", reference))
}

// Memory is an in-process Store. Lookups only succeed within the process
// lifetime that performed the vend; use the Redis store when the process
// can be recycled between vend and bill lookup.
type Memory struct {
	mu    sync.Mutex
	bills map[string]types.BillDetail
}

func NewMemory() *Memory {
	return &Memory{
		bills: make(map[string]types.BillDetail),
	}
}

func (m *Memory) Put(ctx context.Context, reference string,
	bill *types.BillDetail) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.bills[reference] = *bill

	return nil
}

func (m *Memory) Get(ctx context.Context, reference string) (
	*types.BillDetail, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	bill, ok := m.bills[reference]
	if !ok {
		return nil, notFound(reference)
	}

	return &bill, nil
}
