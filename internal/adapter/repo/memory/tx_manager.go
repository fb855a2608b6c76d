package memory

import "context"

// TxManager serializes in-memory "transactions" behind the store lock
// taken by the individual repos; it only guarantees the single-caller
// discipline the engine already assumes.
type TxManager struct{}

func NewTxManager(_ *Store) TxManager {
	return TxManager{}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
