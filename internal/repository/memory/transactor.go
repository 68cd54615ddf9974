package memory

import (
	"context"

	"github.com/bidhaus/auction-backend/internal/usecase"
)

// Transactor выполняет функцию напрямую. Репозитории в памяти правят
// состояние на месте, отката у них нет, для юнит-тестов этого достаточно.
type Transactor struct{}

var _ usecase.Transactor = (*Transactor)(nil)

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
