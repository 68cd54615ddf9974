package tr

import (
	"context"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/jackc/pgx/v5"
)

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	txAny := ctx.Value("tx")
	tx, ok := txAny.(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}

// PgTransactor выполняет функцию внутри транзакции PostgreSQL.
// Транзакция кладётся в контекст, репозитории присоединяются к ней
// через TxFromCtx; при ошибке выполняется Rollback.
type PgTransactor struct {
	pool transaction.Transactional
}

func NewPgTransactor(pool transaction.Transactional) *PgTransactor {
	return &PgTransactor{pool: pool}
}

func (t *PgTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "PgTransactor.WithinTx"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, t.pool)
	if err != nil {
		return e.Wrap(op, err)
	}

	defer func() {
		if tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
