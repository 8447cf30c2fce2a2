package tr

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

// Querier — общий интерфейс pgxpool.Pool, pgx.Tx и моков пула.
type Querier = trmpgx.Tr

// Conn извлекает текущую транзакцию из контекста.
// Если транзакция не открыта, возвращается переданное подключение.
func Conn(ctx context.Context, db Querier) Querier {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, db)
}
