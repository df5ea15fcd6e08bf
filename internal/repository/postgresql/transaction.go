package postgresql

import (
	"context"

	"github.com/corehive/corehive-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx, or the pool. Every
// repository method goes through this so it works inside and outside a
// transaction scope.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
