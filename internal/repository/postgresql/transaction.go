package postgresql

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx when one is active,
// falling back to the pool. Repositories call this at the top of every
// method so they transparently join a TxManager transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db
}
