package repositories

import (
	"fmt"

	intconfig "toursbackend/internal/config"
	intdb "toursbackend/internal/db"
	"toursbackend/internal/domain"
)

var errNoDB = fmt.Errorf("db not available")

// conn falls back to the shared connection when a repository was built
// without an explicit DB or transaction.
func conn(db intdb.DBTX) (intdb.DBTX, error) {
	if db != nil {
		return db, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, errNoDB
}

// ownerClause restricts a query to records whose booking (alias b) belongs to
// the scope's owner.
func ownerClause(scope domain.Scope) (string, []any) {
	if scope.All {
		return "", nil
	}
	return " WHERE b.user_id = ?", []any{scope.OwnerID}
}

func pageArgs(args []any, page domain.Pagination) []any {
	page = page.Normalize()
	out := make([]any, 0, len(args)+2)
	out = append(out, args...)
	return append(out, page.PageSize, page.Offset())
}
