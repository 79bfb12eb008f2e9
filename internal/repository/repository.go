package repository

import (
	"context"
	"fmt"

	"quiz-folio/internal/config"

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// randomOrder is the ORDER BY expression that shuffles rows for the executor's driver.
func randomOrder(exec DBTX) string {
	if exec.DriverName() == config.DriverOracle {
		return "DBMS_RANDOM.VALUE"
	}
	return "RANDOM()"
}

// pageClause limits a result set; the syntax is shared by Oracle 12c+ and Postgres.
func pageClause(offset, limit int) string {
	return fmt.Sprintf(" OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
}
