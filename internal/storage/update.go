// ABOUTME: Builds UPDATE statements from patch types.
// ABOUTME: Only fields present in the patch become SET assignments.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fitlog/internal/models"
)

type assignments struct {
	cols []string
	args []any
}

func (a *assignments) add(col string, v any) {
	a.cols = append(a.cols, col+" = ?")
	a.args = append(a.args, v)
}

// setOpt adds col when o is present. A cleared Opt binds NULL.
func setOpt[T any](a *assignments, col string, o models.Opt[T]) {
	if o.Present() {
		a.add(col, o.Ptr())
	}
}

// exec runs UPDATE table SET ... WHERE id = ? [AND extra]. Nothing is
// executed when no column is assigned.
func (a *assignments) exec(ctx context.Context, q querier, table string, id int64, extra string) error {
	if len(a.cols) == 0 {
		return nil
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(a.cols, ", "))
	if extra != "" {
		query += " AND " + extra
	}
	_, err := q.ExecContext(ctx, query, append(a.args, id)...)
	return err
}
