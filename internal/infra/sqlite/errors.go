package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return entities.ErrNotFoundOrUnauthorized
	}
	return nil
}
