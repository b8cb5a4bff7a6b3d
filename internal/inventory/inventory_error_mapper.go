package inventory

import (
	"errors"
	"strings"

	inventoryerrors "github.com/creesler/laundry-pos-backend/internal/inventory/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventoryerrors.ErrItemNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_inventory_item_name" {
			return inventoryerrors.ErrItemAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_inventory_item_name") {
		return inventoryerrors.ErrItemAlreadyExists
	}

	return err
}
