package sale

import (
	"errors"
	"strings"

	saleerrors "github.com/creesler/laundry-pos-backend/internal/sale/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return saleerrors.ErrSaleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_sale_date_dropoff" {
			return saleerrors.ErrDuplicateSale
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_sale_date_dropoff") {
		return saleerrors.ErrDuplicateSale
	}

	return err
}
