package repository

import (
	"context"

	"flight-quality-analyzer/internal/domain/entity"
)

// TimezoneRepository loads the airport timezone table in one read
type TimezoneRepository interface {
	ListAll(ctx context.Context) ([]entity.Timezone, error)
}
