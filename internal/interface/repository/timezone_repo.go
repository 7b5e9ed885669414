package repository

import (
	"context"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/domain/repository"

	"gorm.io/gorm"
)

// GormTimezoneRepository implements the TimezoneRepository interface
type GormTimezoneRepository struct {
	db *gorm.DB
}

// NewGormTimezoneRepository creates a new GORM timezone repository
func NewGormTimezoneRepository(db *gorm.DB) repository.TimezoneRepository {
	return &GormTimezoneRepository{
		db: db,
	}
}

// Timezonelist GORM model for database mapping
type Timezonelist struct {
	gorm.Model
	AirportCode string `gorm:"column:airportcode;uniqueIndex"`
	AirportName string `gorm:"column:airport_name"`
	CityName    string `gorm:"column:cityname"`
	TzName      string `gorm:"column:tzname"`
}

// TableName overrides the default table name
func (Timezonelist) TableName() string {
	return "m_timezone_list"
}

func (t Timezonelist) toEntity() entity.Timezone {
	return entity.Timezone{
		AirportCode: t.AirportCode,
		AirportName: t.AirportName,
		CityName:    t.CityName,
		TzName:      t.TzName,
	}
}

// ListAll returns every airport timezone row
func (r *GormTimezoneRepository) ListAll(ctx context.Context) ([]entity.Timezone, error) {
	var rows []Timezonelist
	if err := r.db.WithContext(ctx).Order("airportcode").Find(&rows).Error; err != nil {
		return nil, err
	}

	zones := make([]entity.Timezone, 0, len(rows))
	for _, row := range rows {
		zones = append(zones, row.toEntity())
	}
	return zones, nil
}
