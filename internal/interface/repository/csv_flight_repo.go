package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/domain/repository"
	"flight-quality-analyzer/pkg/logger"
)

const flightCSVFields = 8

// CSVFlightRecordRepository reads flight records from a CSV file with a header row
// and the columns: id, registration, aircraft type, flight number,
// departure airport, departure time, arrival airport, arrival time.
type CSVFlightRecordRepository struct {
	path   string
	logger logger.Logger
}

// NewCSVFlightRecordRepository creates a new CSV flight record repository
func NewCSVFlightRecordRepository(path string, logger logger.Logger) repository.FlightRecordRepository {
	return &CSVFlightRecordRepository{
		path:   path,
		logger: logger,
	}
}

// FindAll reads the file on every call, so edits are picked up by the next analysis
func (r *CSVFlightRecordRepository) FindAll(ctx context.Context) ([]entity.FlightRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open flights csv: %w", err)
	}
	defer f.Close()

	return ReadFlightRecordsCSV(ctx, f, r.logger)
}

// ReadFlightRecordsCSV parses flight rows from r. The first row is a header.
// Rows with the wrong number of columns or a non-numeric id are skipped and logged.
func ReadFlightRecordsCSV(ctx context.Context, r io.Reader, log logger.Logger) ([]entity.FlightRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []entity.FlightRecord{}, nil
		}
		return nil, fmt.Errorf("read flights csv header: %w", err)
	}

	records := []entity.FlightRecord{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read flights csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(row) != flightCSVFields {
			log.Warn("Skipping csv row with unexpected column count", "line", line, "columns", len(row))
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			log.Warn("Skipping csv row with invalid id", "line", line, "id", row[0])
			continue
		}

		records = append(records, entity.FlightRecord{
			ID:                 id,
			RegistrationNumber: strings.TrimSpace(row[1]),
			AircraftType:       strings.TrimSpace(row[2]),
			FlightNumber:       strings.TrimSpace(row[3]),
			DepartureAirport:   strings.TrimSpace(row[4]),
			DepartureLocal:     strings.TrimSpace(row[5]),
			ArrivalAirport:     strings.TrimSpace(row[6]),
			ArrivalLocal:       strings.TrimSpace(row[7]),
		})
	}

	log.Debug("Read flights csv", "records", len(records))
	return records, nil
}
