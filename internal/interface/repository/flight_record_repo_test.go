package repository

import (
	"context"
	"errors"
	"testing"

	"flight-quality-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFlightMovementDocument_Decode(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"id":                         7,
		"aircraftRegistrationNumber": "OH-LVD",
		"aircraftType":               "A350",
		"flightNumber":               "AY005",
		"departureAirport":           "JFK",
		"departureDateTime":          "2024-05-01 18:00:00",
		"arrivalAirport":             "HEL",
		"arrivalDateTime":            "2024-05-02 09:00:00",
	})
	require.NoError(t, err)

	var doc flightMovementDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	record := doc.toEntity()
	assert.Equal(t, 7, record.ID)
	assert.Equal(t, "OH-LVD", record.RegistrationNumber)
	assert.Equal(t, "A350", record.AircraftType)
	assert.Equal(t, "AY005", record.FlightNumber)
	assert.Equal(t, "JFK", record.DepartureAirport)
	assert.Equal(t, "2024-05-01 18:00:00", record.DepartureLocal)
	assert.Equal(t, "HEL", record.ArrivalAirport)
	assert.Equal(t, "2024-05-02 09:00:00", record.ArrivalLocal)
	assert.True(t, record.DepartureUTC.IsZero())
}

type failingIndexCreator struct {
	err    error
	models []mongo.IndexModel
}

func (f *failingIndexCreator) CreateOne(ctx context.Context, model mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error) {
	f.models = append(f.models, model)
	return "", f.err
}

func TestEnsureIDIndex_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	indexes := &failingIndexCreator{err: errors.New("not authorized on flights")}

	ensureIDIndex(context.Background(), indexes, "flight_movements", logger.NewFromZap(zap.New(core)))

	require.Len(t, indexes.models, 1)
	assert.Equal(t, bson.D{{Key: "id", Value: 1}}, indexes.models[0].Keys)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Failed to create flight movement index", entries[0].Message)
	assert.Equal(t, "flight_movements", entries[0].ContextMap()["collection"])
	assert.Equal(t, "not authorized on flights", entries[0].ContextMap()["error"])
}

func TestEnsureIDIndex_QuietOnSuccess(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	ensureIDIndex(context.Background(), &failingIndexCreator{}, "flight_movements", logger.NewFromZap(zap.New(core)))

	assert.Zero(t, logs.Len())
}
