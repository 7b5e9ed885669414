package repository

import (
	"context"
	"fmt"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/domain/repository"
	"flight-quality-analyzer/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// flightMovementDocument is the stored shape of a flight movement
type flightMovementDocument struct {
	ID                 int    `bson:"id"`
	RegistrationNumber string `bson:"aircraftRegistrationNumber"`
	AircraftType       string `bson:"aircraftType"`
	FlightNumber       string `bson:"flightNumber"`
	DepartureAirport   string `bson:"departureAirport"`
	DepartureDateTime  string `bson:"departureDateTime"`
	ArrivalAirport     string `bson:"arrivalAirport"`
	ArrivalDateTime    string `bson:"arrivalDateTime"`
}

func (d flightMovementDocument) toEntity() entity.FlightRecord {
	return entity.FlightRecord{
		ID:                 d.ID,
		RegistrationNumber: d.RegistrationNumber,
		AircraftType:       d.AircraftType,
		FlightNumber:       d.FlightNumber,
		DepartureAirport:   d.DepartureAirport,
		DepartureLocal:     d.DepartureDateTime,
		ArrivalAirport:     d.ArrivalAirport,
		ArrivalLocal:       d.ArrivalDateTime,
	}
}

// MongoFlightRecordRepository implements FlightRecordRepository
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// indexCreator is the part of mongo.IndexView used at startup
type indexCreator interface {
	CreateOne(ctx context.Context, model mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error)
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(db *mongo.Database, collectionName string, log logger.Logger) repository.FlightRecordRepository {
	collection := db.Collection(collectionName)
	ensureIDIndex(context.Background(), collection.Indexes(), collectionName, log)

	return &MongoFlightRecordRepository{
		collection: collection,
	}
}

// ensureIDIndex builds the index backing the ordered scan. Failures are logged, not returned.
func ensureIDIndex(ctx context.Context, indexes indexCreator, collectionName string, log logger.Logger) {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
	}
	if _, err := indexes.CreateOne(ctx, indexModel); err != nil {
		log.Warn("Failed to create flight movement index",
			"collection", collectionName,
			"error", err)
	}
}

// FindAll returns every flight movement ordered by id
func (r *MongoFlightRecordRepository) FindAll(ctx context.Context) ([]entity.FlightRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find flight movements: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []flightMovementDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode flight movements: %w", err)
	}

	records := make([]entity.FlightRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toEntity())
	}
	return records, nil
}
