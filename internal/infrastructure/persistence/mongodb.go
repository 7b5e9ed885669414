package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions describes how to reach the flight movement database
type MongoOptions struct {
	URI      string
	Database string
	Username string
	Password string
	Timeout  time.Duration
}

const defaultMongoTimeout = 10 * time.Second

// connectTimeout bounds connect and ping together
func (o MongoOptions) connectTimeout() time.Duration {
	if o.Timeout <= 0 {
		return defaultMongoTimeout
	}
	return o.Timeout
}

// NewMongoClient connects, pings, and returns the client and database handle
func NewMongoClient(ctx context.Context, opts MongoOptions) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(opts.URI)

	if opts.Username != "" && opts.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, opts.connectTimeout())
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, client.Database(opts.Database), nil
}
