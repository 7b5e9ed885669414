package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMongoOptions_ConnectTimeout(t *testing.T) {
	assert.Equal(t, defaultMongoTimeout, MongoOptions{}.connectTimeout())
	assert.Equal(t, defaultMongoTimeout, MongoOptions{Timeout: -time.Second}.connectTimeout())
	assert.Equal(t, 3*time.Second, MongoOptions{Timeout: 3 * time.Second}.connectTimeout())
}

func TestNewMongoClient_GivesUpAfterTimeout(t *testing.T) {
	start := time.Now()
	_, _, err := NewMongoClient(context.Background(), MongoOptions{
		URI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=60000",
		Database: "flight_quality",
		Timeout:  200 * time.Millisecond,
	})

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
