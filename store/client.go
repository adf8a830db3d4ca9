package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetConnectionString(cfg *Config) (string, error) {
	return cfg.GetConnectionString()
}

func NewClient(connectionString string) (*mongo.Client, error) {
	ctx := NewDbContext()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}

	return client, nil
}
