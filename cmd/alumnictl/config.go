package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ctlConfig is read from the same ALUMNIHUB_* variables the server uses.
type ctlConfig struct {
	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"alumnihub"`
	Timeout       time.Duration `envconfig:"CTL_TIMEOUT" default:"2m"`
}

func loadConfig() (ctlConfig, error) {
	var cfg ctlConfig
	if err := envconfig.Process("ALUMNIHUB", &cfg); err != nil {
		return ctlConfig{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// connect opens the database named by cfg. The caller disconnects the
// returned client.
func connect(ctx context.Context, cfg ctlConfig) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI).SetAppName("alumnictl"))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.MongoDatabase), nil
}
