package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/travel-planner/migrations"
)

// Driver names a storage backend.
type Driver string

const (
	DriverFile     Driver = "file"
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverRedis    Driver = "redis"
	DriverMongo    Driver = "mongo"
	DriverDynamoDB Driver = "dynamodb"
)

// Drivers lists every supported driver.
func Drivers() []Driver {
	return []Driver{DriverFile, DriverMemory, DriverPostgres, DriverRedis, DriverMongo, DriverDynamoDB}
}

// Options selects and configures a backend. Only the fields for the chosen
// Driver are read.
type Options struct {
	Driver Driver

	DataDir string // file

	DatabaseURL string // postgres

	RedisURL      string // redis
	RedisPassword string

	MongoURI      string // mongo
	MongoDatabase string

	DynamoTable    string // dynamodb
	AWSRegion      string
	DynamoEndpoint string
}

// Open connects to the backend named by opts.Driver. For postgres it also
// applies pending migrations so the kv_store table exists.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case DriverFile, "":
		return NewFile(opts.DataDir)
	case DriverMemory:
		return NewMemory(), nil
	case DriverPostgres:
		if err := migratePostgres(ctx, opts.DatabaseURL); err != nil {
			return nil, err
		}
		return OpenPostgres(ctx, opts.DatabaseURL)
	case DriverRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.RedisPassword)
	case DriverMongo:
		return OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase)
	case DriverDynamoDB:
		return OpenDynamoDB(ctx, opts.AWSRegion, opts.DynamoTable, opts.DynamoEndpoint)
	default:
		return nil, fmt.Errorf("storage.Open: unknown driver %q", opts.Driver)
	}
}

func migratePostgres(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("storage.Open: migrate: %w", err)
	}
	defer db.Close()

	if _, err := migrations.Up(ctx, db); err != nil {
		return fmt.Errorf("storage.Open: %w", err)
	}
	return nil
}
