package database

import (
	"context"
	"time"

	"offerdesk/config"
	logg "offerdesk/internal/logger"

	"github.com/valkey-io/valkey-go"
)

type CacheClient valkey.Client

type Cache struct {
	// Guard backs the in-flight guard shared between server instances.
	Guard CacheClient
}

// DB holds the optional shared cache. Form data itself never leaves process
// memory.
type DB struct {
	Cache Cache
	log   logg.Logger
}

func New(config config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	db := &DB{log: log}
	if !config.CacheEnabled() {
		log.Info("No cache address configured, using in-process guards")
		return *db, nil
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	address := config.CacheAddr()
	log.Info("Connecting to cache", "address", address)

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		SelectDB:    0,
	})
	if err != nil {
		return log.Err("failed to create cache client", err, "address", address)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return log.Err("failed to ping cache", err, "address", address)
	}

	s.Cache.Guard = client
	return nil
}

func (s *DB) HasCache() bool {
	return s.Cache.Guard != nil
}

func (s *DB) Close() (err error) {
	if s.Cache.Guard != nil {
		s.Cache.Guard.Close()
	}
	return
}
