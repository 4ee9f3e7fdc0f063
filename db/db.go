package db

import (
	"context"
	"strings"
	"time"

	"fiber/wof/app/model"
	"fiber/wof/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB    *gorm.DB
	Mongo *mongo.Database
)

// ConnectDB opens the relational auth store and the achievement database.
func ConnectDB(ctx context.Context) error {
	var err error
	if DB, err = OpenSQL(config.Env.DBDSN); err != nil {
		return err
	}
	if err = Migrate(DB); err != nil {
		return err
	}
	log.Info().Str("driver", DB.Dialector.Name()).Msg("connected to auth store")

	if Mongo, err = OpenMongo(ctx, config.Env.MongoURI, config.Env.MongoDB); err != nil {
		return err
	}
	log.Info().Str("db", config.Env.MongoDB).Msg("connected to MongoDB")
	return nil
}

// IsSQLiteDSN reports whether dsn names a sqlite file rather than a postgres server.
func IsSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") || strings.HasSuffix(dsn, ".db")
}

func OpenSQL(dsn string) (*gorm.DB, error) {
	dialector := postgres.Open(dsn)
	if IsSQLiteDSN(dsn) {
		dialector = sqlite.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, errors.Wrap(err, "open auth store")
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	return errors.Wrap(gdb.AutoMigrate(&model.OTP{}, &model.RevokedToken{}), "migrate auth store")
}

func OpenMongo(ctx context.Context, uri, name string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping MongoDB")
	}
	return client.Database(name), nil
}

// Close releases both connections. Safe to call when ConnectDB failed partway.
func Close(ctx context.Context) {
	if Mongo != nil {
		if err := Mongo.Client().Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("disconnect MongoDB")
		}
	}
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func GetDB() *gorm.DB {
	return DB
}

func GetMongo() *mongo.Database {
	return Mongo
}
