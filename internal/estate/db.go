package estate

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

// Config holds Postgres connection parameters, sourced from the environment.
type Config struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	Name     string `envconfig:"POSTGRES_DB" default:"silver_land"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c *Config) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Open connects to Postgres, enables pgvector, and migrates the schema.
func (c *Config) Open() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  c.dsn(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	// pgvector must exist before the embeddings table migrates
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("enable pgvector extension: %w", err)
	}

	if err := db.AutoMigrate(&Project{}, &Lead{}, &VisitBooking{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	logx.Debug().Str("host", c.Host).Str("db", c.Name).Msg("Database connection established")
	return db, nil
}
