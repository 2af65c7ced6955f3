package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	types "github.com/gogas/gogas-backend/internal/domain"
	"github.com/gogas/gogas-backend/internal/pkg/envutil"
	"github.com/gogas/gogas-backend/internal/pkg/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := envutil.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := envutil.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := envutil.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := envutil.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := envutil.GetEnv("POSTGRES_NAME", "gogas", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		// Duplicate key violations surface as gorm.ErrDuplicatedKey so the
		// repos can map them to conflicts.
		TranslateError: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Station{},
		&types.Price{},
		&types.Review{},
		&types.Favorite{},
	); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	// Sub-entries cannot outlive their owning aggregate.
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_price_station_id", `ALTER TABLE "price" ADD CONSTRAINT "fk_price_station_id" FOREIGN KEY ("station_id") REFERENCES "station"("id") ON DELETE CASCADE`},
		{"fk_review_station_id", `ALTER TABLE "review" ADD CONSTRAINT "fk_review_station_id" FOREIGN KEY ("station_id") REFERENCES "station"("id") ON DELETE CASCADE`},
		{"fk_favorite_user_id", `ALTER TABLE "favorite" ADD CONSTRAINT "fk_favorite_user_id" FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`},
		{"fk_user_token_user_id", `ALTER TABLE "user_token" ADD CONSTRAINT "fk_user_token_user_id" FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		var count int64
		if err := s.db.Raw(`SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ?`, c.name).Scan(&count).Error; err != nil {
			return fmt.Errorf("check constraint %s: %w", c.name, err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			return fmt.Errorf("add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
