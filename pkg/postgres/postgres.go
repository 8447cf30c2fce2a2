package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	migrations "github.com/DRSN-tech/home-store/db"
	"github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/jitter"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	connectAttempts = 5
	pingTimeout     = 5 * time.Second
)

// PgDatabase инкапсулирует пул соединений с PostgreSQL и применение миграций.
type PgDatabase struct {
	Pool *pgxpool.Pool
	Dsn  string
}

// DSN собирает строку подключения из конфигурации.
func DSN(cfg *cfg.PGDBCfg) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
}

// Connect создаёт пул и дожидается ответа сервера.
// Пока база поднимается, подключение повторяется с экспоненциальной задержкой.
func Connect(ctx context.Context, cfg *cfg.PGDBCfg, logger logger.Logger) (*PgDatabase, error) {
	const op = "PgDatabase.Connect"
	dsn := DSN(cfg)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	db := &PgDatabase{Pool: pool, Dsn: dsn}
	backoff := jitter.NewBackoff(500*time.Millisecond, 5*time.Second)

	for attempt := 0; ; attempt++ {
		err = db.Ping(ctx)
		if err == nil {
			return db, nil
		}
		if attempt+1 >= connectAttempts {
			break
		}

		logger.Warnf("postgres is not ready (attempt %d/%d): %v", attempt+1, connectAttempts, err)
		if err := backoff.Sleep(ctx, attempt); err != nil {
			break
		}
	}

	pool.Close()
	return nil, e.Wrap(op, err)
}

func (db *PgDatabase) Ping(ctx context.Context) error {
	const op = "PgDatabase.Ping"
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Close корректно закрывает пул соединений к базе данных.
func (db *PgDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// RunMigrations применяет встроенные в бинарник миграции, которые ещё не были применены.
func (db *PgDatabase) RunMigrations(logger logger.Logger) error {
	const (
		op                 = "PgDatabase.RunMigrations"
		driverName         = "pgx"
		sourceName         = "iofs"
		databaseDriverName = "postgres"
	)

	src, err := iofs.New(migrations.Migrations, migrations.MigrationsDir)
	if err != nil {
		return e.Wrap(op, err)
	}

	sqlDb, err := sql.Open(driverName, db.Dsn)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer sqlDb.Close()

	driver, err := postgres.WithInstance(sqlDb, &postgres.Config{})
	if err != nil {
		return e.Wrap(op, err)
	}

	m, err := migrate.NewWithInstance(sourceName, src, databaseDriverName, driver)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Infof("migrations: no change")
			return nil
		}
		return e.Wrap(op, err)
	}

	version, _, _ := m.Version()
	logger.Infof("migrations applied successfully, version %d", version)
	return nil
}
