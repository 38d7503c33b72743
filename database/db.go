package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"log/slog"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database/models"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	// Fail fast with a clear error when the server is unreachable
	var conn net.Conn
	var err error

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	defer conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(pool)}, nil
}

func buildConnString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func newBunDB(pool *pgxpool.Pool) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pool.Config().ConnConfig.User,
		pool.Config().ConnConfig.Password,
		pool.Config().ConnConfig.Host,
		pool.Config().ConnConfig.Port,
		pool.Config().ConnConfig.Database,
		sslMode,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	bunDB := bun.NewDB(sqldb, pgdialect.New())

	// m2m join models must be registered before relation queries run
	bunDB.RegisterModel((*models.RecipeTag)(nil))
	bunDB.RegisterModel((*models.RecipeIngredient)(nil))

	return bunDB
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	// Create tables in the correct order to handle foreign key constraints
	tables := []interface{}{
		(*models.User)(nil),
		(*models.AuthToken)(nil),
		(*models.Recipe)(nil),
		(*models.Tag)(nil),
		(*models.Ingredient)(nil),
		(*models.RecipeTag)(nil),
		(*models.RecipeIngredient)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_auth_tokens_digest ON auth_tokens(digest);",
		"CREATE INDEX IF NOT EXISTS idx_auth_tokens_user_id ON auth_tokens(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_recipes_user_id ON recipes(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_recipes_user_id_id ON recipes(user_id, id DESC);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_user_name ON tags(user_id, name);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ingredients_user_name ON ingredients(user_id, name);",
		"CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag_id ON recipe_tags(tag_id);",
		"CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient_id ON recipe_ingredients(ingredient_id);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	// Link rows must not outlive either side of the relation
	constraints := []string{
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_recipe_tags_recipe') THEN
				ALTER TABLE recipe_tags
				ADD CONSTRAINT fk_recipe_tags_recipe
				FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE;
			END IF;
		END $$;`,
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_recipe_tags_tag') THEN
				ALTER TABLE recipe_tags
				ADD CONSTRAINT fk_recipe_tags_tag
				FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE;
			END IF;
		END $$;`,
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_recipe_ingredients_recipe') THEN
				ALTER TABLE recipe_ingredients
				ADD CONSTRAINT fk_recipe_ingredients_recipe
				FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE;
			END IF;
		END $$;`,
		`DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_recipe_ingredients_ingredient') THEN
				ALTER TABLE recipe_ingredients
				ADD CONSTRAINT fk_recipe_ingredients_ingredient
				FOREIGN KEY (ingredient_id) REFERENCES ingredients(id) ON DELETE CASCADE;
			END IF;
		END $$;`,
	}

	for _, ddl := range constraints {
		if _, err := db.ExecWithLog(ctx, ddl); err != nil {
			slog.Warn("Failed to add foreign key constraint (may already exist)",
				slog.Any("error", err))
		}
	}

	return nil
}

// Ping verifies both database connections are working
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgxpool ping failed: %w", err)
	}

	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}

	return nil
}
