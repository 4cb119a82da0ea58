package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/inkyu0103/bf-backend/internal/config"
	"github.com/inkyu0103/bf-backend/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	pg     *pgxpool.Pool
	sqlite *sql.DB
	redis  *redis.Client
	router *gin.Engine
}

// New builds the process: store (Postgres when PG_DSN is set, SQLite file
// otherwise), optional Redis cache, and the router. The store handle is owned
// here and passed down by reference; nothing holds a global connection.
func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	var todoRepo repo.TodoRepo
	if cfg.Storage.UsePostgres() {
		pool, err := newPostgres(cfg.Storage.PGDSN)
		if err != nil {
			return nil, err
		}
		a.pg = pool

		if err := runMigrations(cfg.Storage.PGDSN, "./migrations"); err != nil {
			a.pg.Close()
			return nil, err
		}
		todoRepo = repo.NewPGTodoRepo(pool)
	} else {
		db, err := repo.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		a.sqlite = db
		todoRepo = repo.NewSQLiteTodoRepo(db)
	}

	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			a.closeStore()
			return nil, err
		}
		a.redis = rdb
	}

	a.router = newRouter(cfg, todoRepo, a.redis)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.closeStore()
	return nil
}

func (a *App) closeStore() {
	if a.pg != nil {
		a.pg.Close()
	}
	if a.sqlite != nil {
		_ = a.sqlite.Close()
	}
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func runMigrations(dsn string, migrationsDir string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newRouter(cfg config.Config, todoRepo repo.TodoRepo, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, todoRepo, rdb)
	return r
}
