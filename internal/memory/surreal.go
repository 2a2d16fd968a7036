package memory

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ikb-gg/ikb-go/internal/embedding"
	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/contrib/rews"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/pkg/logger"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

func init() {
	// Force HTTP/1.1 for WSS connections to prevent HTTP/2 ALPN negotiation.
	// WebSocket upgrade requires HTTP/1.1 semantics which fail under HTTP/2.
	gorillaws.DefaultDialer.TLSClientConfig = &tls.Config{
		NextProtos: []string{"http/1.1"},
	}
}

// SurrealConfig holds SurrealDB connection configuration.
type SurrealConfig struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
	AuthLevel string // "root" or "database"
}

// SurrealStore is a Store backed by SurrealDB with auto-reconnect.
// Records are written to the game_memory table; when embedding is
// requested, the record label is embedded so the host agent can retrieve
// game data semantically.
type SurrealStore struct {
	conn     *rews.Connection[*gorillaws.Connection]
	db       *surrealdb.DB
	cfg      SurrealConfig
	embedder embedding.Embedder
	logger   logger.Logger
}

// Compile-time check that SurrealStore implements Store.
var _ Store = (*SurrealStore)(nil)

// NewSurrealStore connects to SurrealDB over an auto-reconnecting
// WebSocket and authenticates per the configured auth level.
func NewSurrealStore(ctx context.Context, cfg SurrealConfig, embedder embedding.Embedder, log *slog.Logger) (*SurrealStore, error) {
	var sdkLogger logger.Logger
	if log != nil {
		sdkLogger = logger.New(log.Handler())
	} else {
		sdkLogger = logger.New(slog.Default().Handler())
	}

	// surrealcbor handles SurrealDB's custom CBOR tags.
	codec := surrealcbor.New()

	// gorillaws requires the base URL without the /rpc suffix (it adds
	// /rpc internally).
	baseURL := strings.TrimSuffix(cfg.URL, "/rpc")

	conn := rews.New(
		func(ctx context.Context) (*gorillaws.Connection, error) {
			ws := gorillaws.New(&connection.Config{
				BaseURL:     baseURL,
				Marshaler:   codec,
				Unmarshaler: codec,
				Logger:      sdkLogger,
			})
			return ws, nil
		},
		5*time.Second,
		codec,
		sdkLogger,
	)

	retryer := rews.NewExponentialBackoffRetryer()
	retryer.InitialDelay = 1 * time.Second
	retryer.MaxDelay = 30 * time.Second
	retryer.Multiplier = 2.0
	retryer.MaxRetries = 10
	conn.Retryer = retryer

	sdkLogger.Info("connecting to SurrealDB", "url", cfg.URL)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("from connection: %w", err)
	}

	if cfg.AuthLevel == "database" {
		_, err = db.SignIn(ctx, surrealdb.Auth{
			Namespace: cfg.Namespace,
			Database:  cfg.Database,
			Username:  cfg.Username,
			Password:  cfg.Password,
		})
	} else {
		// Default to root auth
		_, err = db.SignIn(ctx, surrealdb.Auth{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("signin: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("use: %w", err)
	}

	sdkLogger.Info("SurrealDB connection established")
	return &SurrealStore{conn: conn, db: db, cfg: cfg, embedder: embedder, logger: sdkLogger}, nil
}

// Close closes the SurrealDB connection.
func (s *SurrealStore) Close(ctx context.Context) error {
	s.logger.Info("closing SurrealDB connection")
	return s.conn.Close(ctx)
}

// schemaSQL builds the game_memory table definition. The HNSW dimension
// must match the embedder's output dimension.
func schemaSQL(dimension int) string {
	return fmt.Sprintf(`
    DEFINE TABLE IF NOT EXISTS game_memory SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS label ON game_memory TYPE string;
    DEFINE FIELD IF NOT EXISTS sport ON game_memory TYPE string;
    DEFINE FIELD IF NOT EXISTS date ON game_memory TYPE string;
    DEFINE FIELD IF NOT EXISTS games ON game_memory FLEXIBLE TYPE option<array>;
    DEFINE FIELD IF NOT EXISTS embedding ON game_memory TYPE option<array<float>>;
    DEFINE FIELD IF NOT EXISTS created ON game_memory TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS game_memory_sport ON game_memory FIELDS sport;
    DEFINE INDEX IF NOT EXISTS game_memory_date ON game_memory FIELDS date;
    DEFINE INDEX IF NOT EXISTS game_memory_embedding ON game_memory FIELDS embedding HNSW DIMENSION %d DIST COSINE TYPE F32;
`, dimension)
}

// InitSchema initializes the game_memory schema.
func (s *SurrealStore) InitSchema(ctx context.Context) error {
	s.logger.Info("initializing memory schema")

	dimension := embedding.DefaultOllamaDimension
	if s.embedder != nil {
		dimension = s.embedder.Dimension()
	}

	if _, err := surrealdb.Query[any](ctx, s.db, schemaSQL(dimension), nil); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// CreateMemory stores one record durably. The write is awaited; a failure
// here fails the calling action.
func (s *SurrealStore) CreateMemory(ctx context.Context, rec Record, opts CreateOptions) error {
	var emb []float32
	if opts.Embed {
		if s.embedder == nil {
			return fmt.Errorf("%w: embedding requested but no embedder configured", ErrWrite)
		}
		var err error
		emb, err = s.embedder.Embed(ctx, rec.Label)
		if err != nil {
			return fmt.Errorf("%w: embed label: %v", ErrWrite, err)
		}
	}

	vars := map[string]any{
		"id":      rec.ID,
		"label":   rec.Label,
		"sport":   rec.Sport,
		"date":    rec.Date,
		"games":   rec.Games,
		"created": rec.CreatedAt,
	}
	setClauses := []string{
		"label = $label",
		"sport = $sport",
		"date = $date",
		"games = $games",
		"created = <datetime>$created",
	}
	if emb != nil {
		setClauses = append(setClauses, "embedding = $embedding")
		vars["embedding"] = emb
	}
	sql := fmt.Sprintf(`CREATE type::record("game_memory", $id) SET %s`,
		strings.Join(setClauses, ", "))

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	s.logger.Debug("memory record created", "id", rec.ID, "label", rec.Label, "games", len(rec.Games))
	return nil
}
