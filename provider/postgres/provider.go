package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	goSession "github.com/MrEthical07/goSession"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Provider implements goSession.IdentityProvider over a PostgreSQL
// identities table.
type Provider struct {
	db *sql.DB
}

// Open connects, verifies the connection, and runs pending migrations.
func Open(ctx context.Context, dsn string) (*Provider, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	p := &Provider{db: db}
	if err := p.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return p, nil
}

func (p *Provider) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, p.db, "migrations")
}

func (p *Provider) Close() error {
	return p.db.Close()
}

func (p *Provider) FindByUsername(ctx context.Context, username string) (goSession.Identity, error) {
	query :=
		`SELECT id, username, secret_hash FROM identities
		 WHERE username = $1
		 `

	var identity goSession.Identity
	err := p.db.QueryRowContext(ctx, query, username).
		Scan(&identity.ID, &identity.Username, &identity.SecretHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goSession.Identity{}, goSession.ErrIdentityNotFound
		}
		return goSession.Identity{}, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

func (p *Provider) FindByID(ctx context.Context, id string) (goSession.Identity, error) {
	query :=
		`SELECT id, username, secret_hash FROM identities
		 WHERE id = $1
		 `

	var identity goSession.Identity
	err := p.db.QueryRowContext(ctx, query, id).
		Scan(&identity.ID, &identity.Username, &identity.SecretHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goSession.Identity{}, goSession.ErrIdentityNotFound
		}
		return goSession.Identity{}, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

// Create inserts a new identity with a minted UUID. secretHash must already
// be an argon2id PHC string (see goSession.Engine.HashSecret). Operator-side
// only; the auth pipeline never writes.
func (p *Provider) Create(ctx context.Context, username, secretHash string) (goSession.Identity, error) {
	query :=
		`INSERT INTO identities (id, username, secret_hash)
		 VALUES ($1, $2, $3)
		 `

	identity := goSession.Identity{
		ID:         uuid.NewString(),
		Username:   username,
		SecretHash: secretHash,
	}

	if _, err := p.db.ExecContext(ctx, query, identity.ID, identity.Username, identity.SecretHash); err != nil {
		return goSession.Identity{}, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

var _ goSession.IdentityProvider = (*Provider)(nil)
