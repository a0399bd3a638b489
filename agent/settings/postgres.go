package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"5s"`
}

type settingRow struct {
	bun.BaseModel `bun:"table:assistant_settings,alias:s"`

	DeviceID  string    `bun:"device_id,pk"`
	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// OpenPostgres builds a bun handle; no connection is made until the first query.
func OpenPostgres(cfg PostgresConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	opts := []pgdriver.Option{pgdriver.WithDSN(dsn)}
	if cfg.Timeout > 0 {
		opts = append(opts, pgdriver.WithTimeout(cfg.Timeout))
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

type PostgresStore struct {
	db       *bun.DB
	deviceID string
	now      func() time.Time
}

func NewPostgresStore(db *bun.DB, deviceID string) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.New("bun db is required")
	}
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, errors.New("device id is required")
	}
	return &PostgresStore{db: db, deviceID: deviceID, now: time.Now}, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*settingRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}

	row := new(settingRow)
	err = s.selectQuery(row, key).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select setting %s: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	row := &settingRow{
		DeviceID:  s.deviceID,
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	}
	if _, err := s.upsertQuery(row).Exec(ctx); err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if _, err := s.deleteQuery(key).Exec(ctx); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) selectQuery(row *settingRow, key string) *bun.SelectQuery {
	return s.db.NewSelect().
		Model(row).
		Where("s.device_id = ?", s.deviceID).
		Where("s.key = ?", key).
		Limit(1)
}

func (s *PostgresStore) upsertQuery(row *settingRow) *bun.InsertQuery {
	return s.db.NewInsert().
		Model(row).
		On("CONFLICT (device_id, key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at")
}

func (s *PostgresStore) deleteQuery(key string) *bun.DeleteQuery {
	return s.db.NewDelete().
		Model((*settingRow)(nil)).
		Where("s.device_id = ?", s.deviceID).
		Where("s.key = ?", key)
}
