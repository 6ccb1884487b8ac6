package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bwmarrin/snowflake"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/YH949494/APUGC/config"
)

// Store wraps the sqlite database holding submissions, redemption codes
// and the reward ledger.
type Store struct {
	db   *sql.DB
	log  *zap.Logger
	node *snowflake.Node

	submissionsTable string
	codeTable        string
	ledgerTable      string

	t1DropID string
	t2DropID string
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open opens (creating if necessary) the database at cfg.DBPath and
// ensures the schema and indexes exist.
func Open(cfg *config.Config, log *zap.Logger) (*Store, error) {
	for _, table := range []string{cfg.SubmissionsTable, cfg.CodeTable, cfg.LedgerTable} {
		if !identRe.MatchString(table) {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
	}

	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{
		db:               conn,
		log:              log,
		node:             node,
		submissionsTable: cfg.SubmissionsTable,
		codeTable:        cfg.CodeTable,
		ledgerTable:      cfg.LedgerTable,
		t1DropID:         cfg.T1DropID,
		t2DropID:         cfg.T2DropID,
	}

	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	log.Info("database initialized", zap.String("path", cfg.DBPath))
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
