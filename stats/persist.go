package stats

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// DBState enumerates the persistence worker's relationship to the database.
// It is owned exclusively by PersistenceWorker; no other goroutine touches
// the underlying *sql.DB.
type DBState int

const (
	DBDisconnected DBState = iota
	DBConnected
	DBPermanentlyDisabled
)

const (
	snapshotInterval = 15 * time.Second
	backoffBase      = 1 * time.Second
	backoffFactor    = 2
	maxConnectTries  = 3
)

// createTableSQL matches the fixed 12-counter column contract plus a
// supplemental recorded_at column for querying history by time.
const createTableSQL = `
CREATE TABLE IF NOT EXISTS protocol_stats (
	total_packets BIGINT NOT NULL,
	ethernet      BIGINT NOT NULL,
	ipv4          BIGINT NOT NULL,
	ipv6          BIGINT NOT NULL,
	tcp           BIGINT NOT NULL,
	udp           BIGINT NOT NULL,
	icmp          BIGINT NOT NULL,
	arp           BIGINT NOT NULL,
	dns           BIGINT NOT NULL,
	http          BIGINT NOT NULL,
	https         BIGINT NOT NULL,
	dhcp          BIGINT NOT NULL,
	recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertRowSQL = `
INSERT INTO protocol_stats
	(total_packets, ethernet, ipv4, ipv6, tcp, udp, icmp, arp, dns, http, https, dhcp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// PersistenceWorker wakes on a fixed interval or on shutdown, whichever
// comes first, and snapshots the registry to a JSON file and, if enabled,
// appends one row to the database.
type PersistenceWorker struct {
	registry  *Registry
	jsonPath  string
	connInfo  string
	dbEnabled bool

	db    *sql.DB
	state DBState
}

// NewPersistenceWorker constructs a worker writing to jsonPath and, when
// connInfo is non-empty, appending rows through a lib/pq connection.
func NewPersistenceWorker(registry *Registry, jsonPath, connInfo string) *PersistenceWorker {
	return &PersistenceWorker{
		registry:  registry,
		jsonPath:  jsonPath,
		connInfo:  connInfo,
		dbEnabled: connInfo != "",
		state:     DBDisconnected,
	}
}

// Run blocks, waking every snapshotInterval, until ctx is cancelled. It
// writes one final snapshot before returning if it was able to observe
// ctx.Done() cleanly (the supervisor abandons the worker on timeout rather
// than waiting for it indefinitely, per the pipeline shutdown contract).
func (w *PersistenceWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()
	defer w.closeDB()

	for {
		select {
		case <-ctx.Done():
			w.flush(context.Background())
			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *PersistenceWorker) flush(ctx context.Context) {
	snap := w.registry.Snapshot()

	if err := SaveSnapshot(w.jsonPath, snap); err != nil {
		log.Printf("stats: failed to write snapshot to %s: %v", w.jsonPath, err)
	}

	if w.dbEnabled && w.state != DBPermanentlyDisabled {
		if err := w.writeRow(ctx, snap); err != nil {
			log.Printf("stats: failed to persist counters to database: %v", err)
		}
	}
}

func (w *PersistenceWorker) writeRow(ctx context.Context, snap Snapshot) error {
	if w.db == nil {
		if err := w.connect(ctx); err != nil {
			return err
		}
	}

	_, err := w.db.ExecContext(ctx, insertRowSQL,
		snap.Total, snap.Ethernet, snap.IPv4, snap.IPv6, snap.TCP, snap.UDP,
		snap.ICMP, snap.ARP, snap.DNS, snap.HTTP, snap.HTTPS, snap.DHCP)
	if err != nil {
		w.closeDB()
		return fmt.Errorf("insert protocol_stats row: %w", err)
	}
	return nil
}

// connect opens a database connection with exponential backoff: base 1s,
// factor 2, capped at maxConnectTries attempts. Exhausting the budget marks
// the worker PermanentlyDisabled for the process lifetime; the JSON
// snapshot keeps being written regardless.
func (w *PersistenceWorker) connect(ctx context.Context) error {
	backoff := backoffBase
	var lastErr error
	for attempt := 1; attempt <= maxConnectTries; attempt++ {
		db, err := sql.Open("postgres", w.connInfo)
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				if _, err = db.ExecContext(ctx, createTableSQL); err == nil {
					w.db = db
					w.state = DBConnected
					return nil
				}
			}
			db.Close()
		}
		lastErr = err
		if attempt < maxConnectTries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= backoffFactor
		}
	}
	w.state = DBPermanentlyDisabled
	w.dbEnabled = false
	return fmt.Errorf("database permanently disabled after %d attempts: %w", maxConnectTries, lastErr)
}

func (w *PersistenceWorker) closeDB() {
	if w.db != nil {
		w.db.Close()
		w.db = nil
	}
	if w.state == DBConnected {
		w.state = DBDisconnected
	}
}

// State reports the worker's current relationship to the database.
func (w *PersistenceWorker) State() DBState { return w.state }
