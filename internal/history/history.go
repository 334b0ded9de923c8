package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/codegenius/codegenius/internal/model"
)

// ScanDB provides SQLite-based storage for scan summaries.
// It manages the connection and provides methods for saving and querying
// past scans.
//
// Design decision: We use a single database file shared by all roots rather
// than one file per scanned tree. This keeps listing and cross-root queries
// trivial and makes backup a single-file copy.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScanDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	dbPath := filepath.Join(dbDir, "codegenius.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids lock
	// contention between concurrent batch scans saving their rows.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// Path returns the database file path.
func (sdb *ScanDB) Path() string {
	return sdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Scan rows store per-run summaries; graphs never land here.
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_files INTEGER NOT NULL,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		language_counts TEXT NOT NULL,
		artifact_path TEXT NOT NULL,
		artifact_digest TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_root ON scans(root);
	CREATE INDEX IF NOT EXISTS idx_scans_timestamp ON scans(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// Record is one stored scan summary.
type Record struct {
	// ID is the unique identifier of the scan in the database.
	ID int64

	// Root is the absolute scanned root.
	Root string

	// Timestamp is when the scan was performed.
	Timestamp time.Time

	// TotalFiles is the number of classified files across all buckets.
	TotalFiles int

	// NodeCount is the node total summed over all graphs.
	NodeCount int

	// EdgeCount is the edge total summed over all graphs.
	EdgeCount int

	// LanguageCounts maps family display names to bucket sizes.
	LanguageCounts map[string]int

	// ArtifactPath is where the rendered document was written.
	ArtifactPath string

	// ArtifactDigest is the hex BLAKE2b-256 digest of the artifact,
	// empty when the artifact could not be read at save time.
	ArtifactDigest string
}

// NewRecord builds a summary row from a completed scan.
// The artifact digest is best-effort: an unreadable artifact leaves the
// digest empty rather than failing the save.
func NewRecord(result *model.ScanResult) *Record {
	counts := make(map[string]int, len(result.Buckets))
	for _, lang := range model.Languages() {
		if n := result.CountFor(lang); n > 0 {
			counts[lang.String()] = n
		}
	}

	rec := &Record{
		Root:           result.Root,
		Timestamp:      result.StartedAt,
		TotalFiles:     result.TotalFiles(),
		NodeCount:      result.TotalNodes(),
		EdgeCount:      result.TotalEdges(),
		LanguageCounts: counts,
		ArtifactPath:   result.ArtifactPath,
	}

	if digest, err := DigestArtifact(result.ArtifactPath); err == nil {
		rec.ArtifactDigest = digest
	}

	return rec
}

// DigestArtifact computes the hex BLAKE2b-256 digest of the file at path.
func DigestArtifact(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from our own render step
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create digest: %w", err)
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to digest artifact: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SaveScan inserts a scan summary row and returns its ID.
func (sdb *ScanDB) SaveScan(ctx context.Context, rec *Record) (int64, error) {
	countsJSON, err := json.Marshal(rec.LanguageCounts)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize language counts: %w", err)
	}

	query := `
	INSERT INTO scans (root, timestamp, total_files, node_count, edge_count, language_counts, artifact_path, artifact_digest)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sdb.db.ExecContext(ctx, query,
		rec.Root,
		rec.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		rec.TotalFiles,
		rec.NodeCount,
		rec.EdgeCount,
		string(countsJSON),
		rec.ArtifactPath,
		rec.ArtifactDigest,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan: %w", err)
	}

	return result.LastInsertId()
}

// ListScans returns stored summaries, newest first.
// A non-empty root restricts the listing to that root.
func (sdb *ScanDB) ListScans(ctx context.Context, root string) ([]Record, error) {
	query := `
	SELECT id, root, timestamp, total_files, node_count, edge_count, language_counts, artifact_path, artifact_digest
	FROM scans
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if root != "" {
		query += " AND root = ?"
		args = append(args, root)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}

	return results, rows.Err()
}

// GetScanByID retrieves one scan summary by its database ID.
// Returns nil without error when no row matches.
func (sdb *ScanDB) GetScanByID(ctx context.Context, id int64) (*Record, error) {
	query := `
	SELECT id, root, timestamp, total_files, node_count, edge_count, language_counts, artifact_path, artifact_digest
	FROM scans
	WHERE id = ?
	`

	rows, err := sdb.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRecord(rows)
}

// LatestScan retrieves the most recent summary for a root.
// Returns nil without error when the root was never scanned.
func (sdb *ScanDB) LatestScan(ctx context.Context, root string) (*Record, error) {
	query := `
	SELECT id, root, timestamp, total_files, node_count, edge_count, language_counts, artifact_path, artifact_digest
	FROM scans
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	rows, err := sdb.db.QueryContext(ctx, query, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scan: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRecord(rows)
}

// scanRecord reads one row into a Record.
func scanRecord(rows *sql.Rows) (*Record, error) {
	var rec Record
	var timestamp string
	var countsJSON string

	err := rows.Scan(
		&rec.ID,
		&rec.Root,
		&timestamp,
		&rec.TotalFiles,
		&rec.NodeCount,
		&rec.EdgeCount,
		&countsJSON,
		&rec.ArtifactPath,
		&rec.ArtifactDigest,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	rec.Timestamp = parseTimestamp(timestamp)

	rec.LanguageCounts = make(map[string]int)
	if countsJSON != "" {
		if err := json.Unmarshal([]byte(countsJSON), &rec.LanguageCounts); err != nil {
			rec.LanguageCounts = make(map[string]int)
		}
	}

	return &rec, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
