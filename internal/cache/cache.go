// Package cache provides a disk-backed TTL cache for project analyses,
// LZ4-compressed to keep large payloads cheap.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// DefaultTTL is how long a cached analysis stays fresh.
const DefaultTTL = 24 * time.Hour

// uint64ByteSize is the number of bytes in the uncompressed-size header.
const uint64ByteSize = 8

// dirPermissions and filePermissions bound on-disk access to the owner.
const (
	dirPermissions  = 0o700
	filePermissions = 0o600
)

// ErrCorruptEntry is returned when a cache file cannot be decoded.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// ErrEntryExpired is returned when a cache file is older than the TTL.
var ErrEntryExpired = errors.New("cache entry expired")

// entry is the on-disk envelope around a compressed analysis.
type entry struct {
	StoredAt time.Time `json:"stored_at"`
	Payload  []byte    `json:"payload"`
}

// Store is a disk-backed TTL cache keyed by repository name and commit.
// Safe for concurrent use.
type Store struct {
	dir    string
	ttl    time.Duration
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore creates a cache rooted at dir. A non-positive ttl gets
// DefaultTTL, a nil logger discards.
func NewStore(dir string, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	err := os.MkdirAll(dir, dirPermissions)
	if err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	return &Store{dir: dir, ttl: ttl, logger: logger}, nil
}

// Get retrieves a cached analysis. Expired or undecodable entries are
// removed and reported as a miss, never returned stale.
func (s *Store) Get(repo, commit string) (*metrics.ProjectAnalysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.entryPath(repo, commit)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	analysis, err := decodeEntry(raw, s.ttl)
	if err != nil {
		s.logger.Warn("evicting cache entry",
			slog.String("repo", repo),
			slog.String("reason", err.Error()))
		_ = os.Remove(path)

		return nil, false
	}

	return analysis, true
}

// Put stores an analysis under the given repository and commit.
func (s *Store) Put(repo, commit string, analysis *metrics.ProjectAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := encodeEntry(analysis)
	if err != nil {
		return err
	}

	path := s.entryPath(repo, commit)

	err = os.WriteFile(path, raw, filePermissions)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

// Invalidate removes the entry for the given repository and commit, if any.
func (s *Store) Invalidate(repo, commit string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = os.Remove(s.entryPath(repo, commit))
}

// Purge removes every expired or corrupt entry and returns how many were
// dropped.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}

	dropped := 0

	for _, dirEntry := range entries {
		if dirEntry.IsDir() {
			continue
		}

		path := filepath.Join(s.dir, dirEntry.Name())

		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if _, err := decodeEntry(raw, s.ttl); err != nil {
			_ = os.Remove(path)
			dropped++
		}
	}

	return dropped
}

// entryPath derives the file path for a cache key. Keys are hashed so that
// repository names never leak path separators into the cache directory.
func (s *Store) entryPath(repo, commit string) string {
	sum := sha256.Sum256([]byte(repo + "@" + commit))

	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".cache")
}

// encodeEntry wraps an analysis into a timestamped, compressed envelope.
func encodeEntry(analysis *metrics.ProjectAnalysis) ([]byte, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}

	compressed, err := compress(payload)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(entry{StoredAt: time.Now().UTC(), Payload: compressed})
	if err != nil {
		return nil, fmt.Errorf("encoding cache entry: %w", err)
	}

	return raw, nil
}

// decodeEntry unwraps an envelope, enforcing the TTL.
func decodeEntry(raw []byte, ttl time.Duration) (*metrics.ProjectAnalysis, error) {
	var envelope entry

	err := json.Unmarshal(raw, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}

	if time.Since(envelope.StoredAt) > ttl {
		return nil, ErrEntryExpired
	}

	payload, err := decompress(envelope.Payload)
	if err != nil {
		return nil, err
	}

	var analysis metrics.ProjectAnalysis

	err = json.Unmarshal(payload, &analysis)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}

	return &analysis, nil
}

// compress LZ4-block-compresses data, prefixed with the uncompressed size.
// Incompressible payloads are stored raw after the header.
func compress(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)

	err := binary.Write(buf, binary.LittleEndian, uint64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("writing size header: %w", err)
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	written, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("compressing payload: %w", err)
	}

	if written == 0 {
		buf.Write(data)

		return buf.Bytes(), nil
	}

	buf.Write(compressed[:written])

	return buf.Bytes(), nil
}

// decompress reverses compress. A block whose length equals the declared
// size was stored raw.
func decompress(data []byte) ([]byte, error) {
	if len(data) < uint64ByteSize {
		return nil, ErrCorruptEntry
	}

	size := binary.LittleEndian.Uint64(data[:uint64ByteSize])
	block := data[uint64ByteSize:]

	if uint64(len(block)) == size {
		return block, nil
	}

	decompressed := make([]byte, size)

	_, err := lz4.UncompressBlock(block, decompressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}

	return decompressed, nil
}
