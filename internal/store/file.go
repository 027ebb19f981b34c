package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackExt selects the msgpack codec for a FileStore path.
const MsgpackExt = ".msgpack"

// FileStore keeps the record in a single file, JSON by default.
type FileStore struct {
	path string

	mu sync.Mutex
}

// NewFileStore creates a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored high score; a missing file yields 0.
func (s *FileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read()
	if err != nil {
		return 0, err
	}
	return rec.HighScore, nil
}

// Save stores score if it beats the stored value.
func (s *FileStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read()
	if err != nil {
		// Overwrite unreadable files instead of failing forever.
		rec = Record{}
	}
	if score <= rec.HighScore {
		return nil
	}
	rec.HighScore = score

	data, err := s.marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read() (Record, error) {
	var rec Record

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("read %s: %w", s.path, err)
	}

	if s.msgpack() {
		err = msgpack.Unmarshal(data, &rec)
	} else {
		err = json.Unmarshal(data, &rec)
	}
	if err != nil {
		return Record{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if rec.HighScore < 0 {
		rec.HighScore = 0
	}
	return rec, nil
}

func (s *FileStore) marshal(rec Record) ([]byte, error) {
	if s.msgpack() {
		return msgpack.Marshal(rec)
	}
	return json.Marshal(rec)
}

func (s *FileStore) msgpack() bool {
	return strings.EqualFold(filepath.Ext(s.path), MsgpackExt)
}

// writeFileAtomic replaces path with data via a temp file and rename so a
// crash never leaves a half-written record.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".byteblaster-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
