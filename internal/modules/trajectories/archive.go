// Package trajectories archives raw episode trajectories to disk. Records
// are msgpack-framed and appended as episodes complete, so a large batch
// never holds more than one trajectory in memory.
package trajectories

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hedgelab/hedgebench/internal/domain"
)

// Record is one archived episode.
type Record struct {
	Episode int                     `msgpack:"episode"`
	Ticker  string                  `msgpack:"ticker"`
	Steps   []domain.TrajectoryStep `msgpack:"steps"`
}

// Archive is an append-only trajectory file writer.
type Archive struct {
	file *os.File
	enc  *msgpack.Encoder
}

// NewArchive creates (truncating) the archive file at path.
func NewArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	return &Archive{
		file: file,
		enc:  msgpack.NewEncoder(file),
	}, nil
}

// Append writes one episode record to the archive.
func (a *Archive) Append(rec Record) error {
	if err := a.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode trajectory record: %w", err)
	}
	return nil
}

// Close flushes and closes the archive file.
func (a *Archive) Close() error {
	return a.file.Close()
}

// ReadAll loads every record from an archive file, in write order.
func ReadAll(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	dec := msgpack.NewDecoder(file)
	var records []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode trajectory record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
