package export

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/nymix/internal/fileutil"
	"github.com/nao1215/nymix/internal/model"
)

var (
	// ErrMalformed is returned for export files that cannot be decoded or
	// violate the result set invariants.
	ErrMalformed = errors.New("malformed export file")

	// ErrNotFound is returned when the export file does not exist.
	ErrNotFound = errors.New("export file not found")
)

// Checksum returns the hex SHA3-256 digest of the canonical JSON encoding
// of the records.
func Checksum(records []model.Record) (string, error) {
	if records == nil {
		records = []model.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Marshal sets the checksum of rs and returns its indented JSON encoding.
func Marshal(rs *model.ResultSet) ([]byte, error) {
	sum, err := Checksum(rs.Records)
	if err != nil {
		return nil, err
	}
	rs.Checksum = sum
	if rs.SchemaVersion == 0 {
		rs.SchemaVersion = model.SchemaVersion
	}

	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result set: %w", err)
	}
	return append(data, '\n'), nil
}

// Write stores rs at path. The file is replaced atomically, so a failed
// write never leaves a partial export behind.
func Write(path string, rs *model.ResultSet) error {
	data, err := Marshal(rs)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Read loads and validates the export at path.
func Read(path string) (*model.ResultSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided export path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal decodes and validates an export. Unknown fields are ignored so
// that files written by newer builds with the same schema still load.
func Unmarshal(data []byte) (*model.ResultSet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}

	var rs model.ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if rs.Checksum != "" {
		sum, err := Checksum(rs.Records)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if sum != rs.Checksum {
			return nil, fmt.Errorf("%w: checksum mismatch", ErrMalformed)
		}
	}
	return &rs, nil
}
