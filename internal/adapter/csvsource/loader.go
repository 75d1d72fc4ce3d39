// Package csvsource loads market snapshot CSV files into immutable datasets.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/simaogato/fintech-analyzer/internal/domain"
)

// Loader loads the crypto and stock snapshot files
type Loader struct {
	CryptoPath string
	StockPath  string
}

// NewLoader creates a new Loader for the given file paths
func NewLoader(cryptoPath, stockPath string) *Loader {
	return &Loader{CryptoPath: cryptoPath, StockPath: stockPath}
}

// LoadAll loads both datasets, failing on the first error
func (l *Loader) LoadAll() (domain.CryptoDataset, domain.EquityDataset, error) {
	crypto, err := LoadCrypto(l.CryptoPath)
	if err != nil {
		return domain.CryptoDataset{}, domain.EquityDataset{}, err
	}

	equities, err := LoadEquities(l.StockPath)
	if err != nil {
		return domain.CryptoDataset{}, domain.EquityDataset{}, err
	}

	return crypto, equities, nil
}

// LoadCrypto loads a cryptocurrency snapshot file
func LoadCrypto(path string) (domain.CryptoDataset, error) {
	return Load(path, CryptoSchema)
}

// LoadEquities loads a stock snapshot file
func LoadEquities(path string) (domain.EquityDataset, error) {
	return Load(path, EquitySchema)
}

// DecodeCrypto reads a cryptocurrency snapshot from r
func DecodeCrypto(r io.Reader) (domain.CryptoDataset, error) {
	return Decode(r, CryptoSchema)
}

// DecodeEquities reads a stock snapshot from r
func DecodeEquities(r io.Reader) (domain.EquityDataset, error) {
	return Decode(r, EquitySchema)
}

// Load opens path and decodes it with schema.
// A missing file fails with domain.ErrSourceNotFound.
func Load[T domain.Record](path string, schema Schema[T]) (domain.Dataset[T], error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset[T]{}, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return domain.Dataset[T]{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f, schema)
	if err != nil {
		return domain.Dataset[T]{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, nil
}

// Decode reads a CSV stream with a header row and decodes every row with schema.
// Rows are kept in stream order and none is dropped: lenient cells fall back
// to zero, while a bad timestamp or strict percentage fails the whole decode.
func Decode[T domain.Record](r io.Reader, schema Schema[T]) (domain.Dataset[T], error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short rows are padded with empty cells

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Dataset[T]{}, fmt.Errorf("%w: empty source has no header", domain.ErrMissingColumn)
		}
		return domain.Dataset[T]{}, fmt.Errorf("failed to read header: %w", err)
	}

	positions, decoders, err := bind(header, schema)
	if err != nil {
		return domain.Dataset[T]{}, err
	}

	records := []T{}
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Dataset[T]{}, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		var rec T
		for i, col := range schema {
			raw := ""
			if positions[i] < len(fields) {
				raw = fields[positions[i]]
			}

			cell, err := decoders[i](raw)
			if err != nil {
				return domain.Dataset[T]{}, fmt.Errorf("row %d, column %q: %w", row, col.Name, err)
			}
			col.Set(&rec, cell)
		}
		records = append(records, rec)
	}

	return domain.NewDataset(records), nil
}

// bind resolves each schema column to its header position and decoder
func bind[T any](header []string, schema Schema[T]) ([]int, []Decoder, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	positions := make([]int, len(schema))
	decoders := make([]Decoder, len(schema))
	for i, col := range schema {
		pos, ok := index[col.Name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", domain.ErrMissingColumn, col.Name)
		}
		decode, ok := Decoders[col.Kind]
		if !ok {
			return nil, nil, fmt.Errorf("column %q: no decoder for kind %q", col.Name, col.Kind)
		}
		positions[i] = pos
		decoders[i] = decode
	}

	return positions, decoders, nil
}
