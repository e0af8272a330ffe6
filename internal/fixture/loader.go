// Package fixture loads the read-only customer dataset served by the backend.
package fixture

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// Sources understood by Load
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

//go:embed data/dataset.json
var embeddedDataset []byte

// Options selects where the dataset is read from
type Options struct {
	Source string
	Path   string
	DB     Querier
}

// Load reads the dataset from the configured source
func Load(ctx context.Context, opts Options) (*models.Dataset, error) {
	switch opts.Source {
	case "", SourceEmbedded:
		return LoadEmbedded()
	case SourceFile:
		if opts.Path == "" {
			return nil, models.ErrInvalidInput("fixture path is required for the file source")
		}
		return LoadFile(opts.Path)
	case SourcePostgres:
		if opts.DB == nil {
			return nil, models.ErrInvalidInput("database is required for the postgres source")
		}
		return LoadPostgres(ctx, opts.DB)
	default:
		return nil, models.ErrInvalidInput(fmt.Sprintf("unknown fixture source: %s", opts.Source))
	}
}

// LoadEmbedded returns the mock dataset compiled into the binary
func LoadEmbedded() (*models.Dataset, error) {
	ds, err := Parse(embeddedDataset)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads a JSON dataset from disk
func LoadFile(path string) (*models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a JSON dataset. Unknown fields are rejected so
// that typos in hand-edited fixtures surface at startup.
func Parse(data []byte) (*models.Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var ds models.Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	normalize(&ds)

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// normalize replaces absent collections with empty ones so callers never
// see a nil map or nil nested slice.
func normalize(ds *models.Dataset) {
	if ds.Customers == nil {
		ds.Customers = []models.Customer{}
	}
	if ds.Programs == nil {
		ds.Programs = []models.Program{}
	}
	for i := range ds.Customers {
		c := &ds.Customers[i]
		if c.ContractAccounts == nil {
			c.ContractAccounts = []models.ContractAccount{}
		}
		if c.Premises == nil {
			c.Premises = []models.Premise{}
		}
		for j := range c.Premises {
			if c.Premises[j].ServicePoints == nil {
				c.Premises[j].ServicePoints = []models.ServicePoint{}
			}
		}
	}
	ds.Bills = orEmpty(ds.Bills)
	ds.Payments = orEmpty(ds.Payments)
	ds.Rates = orEmpty(ds.Rates)
	ds.MeterReadings = orEmpty(ds.MeterReadings)
	ds.Interactions = orEmpty(ds.Interactions)
	ds.Cases = orEmpty(ds.Cases)
	ds.Eligibility = orEmpty(ds.Eligibility)
}

func orEmpty[V any](m map[string][]V) map[string][]V {
	if m == nil {
		return map[string][]V{}
	}
	return m
}
