package testdata

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/fireems-testdata/internal/domain"
)

// FormatVersion is stamped into dataset and fixture metadata.
const FormatVersion = "1.0"

// Metadata describes a persisted dataset.
type Metadata struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	Version     string          `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	RecordCount int             `json:"record_count"`
	Seed        *int64          `json:"seed,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Dataset is a named, single-category collection of entity records.
type Dataset struct {
	Name     string
	Category domain.Category
	Data     []domain.Record
	Metadata Metadata
}

// DatasetOption sets optional dataset metadata.
type DatasetOption func(*Metadata)

// WithSeed records the generator seed the data was produced with.
func WithSeed(seed int64) DatasetOption {
	return func(m *Metadata) { m.Seed = &seed }
}

// WithDescription sets a free-form description.
func WithDescription(desc string) DatasetOption {
	return func(m *Metadata) { m.Description = desc }
}

// NewDataset builds a dataset with fresh metadata. It does not touch disk.
func NewDataset(name string, category domain.Category, records []domain.Record, opts ...DatasetOption) *Dataset {
	if records == nil {
		records = []domain.Record{}
	}
	meta := Metadata{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    category,
		Version:     FormatVersion,
		CreatedAt:   domain.Clock().Now().UTC(),
		RecordCount: len(records),
	}
	for _, opt := range opts {
		opt(&meta)
	}
	return &Dataset{Name: name, Category: category, Data: records, Metadata: meta}
}

// Key is the dataset's cache key, "category/name".
func (d *Dataset) Key() string {
	return datasetKey(d.Category, d.Name)
}

// Ref returns the name+category pointer a fixture stores for this dataset.
func (d *Dataset) Ref() DatasetRef {
	return DatasetRef{Name: d.Name, Category: d.Category}
}

func datasetKey(category domain.Category, name string) string {
	return string(category) + "/" + name
}

type datasetFile struct {
	Metadata Metadata        `json:"metadata"`
	Data     json.RawMessage `json:"data"`
}

// Save writes the dataset to its file, replacing any previous content.
func (d *Dataset) Save(store *Store) error {
	if err := validateName(d.Name); err != nil {
		return err
	}
	if _, err := domain.ParseCategory(string(d.Category)); err != nil {
		return err
	}
	for _, r := range d.Data {
		if r.RecordCategory() != d.Category {
			return fmt.Errorf("dataset %s: %s record %s in %s dataset",
				d.Key(), r.RecordCategory(), r.RecordID(), d.Category)
		}
	}

	d.Metadata.Name = d.Name
	d.Metadata.Category = d.Category
	d.Metadata.RecordCount = len(d.Data)

	records := d.Data
	if records == nil {
		records = []domain.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", d.Key(), err)
	}
	if err := writeJSON(store.DatasetPath(d.Category, d.Name), datasetFile{Metadata: d.Metadata, Data: data}); err != nil {
		return fmt.Errorf("save dataset %s: %w", d.Key(), err)
	}
	return nil
}

// LoadDataset reads a dataset file. A missing file yields an error for which
// IsNotFound is true; malformed JSON yields a decode error. Records are not
// validated.
func LoadDataset(store *Store, category domain.Category, name string) (*Dataset, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	var f datasetFile
	if err := readJSON(store.DatasetPath(category, name), &f); err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", datasetKey(category, name), err)
	}
	raw := f.Data
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("[]")
	}
	records, err := domain.DecodeRecords(category, raw)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", datasetKey(category, name), err)
	}
	return &Dataset{Name: name, Category: category, Data: records, Metadata: f.Metadata}, nil
}
