package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Category names one of the four entity collections a dataset can hold.
type Category string

const (
	CategoryDepartments Category = "departments"
	CategoryStations    Category = "stations"
	CategoryUsers       Category = "users"
	CategoryIncidents   Category = "incidents"
)

// ErrUnknownCategory is returned when a string does not name a Category.
var ErrUnknownCategory = errors.New("unknown category")

// Categories lists every category in foreign-key dependency order. Loaders
// insert in this order so parents always precede children.
func Categories() []Category {
	return []Category{CategoryDepartments, CategoryStations, CategoryUsers, CategoryIncidents}
}

// ParseCategory validates s as a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Record is a single entity stored in a dataset.
type Record interface {
	RecordID() string
	RecordCategory() Category
}

func (d Department) RecordID() string { return d.ID }
func (d Department) RecordCategory() Category { return CategoryDepartments }
func (s Station) RecordID() string { return s.ID }
func (s Station) RecordCategory() Category { return CategoryStations }
func (u User) RecordID() string { return u.ID }
func (u User) RecordCategory() Category { return CategoryUsers }
func (i Incident) RecordID() string { return i.ID }
func (i Incident) RecordCategory() Category { return CategoryIncidents }

// DecodeRecords unmarshals a JSON array of entities of the given category.
func DecodeRecords(category Category, data []byte) ([]Record, error) {
	switch category {
	case CategoryDepartments:
		return decodeAs[Department](data)
	case CategoryStations:
		return decodeAs[Station](data)
	case CategoryUsers:
		return decodeAs[User](data)
	case CategoryIncidents:
		return decodeAs[Incident](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

func decodeAs[T Record](data []byte) ([]Record, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	out := make([]Record, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out, nil
}

// AsRecords widens a typed entity slice to []Record.
func AsRecords[T Record](items []T) []Record {
	out := make([]Record, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

// RecordsOf narrows records to a concrete entity type, dropping any record of
// another type.
func RecordsOf[T Record](records []Record) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
