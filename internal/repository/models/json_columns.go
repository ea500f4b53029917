package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"wiki-quiz/internal/domain"
)

// StringSlice is a string list stored as a JSONB array.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		// NULL is never written; an absent list is stored as []
		return "[]", nil
	}
	return marshalJSONColumn(s)
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	*s = StringSlice{}
	return scanJSONColumn(value, s, "StringSlice")
}

// Entities stores domain.Entities as a JSONB object.
type Entities domain.Entities

func (e Entities) Value() (driver.Value, error) {
	return marshalJSONColumn(domain.Entities(e).Normalized())
}

func (e *Entities) Scan(value interface{}) error {
	*e = Entities(domain.NewEntities())
	if err := scanJSONColumn(value, e, "Entities"); err != nil {
		return err
	}
	*e = Entities(domain.Entities(*e).Normalized())
	return nil
}

// Questions stores the validated quiz questions as a JSONB array.
type Questions []domain.QuizQuestion

func (q Questions) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	return marshalJSONColumn(q)
}

func (q *Questions) Scan(value interface{}) error {
	*q = Questions{}
	return scanJSONColumn(value, q, "Questions")
}

func marshalJSONColumn(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// scanJSONColumn leaves dest untouched for NULL, empty and "null" column values.
func scanJSONColumn(value interface{}, dest interface{}, typeName string) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%s Scan: unsupported type %T", typeName, value)
	}

	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dest)
}
