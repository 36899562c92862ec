package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONArray stores a slice in a JSONB column. A nil slice is written as [] so the
// column can stay NOT NULL.
type JSONArray[T any] []T

func (a JSONArray[T]) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(a))
}

func (a *JSONArray[T]) Scan(value any) error {
	if value == nil {
		*a = JSONArray[T]{}
		return nil
	}

	b, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("JSONArray: %w", err)
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	*a = items
	return nil
}

func jsonBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("scan failed, expected []byte but got %T", value)
	}
}
