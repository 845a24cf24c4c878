package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a string slice persisted as a JSON array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return jsonScan(src, l)
}

func jsonValue(v interface{}) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func jsonScan(src interface{}, dst interface{}) error {
	var raw []byte
	switch value := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
