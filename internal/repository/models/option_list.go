package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Option mirrors one {label, value} answer choice as stored in the
// quiz_questions.options JSON column.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionList is a custom type for the JSON-encoded options column.
type OptionList []Option

// Value implements the driver.Valuer interface. A string is returned
// instead of []byte for Oracle CLOB compatibility.
func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (o *OptionList) Scan(value interface{}) error {
	if value == nil {
		*o = OptionList{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("OptionList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*o = OptionList{}
		return nil
	}

	return json.Unmarshal(bytesToParse, o)
}
