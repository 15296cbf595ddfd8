package money

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Raw is an amount column kept exactly as the writer stored it: a JSON number,
// a formatted string or an {amount, currency} object. Drivers hand numeric
// JSON back as int64 or float64 (sqlite's JSON affinity is numeric), so Scan
// accepts those alongside text.
type Raw []byte

// Scan implements sql.Scanner.
func (r *Raw) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*r = nil
	case []byte:
		*r = Raw(bytes.Clone(v))
	case string:
		*r = Raw(v)
	case int64:
		*r = Raw(strconv.FormatInt(v, 10))
	case float64:
		*r = Raw(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("money: cannot scan %T into Raw", value)
	}
	return nil
}

// Value implements driver.Valuer. Text that is not valid JSON is stored as a
// JSON string so JSONB columns accept it.
func (r Raw) Value() (driver.Value, error) {
	if len(bytes.TrimSpace(r)) == 0 {
		return nil, nil
	}
	return string(r.jsonBytes()), nil
}

func (r Raw) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(r)) == 0 {
		return []byte("null"), nil
	}
	return r.jsonBytes(), nil
}

func (r *Raw) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*r = nil
		return nil
	}
	*r = Raw(bytes.Clone(data))
	return nil
}

func (r Raw) String() string {
	return string(r)
}

func (Raw) GormDataType() string {
	return "json"
}

func (Raw) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "sqlserver":
		return "NVARCHAR(MAX)"
	default:
		return "JSON"
	}
}

func (r Raw) jsonBytes() []byte {
	trimmed := bytes.TrimSpace(r)
	if json.Valid(trimmed) {
		return trimmed
	}
	quoted, _ := json.Marshal(string(trimmed))
	return quoted
}
