package progress

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var errFieldType = errors.New("progress field must be a string, a number or null")

// Field is an optional progress metric as entered or stored: absent, or raw text.
// Numbers are kept in their textual form; Normalize reads them.
type Field struct {
	v null.String
}

func Text(s string) Field { return Field{v: null.StringFrom(s)} }

func Number(f float64) Field { return Text(strconv.FormatFloat(f, 'f', -1, 64)) }

func Absent() Field { return Field{} }

// Raw returns the raw text and whether the field is present.
func (f Field) Raw() (string, bool) { return f.v.String, f.v.Valid }

func (f Field) IsAbsent() bool { return !f.v.Valid }

// Text returns the raw text, or def when the field is absent.
func (f Field) Text(def string) string {
	if !f.v.Valid {
		return def
	}
	return f.v.String
}

func (f Field) MarshalJSON() ([]byte, error) {
	return f.v.MarshalJSON()
}

// UnmarshalJSON accepts a JSON string, number or null.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		f.v = null.String{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.v = null.StringFrom(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil || n.String() == "" {
		return errFieldType
	}
	f.v = null.StringFrom(n.String())
	return nil
}

func (f *Field) Scan(value interface{}) error {
	return f.v.Scan(value)
}

func (f Field) Value() (driver.Value, error) {
	return f.v.Value()
}
