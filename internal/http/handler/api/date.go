package api

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Date is a calendar date serialized as YYYY-MM-DD. RFC 3339 timestamps
// are accepted on input.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}

	if raw == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		t, err := time.Parse(layout, raw)
		if err == nil {
			d.Time = t
			return nil
		}
	}

	return errors.Errorf("invalid date '%s'", raw)
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = &Date{}
)
