package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Money is a currency amount. The backend serialises decimals as JSON strings,
// so both "12.50" and 12.5 decode.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		if s == "" {
			*m = 0
			return nil
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid money value %q: %w", s, err)
		}

		*m = Money(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid money value %s: %w", string(data), err)
	}

	*m = Money(f)
	return nil
}

// Round returns the amount rounded to cents.
func (m Money) Round() Money {
	return Money(math.Round(float64(m)*100) / 100)
}

func (m Money) String() string {
	return strconv.FormatFloat(float64(m.Round()), 'f', 2, 64)
}
