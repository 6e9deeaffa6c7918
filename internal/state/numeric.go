package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number coerces a raw document value into a finite float64. The value is
// stringified, a comma decimal separator is accepted as a period, and
// anything that does not parse to a finite number yields def. This is the
// single coercion rule for every numeric field in the document.
func Number(raw any, def float64) float64 {
	switch v := raw.(type) {
	case nil:
		return def
	case float64:
		if !finite(v) {
			return def
		}

		return v
	}

	s := strings.TrimSpace(fmt.Sprintf("%v", raw))
	s = strings.ReplaceAll(s, ",", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return def
	}

	return f
}

// Integer coerces a raw value to an int via Number, truncating any
// fractional part.
func Integer(raw any, def int) int {
	return int(math.Trunc(Number(raw, float64(def))))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
