// Package heatmap holds the request/response contract of the heatmap
// generation endpoint, shared by the server and the client.
package heatmap

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

// K-count bounds of one generation request
const (
	MinKs = 1
	MaxKs = 8
)

var (
	ErrTooManyKs = fmt.Errorf("enter between %d and %d integer K values", MinKs, MaxKs)
	ErrNoKs      = fmt.Errorf("provide at least %d integer K value, max %d", MinKs, MaxKs)
)

// ParseKs turns user text such as "3, 7,x,10" into [3 7 10]. Tokens
// without a leading integer are dropped silently. An empty result is
// valid and means "show the default image set".
func ParseKs(raw string) ([]int, error) {
	ks := []int{}
	if strings.TrimSpace(raw) == "" {
		return ks, nil
	}
	for _, tok := range strings.Split(raw, ",") {
		if k, ok := leadingInt(strings.TrimSpace(tok)); ok {
			ks = append(ks, k)
		}
	}
	if len(ks) > MaxKs {
		return nil, ErrTooManyKs
	}
	return ks, nil
}

// leadingInt parses an optional sign followed by digits, ignoring any
// trailing text, so "12px" reads as 12 and "3.5" as 3.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	k, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return k, true
}

// NewRequest validates a parsed K sequence for sending
func NewRequest(ks []int) (models.HeatmapRequest, error) {
	if len(ks) < MinKs {
		return models.HeatmapRequest{}, ErrNoKs
	}
	if len(ks) > MaxKs {
		return models.HeatmapRequest{}, ErrTooManyKs
	}
	return models.HeatmapRequest{Ks: append([]int(nil), ks...)}, nil
}

// FilterKs keeps the integral numbers of a decoded JSON array and caps
// the result at MaxKs. Integral values too large for int are dropped.
func FilterKs(values []any) []int {
	ks := []int{}
	for _, v := range values {
		if len(ks) == MaxKs {
			break
		}
		if k, ok := asInt(v); ok {
			ks = append(ks, k)
		}
	}
	return ks
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
			return 0, false
		}
		// every integral float in [MinInt, -MinInt) converts exactly
		if n < float64(math.MinInt) || n >= -float64(math.MinInt) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// Key identifies a K sequence; order matters because the first K picks
// the returned image.
func Key(ks []int) string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, ",")
}

// IsValidation reports whether err is a user input error
func IsValidation(err error) bool {
	return errors.Is(err, ErrTooManyKs) || errors.Is(err, ErrNoKs)
}
