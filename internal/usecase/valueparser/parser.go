// Package valueparser converts human-formatted market data cells into numbers.
//
// Every lenient parser here is total: a missing cell or a cell that cannot be
// parsed yields 0.0. This is a best-effort ingestion policy, so a malformed cell
// is silently normalized to zero rather than halting a load.
package valueparser

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyCleaner   = strings.NewReplacer("$", "", ",", "")
	percentageCleaner = strings.NewReplacer("%", "", "+", "", "$", "", ",", "")
	errNotANumber     = errors.New("not a number")
	errOutOfRange     = errors.New("number out of range")
)

// ParseCurrency parses values like "$1,234.56", "$10.5M" or "$250K".
// The "$" sign and thousands commas are removed; a trailing M or K scales the
// number by one million or one thousand.
func ParseCurrency(token string) float64 {
	value := strings.TrimSpace(currencyCleaner.Replace(token))
	return withSuffix(value)
}

// ParseVolume parses values like "12.3M" or "450K". Unlike ParseCurrency it
// does not strip currency signs or commas.
func ParseVolume(token string) float64 {
	return withSuffix(strings.TrimSpace(token))
}

// ParsePercentage parses values like "+3.25%" or "-1.2%". The "%", "+", "$"
// signs and commas are removed.
func ParsePercentage(token string) float64 {
	value := strings.TrimSpace(percentageCleaner.Replace(token))
	v, err := parseFloat(value, 0)
	if err != nil {
		return 0
	}
	return v
}

// ParseNumber parses a plain number, tolerating thousands commas.
func ParseNumber(token string) float64 {
	value := strings.TrimSpace(strings.ReplaceAll(token, ",", ""))
	v, err := parseFloat(value, 0)
	if err != nil {
		return 0
	}
	return v
}

// ParseStrictPercentage parses a percentage that must carry a trailing "%".
// It returns an error instead of falling back to zero.
func ParseStrictPercentage(token string) (float64, error) {
	value := strings.TrimSpace(token)
	if !strings.HasSuffix(value, "%") {
		return 0, errors.New("missing % sign")
	}
	value = strings.ReplaceAll(strings.TrimSuffix(value, "%"), "+", "")
	return parseFloat(strings.TrimSpace(value), 0)
}

// withSuffix applies the M/K magnitude rule. Scaling is done on the decimal
// so "1.1M" is exactly 1100000.
func withSuffix(value string) float64 {
	shift := int32(0)
	switch {
	case strings.HasSuffix(value, "M"):
		value, shift = strings.TrimSuffix(value, "M"), 6
	case strings.HasSuffix(value, "K"):
		value, shift = strings.TrimSuffix(value, "K"), 3
	}

	v, err := parseFloat(value, shift)
	if err != nil {
		return 0
	}
	return v
}

// parseFloat parses value as a decimal scaled by 10^shift.
// An empty cell is unparsable. NaN and Inf text are rejected by decimal itself,
// and a value too large for a float64 is rejected here.
func parseFloat(value string, shift int32) (float64, error) {
	if value == "" {
		return 0, errNotANumber
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	f := d.Shift(shift).InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, errOutOfRange
	}
	return f, nil
}
