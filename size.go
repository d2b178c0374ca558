package resalloc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// UnitTable maps an upper-case size suffix to its byte multiplier.
type UnitTable map[string]uint64

// DecimalUnits is the default unit table. Multipliers are powers of 1000.
var DecimalUnits = UnitTable{
	"":   1,
	"B":  1,
	"K":  1_000,
	"KB": 1_000,
	"M":  1_000_000,
	"MB": 1_000_000,
	"G":  1_000_000_000,
	"GB": 1_000_000_000,
	"T":  1_000_000_000_000,
	"TB": 1_000_000_000_000,
}

var (
	ErrInvalidNumber = errors.New("invalid number format")
	ErrUnknownSuffix = errors.New("unknown suffix")
	ErrNotInteger    = errors.New("amount must be an integer number of bytes")
	ErrNonPositive   = errors.New("amount must be positive")
	ErrTooLarge      = errors.New("amount is too large")
)

// ParseError reports a size string that could not be resolved.
// Kind is one of the Err* sentinels above.
type ParseError struct {
	Spec   string
	Kind   error
	Suffix string
}

func (e *ParseError) Error() string {
	if errors.Is(e.Kind, ErrUnknownSuffix) {
		return fmt.Sprintf("%v: %s in %q", e.Kind, e.Suffix, e.Spec)
	}
	return fmt.Sprintf("%v: %q", e.Kind, e.Spec)
}

func (e *ParseError) Unwrap() error { return e.Kind }

var maxByteCount = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// Resolver turns size strings like "512MB" or "1.5K" into byte counts.
type Resolver struct {
	Units UnitTable
}

// DefaultResolver resolves against DecimalUnits.
var DefaultResolver = &Resolver{Units: DecimalUnits}

// Resolve resolves spec with DefaultResolver.
func Resolve(spec string) (uint64, error) {
	return DefaultResolver.Resolve(spec)
}

// Resolve parses spec as an optional decimal number followed by an
// optional unit suffix and returns the exact number of bytes.
func (r *Resolver) Resolve(spec string) (uint64, error) {
	s := strings.TrimSpace(spec)

	i := 0
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	numStr, suffix := s[:i], strings.TrimSpace(s[i:])

	num, err := parseNumber(numStr)
	if err != nil {
		return 0, &ParseError{Spec: spec, Kind: ErrInvalidNumber}
	}

	units := r.Units
	if units == nil {
		units = DecimalUnits
	}
	multiplier, ok := units[strings.ToUpper(suffix)]
	if !ok {
		return 0, &ParseError{Spec: spec, Kind: ErrUnknownSuffix, Suffix: suffix}
	}

	bytes := num.Mul(decimal.NewFromBigInt(new(big.Int).SetUint64(multiplier), 0))
	switch {
	case !bytes.IsInteger():
		return 0, &ParseError{Spec: spec, Kind: ErrNotInteger}
	case bytes.Sign() <= 0:
		return 0, &ParseError{Spec: spec, Kind: ErrNonPositive}
	case bytes.GreaterThan(maxByteCount):
		return 0, &ParseError{Spec: spec, Kind: ErrTooLarge}
	}

	return bytes.BigInt().Uint64(), nil
}

// parseNumber accepts digits with at most one decimal point, which may
// lead or trail (".5", "5.").
func parseNumber(s string) (decimal.Decimal, error) {
	if s == "" || strings.Count(s, ".") > 1 || strings.Trim(s, ".") == "" {
		return decimal.Zero, ErrInvalidNumber
	}

	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}

	return decimal.NewFromString(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// FormatBytes renders n with SI units, e.g. "512 MB".
func FormatBytes(n uint64) string { return humanize.Bytes(n) }
