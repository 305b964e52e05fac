// Package currency converts between the chain's smallest-unit integer
// representation (wei) and the decimal display unit (ETH). All arithmetic is
// done on big.Int: campaign amounts routinely exceed 2^53 wei, so float64 and
// int64 are both unusable for totals.
package currency

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned for input that does not parse as a positive
// decimal amount, or for a stored amount string that is not a non-negative
// integer.
var ErrInvalidAmount = errors.New("invalid amount")

const (
	// SmallestUnitDecimals is the wei-per-ETH exponent.
	SmallestUnitDecimals = 18
	// DisplayDecimals is the fixed precision of formatted display amounts.
	// Formatting truncates, so anything below 10^14 wei is not displayed.
	DisplayDecimals = 4

	secondsPerDay = 86400
)

var (
	unitScale    = new(big.Int).Exp(big.NewInt(10), big.NewInt(SmallestUnitDecimals), nil)
	displayScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(SmallestUnitDecimals-DisplayDecimals), nil)
)

// ParseAmount validates a stored smallest-unit amount string and returns it
// as a big.Int. The empty string is not a valid amount.
func ParseAmount(smallest string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(smallest, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidAmount, smallest)
	}
	return v, nil
}

// ToDisplayUnit formats a smallest-unit integer string as a fixed
// four-decimal display string, e.g. "4500000000000000000" -> "4.5000".
func ToDisplayUnit(smallest string) (string, error) {
	v, err := ParseAmount(smallest)
	if err != nil {
		return "", err
	}
	whole := new(big.Int)
	rem := new(big.Int)
	whole.QuoRem(v, unitScale, rem)
	frac := new(big.Int).Quo(rem, displayScale)
	return fmt.Sprintf("%s.%04d", whole.String(), frac.Int64()), nil
}

// ToSmallestUnit parses a positive decimal display amount into a smallest-unit
// integer string, e.g. "4.5" -> "4500000000000000000". Zero, negative and
// malformed amounts fail with ErrInvalidAmount, as do amounts with more than
// 18 fractional digits.
func ToSmallestUnit(display string) (string, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return "", fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return "", fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, display)
	}
	if len(fracPart) > SmallestUnitDecimals {
		return "", fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, display, SmallestUnitDecimals)
	}
	fracPart += strings.Repeat("0", SmallestUnitDecimals-len(fracPart))

	whole, _ := new(big.Int).SetString(intPart, 10)
	frac, _ := new(big.Int).SetString(fracPart, 10)
	v := new(big.Int).Mul(whole, unitScale)
	v.Add(v, frac)
	if v.Sign() <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	return v.String(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DaysRemaining returns the whole days between now and deadline (both Unix
// seconds), never negative.
func DaysRemaining(deadline, now int64) int {
	if deadline <= now {
		return 0
	}
	return int((deadline - now) / secondsPerDay)
}

// ShortenAddress abbreviates an account address for display,
// "0x742d35Cc6634C0532925a3b844Bc454e4438f44e" -> "0x742d...f44e".
func ShortenAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
