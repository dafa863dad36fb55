// Package units converts between human display amounts and the ledger's
// fixed-point integers. NEAR amounts carry 24 decimal places (yoctoNEAR),
// gas is expressed to callers in TGas (10^12 gas units). All arithmetic is
// arbitrary precision; ledger balances routinely exceed 64-bit range.
package units

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-near-tools/internal/near/nearerr"
)

const (
	// NominationExp is the number of base-10 digits between one NEAR and one yoctoNEAR.
	NominationExp = 24
	// TGasExp is the number of base-10 digits between one TGas and one gas unit.
	TGasExp = 12
	// DefaultFracDigits is how many fractional digits FormatNear keeps for display.
	DefaultFracDigits = 5
)

// ParseNear converts a display amount such as "0.5" into yoctoNEAR.
func ParseNear(display string) (*big.Int, error) {
	v, err := parseFixed(display, NominationExp)
	if err != nil {
		return nil, nearerr.Wrap(nearerr.CategoryInvalidAmount, err, "invalid NEAR amount "+quote(display))
	}
	return v, nil
}

// ParseTGas converts a display gas amount such as "30" into gas units.
// No upper bound is enforced here; out-of-range gas is rejected when the
// native action is assembled.
func ParseTGas(display string) (*big.Int, error) {
	v, err := parseFixed(display, TGasExp)
	if err != nil {
		return nil, nearerr.Wrap(nearerr.CategoryInvalidAmount, err, "invalid gas amount "+quote(display))
	}
	return v, nil
}

// ParseYocto parses an amount that is already denominated in yoctoNEAR.
// Stake amounts arrive this way: unlike every other monetary field they are
// raw base units, and that asymmetry is part of the tool contract.
func ParseYocto(raw string) (*big.Int, error) {
	cleaned := cleanupAmount(raw)
	if cleaned == "" || !isDigits(cleaned) {
		return nil, nearerr.Newf(nearerr.CategoryInvalidAmount, "invalid yoctoNEAR amount %s: expected a base-10 integer", quote(raw))
	}
	v, ok := new(big.Int).SetString(cleaned, 10)
	if !ok {
		return nil, nearerr.Newf(nearerr.CategoryInvalidAmount, "invalid yoctoNEAR amount %s", quote(raw))
	}
	return v, nil
}

// FormatNear renders a yoctoNEAR integer string as a display amount with at
// most fracDigits fractional digits (truncated, trailing zeros trimmed).
// Formatting is best effort: malformed input is returned unchanged so a
// response is never blocked on display polish. A negative fracDigits selects
// the default.
func FormatNear(yocto string, fracDigits int) string {
	return formatFixed(yocto, NominationExp, fracDigits)
}

// FormatTGas renders a gas integer string in TGas, same best-effort rules as
// FormatNear.
func FormatTGas(gas string, fracDigits int) string {
	return formatFixed(gas, TGasExp, fracDigits)
}

// parseFixed parses a non-negative decimal string into an integer scaled by
// 10^decimals. It rejects anything that is not a plain decimal number with at
// most `decimals` fractional digits.
func parseFixed(display string, decimals int) (*big.Int, error) {
	cleaned := cleanupAmount(display)
	if cleaned == "" {
		return nil, errors.New("empty amount")
	}

	whole, frac := cleaned, ""
	if idx := strings.IndexByte(cleaned, '.'); idx >= 0 {
		whole, frac = cleaned[:idx], cleaned[idx+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return nil, errors.New("more than one decimal point")
		}
	}
	if whole == "" && frac == "" {
		return nil, errors.New("no digits")
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, errors.New("not a non-negative decimal number")
	}
	if len(frac) > decimals {
		return nil, errors.Errorf("more than %d fractional digits", decimals)
	}

	combined := whole + frac + strings.Repeat("0", decimals-len(frac))
	combined = strings.TrimLeft(combined, "0")
	if combined == "" {
		return big.NewInt(0), nil
	}

	v, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, errors.New("not a non-negative decimal number")
	}
	return v, nil
}

func formatFixed(raw string, decimals int, fracDigits int) string {
	if fracDigits < 0 {
		fracDigits = DefaultFracDigits
	}

	cleaned := cleanupAmount(raw)
	if cleaned == "" || !isDigits(cleaned) {
		// Best effort only: hand the caller back whatever they gave us.
		return raw
	}

	padded := cleaned
	if len(padded) <= decimals {
		padded = strings.Repeat("0", decimals-len(padded)+1) + padded
	}

	whole := strings.TrimLeft(padded[:len(padded)-decimals], "0")
	if whole == "" {
		whole = "0"
	}
	frac := padded[len(padded)-decimals:]
	if len(frac) > fracDigits {
		frac = frac[:fracDigits]
	}
	frac = strings.TrimRight(frac, "0")

	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// cleanupAmount mirrors the tolerance of wallet inputs: surrounding space and
// thousands separators are not meaningful.
func cleanupAmount(amount string) string {
	return strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
}

// isDigits accepts the empty string; callers decide whether empty is legal.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// quote renders an arbitrary user string for an error message without
// letting control characters through.
func quote(s string) string {
	const maxShown = 32
	if len(s) > maxShown {
		s = s[:maxShown] + "..."
	}
	return "\"" + strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '?'
		}
		return r
	}, s) + "\""
}
