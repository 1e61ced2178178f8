package utils

import (
	"math"
	"strconv"
	"strings"
)

// EnFormat renders x with comma thousands separators and a dot decimal point,
// e.g. 1234567.891 -> "1,234,567.89".
func EnFormat(x float64, decimals int) string {
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	if decimals < 0 {
		decimals = 0
	}

	s := strconv.FormatFloat(x, 'f', decimals, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	return sign + groupThousands(intPart, ',') + frac
}

// SwapSeparators converts "1,234.5" style text into "1.234,5".
func SwapSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',':
			return '.'
		case '.':
			return ','
		}
		return r
	}, s)
}

// DeFormat formats a number in German notation: 1234567.89 -> "1.234.567,89".
func DeFormat(x float64, decimals int) string {
	return SwapSeparators(EnFormat(x, decimals))
}

// DeFormatInt formats a count in German notation: 1234 -> "1.234".
func DeFormatInt(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupThousands(s[1:], '.')
	}
	return groupThousands(s, '.')
}

func groupThousands(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
