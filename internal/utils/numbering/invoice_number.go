// Package numbering produces sequential, human readable invoice numbers of the form PREFIX-0001.
package numbering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "FAC"

const minDigits = 4

// ErrInvalidFormat is returned when the previous invoice number cannot be parsed.
var ErrInvalidFormat = errors.New("invalid invoice number format")

// Next returns the number following last. A nil last yields the first number of the sequence.
// The counter is zero padded to 4 digits and grows beyond that once it exceeds 9999.
func Next(prefix string, last *string) (string, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if last == nil || *last == "" {
		return Format(prefix, 1), nil
	}

	n, err := Parse(*last)
	if err != nil {
		return "", err
	}
	return Format(prefix, n+1), nil
}

// Parse extracts the counter from a PREFIX-digits number.
func Parse(number string) (int, error) {
	idx := strings.LastIndex(number, "-")
	if idx <= 0 || idx == len(number)-1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, number)
	}
	digits := number[idx+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, number)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, number, err)
	}
	return n, nil
}

// Format renders counter n with the given prefix.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s-%0*d", prefix, minDigits, n)
}
