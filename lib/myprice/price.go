// Package myprice handles prices the way the partner platform transports them: as decimal
// text in the single storefront currency.
package myprice

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Parse reads the longest numeric prefix of text, so "12.50 USD" yields 12.5.
// Text without a numeric prefix yields NaN; callers decide what NaN means.
func Parse(text string) float64 {
	trimmed := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(trimmed, "Infinity"), strings.HasPrefix(trimmed, "+Infinity"):
		return math.Inf(1)
	case strings.HasPrefix(trimmed, "-Infinity"):
		return math.Inf(-1)
	}

	prefix := numericPrefix.FindString(trimmed)
	if prefix == "" {
		return math.NaN()
	}

	// out-of-range prefixes come back as ±Inf
	value, _ := strconv.ParseFloat(prefix, 64)
	return value
}

// Format renders a price text with two decimals.
func Format(text string) string {
	return FormatAmount(Parse(text))
}

func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
