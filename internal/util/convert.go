// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the orderline application.
package util

import (
	"strconv"
	"strings"
)

// IntToString converts an int to string.
// Uses strconv.Itoa for optimal performance.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// FormatGrouped inserts comma thousands separators into the integer part of
// a plain decimal string ("24407627.30" -> "24,407,627.30"). The input is
// expected to be a canonical decimal string; anything after the first '.'
// is passed through untouched.
func FormatGrouped(s string) string {
	sign := ""
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	grouped := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, intPart[i])
	}

	return sign + string(grouped) + fracPart
}
