package utils

import (
	"regexp"
	"strings"
)

func regexpQuote(s string) string {
	return regexp.QuoteMeta(s)
}

// NormalizeEmail lowercases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
