package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText composes accents to NFC and collapses runs of whitespace, so
// "José  Pérez" typed on two different phones is stored identically.
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
