package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText recorta espacios y lleva el texto a forma NFC, de modo que
// "José" escrito con tilde combinada y con tilde precompuesta se almacenen igual.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
