// Package slug реализует генерацию URL-совместимых идентификаторов
// публикаций из их заголовков.
package slug

import (
	"strings"
	"unicode"
)

// Make приводит заголовок к нижнему регистру и заменяет все последовательности
// символов, не являющихся латинскими буквами или цифрами, на один дефис.
// Ведущие и замыкающие дефисы отбрасываются.
func Make(title string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
