package verification

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateCode возвращает код фиксированной длины в верхнем hex регистре.
// Уникальность не проверяется, коллизия на такой длине практически невозможна.
func GenerateCode(length int) string {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибок
		panic(err)
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:length]
}
