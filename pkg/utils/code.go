package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateParticipantCode выдаёт код участника вида "ARC-XXXX-XXXX".
// Код печатается на карточке и служит идентификатором на партнёрских сайтах.
func GenerateParticipantCode() string {
	var sb strings.Builder
	sb.WriteString("ARC-")

	for i := 0; i < 8; i++ {
		if i == 4 {
			sb.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// crypto/rand на этой платформе не отказывает; на всякий случай не падаем
			sb.WriteByte('0')
			continue
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}

	return sb.String()
}
