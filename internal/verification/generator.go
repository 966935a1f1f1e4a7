// Package verification генерация одноразовых кодов подтверждения бронирования
package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/m04kA/LSB-BookingService/internal/domain"
)

// Generator генерирует одноразовые числовые коды
type Generator struct{}

// NewGenerator создает новый генератор кодов
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate возвращает случайный 4-значный числовой код ("0000".."9999")
// Использует crypto/rand для равномерного распределения
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < domain.VerificationCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("verification: crypto rand failed: %w", err)
	}

	return fmt.Sprintf("%0*d", domain.VerificationCodeLength, n.Int64()), nil
}
