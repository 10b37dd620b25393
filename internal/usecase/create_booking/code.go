package create_booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newBookingCode генерирует публичный код бронирования вида "C-ALMA-K3X9A7F2":
// последние 4 знака timestamp в base36 плюс 4 случайных знака, в верхнем регистре.
// Формат стабилен, на него завязаны квитанции и письма.
func newBookingCode(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	if len(ts) > 4 {
		ts = ts[len(ts)-4:]
	}

	random := make([]byte, 4)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range random {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand недоступен только при деградации системного источника
			// энтропии, подставляем детерминированный остаток от времени
			random[i] = codeAlphabet[now.UnixNano()%int64(len(codeAlphabet))]
			continue
		}
		random[i] = codeAlphabet[n.Int64()]
	}

	return fmt.Sprintf("%s-%s%s", domain.BookingCodePrefix, strings.ToUpper(ts), strings.ToUpper(string(random)))
}
