// Package orderid генерирует идентификаторы заказов вида
// SVL-<время в base36>-<случайный суффикс>, глобально уникальные
// в пределах коллекции за счёт миллисекундной отметки и суффикса.
package orderid

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const suffixLen = 4

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// New возвращает новый идентификатор заказа, например SVL-M5X2K1QZ-7A3F.
func New() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var b strings.Builder
	for range suffixLen {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}

	return "SVL-" + strings.ToUpper(ts) + "-" + strings.ToUpper(b.String())
}
