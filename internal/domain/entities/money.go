package entities

import (
	"strconv"
)

// CurrencyNGN is the only currency the facility charges in
const CurrencyNGN = "NGN"

// FormatNaira renders whole naira with thousands separators, e.g. ₦25,000
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + "₦" + string(out)
}
