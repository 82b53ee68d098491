package checkout

import "strings"

// couponTable maps accepted codes to their discount percentage.
var couponTable = map[string]int{
	"HANDLOOM10": 10,
}

// normalizeCoupon canonicalizes user input before lookup.
func normalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
