package features

import "strconv"

// CoerceDigits turns free-text numeric columns into numbers by keeping only
// the digit characters. "85%" becomes 85, "90 menit" becomes 90, "N/A" and
// "" become 0. Decimal points are dropped, not honored: "12.5" becomes 125.
// That matches how the stored values were written and read historically, so
// changing it would silently shift every derived average.
func CoerceDigits(raw string) float64 {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	val, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return 0
	}
	return val
}
