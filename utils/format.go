package utils

import "fmt"

// FormatDuration renders seconds as "12 min" or "1 h 05 min".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := (seconds + 30) / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d h %02d min", minutes/60, minutes%60)
}

// FormatDistance renders meters as "350 m" below one kilometer, "4.2 km" above.
func FormatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
