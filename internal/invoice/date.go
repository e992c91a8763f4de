package invoice

import (
	"fmt"
	"strings"
	"time"
)

var arabicIndic = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

// FormatDate formats t with two-digit day and month in the convention of lang.
// Unknown languages use the French form.
func FormatDate(lang string, t time.Time) string {
	switch lang {
	case "ar":
		return arabicIndic.Replace(latinDate(lang, t))
	default:
		return latinDate(lang, t)
	}
}

func latinDate(lang string, t time.Time) string {
	y, m, d := t.Date()
	switch lang {
	case "zh":
		return fmt.Sprintf("%04d/%02d/%02d", y, int(m), d)
	case "en":
		return fmt.Sprintf("%02d/%02d/%04d", int(m), d, y)
	default: // ar, fr
		return fmt.Sprintf("%02d/%02d/%04d", d, int(m), y)
	}
}
