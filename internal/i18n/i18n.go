// Package i18n holds the locale tables and formatting rules shared by the
// message templates. All functions are pure; other systems parse the output,
// so the formats here are contracts, not presentation choices.
package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Locale string

const (
	KoKR Locale = "ko_KR"
	EnUS Locale = "en_US"
	ThTH Locale = "th_TH"
)

// Parse normalizes a language tag to a supported Locale, defaulting to ko_KR
// (the platform's primary market).
func Parse(s string) Locale {
	switch Locale(strings.TrimSpace(s)) {
	case EnUS:
		return EnUS
	case ThTH:
		return ThTH
	default:
		return KoKR
	}
}

func Supported(s string) bool {
	l := Locale(strings.TrimSpace(s))
	return l == KoKR || l == EnUS || l == ThTH
}

// Weekday index 0=Sunday..6=Saturday, matching time.Weekday.
var dayNames = map[Locale][7]string{
	KoKR: {"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"},
	EnUS: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	ThTH: {"วันอาทิตย์", "วันจันทร์", "วันอังคาร", "วันพุธ", "วันพฤหัสบดี", "วันศุกร์", "วันเสาร์"},
}

// Gregorian months indexed 0-11. Thai dates keep the Gregorian year.
var thaiMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

func DayOfWeek(l Locale, t time.Time) string {
	names, ok := dayNames[l]
	if !ok {
		names = dayNames[KoKR]
	}
	return names[int(t.Weekday())]
}

// ShortDate renders the compact date form: ko 2025.12.10, en 12/10/2025,
// th 29/11/2025.
func ShortDate(l Locale, t time.Time) string {
	switch l {
	case EnUS:
		return t.Format("01/02/2006")
	case ThTH:
		return t.Format("02/01/2006")
	default:
		return t.Format("2006.01.02")
	}
}

// LongDate renders the long-form date used for deadlines: ko 2025년 12월 1일,
// en December 1, 2025, th 1 ธันวาคม 2025. Month and day are not zero-padded.
func LongDate(l Locale, t time.Time) string {
	switch l {
	case EnUS:
		return fmt.Sprintf("%s %d, %d", t.Month().String(), t.Day(), t.Year())
	case ThTH:
		return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[int(t.Month())-1], t.Year())
	default:
		return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
	}
}

// FormatAmount applies the currency symbol rules: USD gets two-decimal fixed
// notation, KRW and THB a symbol with grouped digits, anything else the bare
// number followed by its code.
func FormatAmount(amount int64, currency string) string {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "USD":
		return fmt.Sprintf("$%d.00", amount)
	case "KRW":
		return "₩" + groupDigits(amount)
	case "THB":
		return "฿" + groupDigits(amount)
	default:
		return fmt.Sprintf("%d %s", amount, currency)
	}
}

// groupDigits inserts comma thousands separators.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
