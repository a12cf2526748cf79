package utils

import "time"

// ISOLayout - UTC с миллисекундами и суффиксом Z.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Clock - источник текущего времени; в тестах подменяется.
type Clock func() time.Time

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

func parseISO(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC().Truncate(time.Millisecond), true
}

// NextStamp возвращает метку updatedAt: не раньше createdAt и строго позже prev.
// Нечитаемые метки (например, после импорта) не учитываются.
func NextStamp(now time.Time, createdAt, prev string) string {
	stamp := now.UTC().Truncate(time.Millisecond)
	if c, ok := parseISO(createdAt); ok && stamp.Before(c) {
		stamp = c
	}
	if p, ok := parseISO(prev); ok && !stamp.After(p) {
		stamp = p.Add(time.Millisecond)
	}
	return FormatISO(stamp)
}
