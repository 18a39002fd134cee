package utils

import (
	"errors"
	"strings"
	"time"
)

// ClosingDateLayout: ngày/tháng/năm, chấp nhận cả "5/3/2030" và "05/03/2030"
const ClosingDateLayout = "2/1/2006"

var ErrInvalidDate = errors.New("ngày không đúng định dạng ngày/tháng/năm")

// ParseClosingDate chuyển "day/month/year" thành 00:00 giờ địa phương (loc) của ngày đó.
func ParseClosingDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(ClosingDateLayout, raw, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// IsClosingDate dùng cho validator tag "dmy"
func IsClosingDate(raw string) bool {
	_, err := ParseClosingDate(raw, time.UTC)
	return err == nil
}
