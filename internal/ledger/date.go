package ledger

import (
	"fmt"
	"regexp"
	"time"
)

const (
	dateLayout  = "20060102"
	monthLayout = "200601"
)

var (
	datePattern  = regexp.MustCompile(`^\d{8}$`)
	monthPattern = regexp.MustCompile(`^\d{6}$`)
)

// ParseDate validates an 8-digit YYYYMMDD calendar day.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, invalid("invalid date %q, use YYYYMMDD", s)
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, invalid("invalid date %q, use YYYYMMDD", s)
	}
	return d, nil
}

// FormatDate renders t as YYYYMMDD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth validates a 6-digit YYYYMM month.
func ParseYearMonth(s string) (YearMonth, error) {
	if !monthPattern.MatchString(s) {
		return YearMonth{}, invalid("invalid month %q, use YYYYMM", s)
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return YearMonth{}, invalid("invalid month %q, use YYYYMM", s)
	}
	return MonthOf(t), nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// FirstDay is the first day of the month as YYYYMMDD.
func (ym YearMonth) FirstDay() string {
	return FormatDate(ym.start())
}

// LastDay is the last day of the month as YYYYMMDD.
func (ym YearMonth) LastDay() string {
	return FormatDate(ym.start().AddDate(0, 1, -1))
}

// Previous is the month before ym.
func (ym YearMonth) Previous() YearMonth {
	return MonthOf(ym.start().AddDate(0, -1, 0))
}

// days lists every day of the month in order.
func (ym YearMonth) days() []string {
	var out []string
	for d := ym.start(); d.Month() == ym.Month; d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out
}
