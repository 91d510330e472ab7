package model

import (
	"fmt"
	"sort"
	"time"
)

// Fecha is a calendar date with no time-of-day component. It is the join
// key of every per-source daily table and of every output resolution.
type Fecha struct {
	Year  int
	Month time.Month
	Day   int
}

// NewFecha builds a date from its components.
func NewFecha(year int, month time.Month, day int) Fecha {
	// normalize overflow (e.g. day 0 or 32) through time.Date
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Fecha{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// FechaOf truncates a timestamp to its calendar date.
func FechaOf(t time.Time) Fecha {
	return Fecha{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the date at midnight UTC.
func (f Fecha) Time() time.Time {
	return time.Date(f.Year, f.Month, f.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether f is the zero date.
func (f Fecha) IsZero() bool {
	return f.Year == 0 && f.Month == 0 && f.Day == 0
}

// Before reports whether f is earlier than other.
func (f Fecha) Before(other Fecha) bool {
	if f.Year != other.Year {
		return f.Year < other.Year
	}
	if f.Month != other.Month {
		return f.Month < other.Month
	}
	return f.Day < other.Day
}

// After reports whether f is later than other.
func (f Fecha) After(other Fecha) bool {
	return other.Before(f)
}

// AddDays returns the date n days after f (n may be negative).
func (f Fecha) AddDays(n int) Fecha {
	return FechaOf(f.Time().AddDate(0, 0, n))
}

// Weekday returns the day of the week.
func (f Fecha) Weekday() time.Weekday {
	return f.Time().Weekday()
}

// MonthStart returns the first day of f's month.
func (f Fecha) MonthStart() Fecha {
	return Fecha{Year: f.Year, Month: f.Month, Day: 1}
}

// WeekStart returns the Monday of the week containing f.
func (f Fecha) WeekStart() Fecha {
	wd := int(f.Weekday())
	// time.Weekday counts Sunday as 0; the report week runs Monday-Sunday.
	if wd == 0 {
		wd = 7
	}
	return f.AddDays(-(wd - 1))
}

// String renders the date in ISO form, e.g. "2026-01-05".
func (f Fecha) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", f.Year, int(f.Month), f.Day)
}

// Slash renders the date as dd/mm/yyyy, the pivot day-column label form.
func (f Fecha) Slash() string {
	return fmt.Sprintf("%02d/%02d/%04d", f.Day, int(f.Month), f.Year)
}

// ParseFecha accepts the ISO form produced by String.
func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Fecha{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FechaOf(t), nil
}

// SortFechas orders a date slice ascending in place.
func SortFechas(fechas []Fecha) {
	sort.Slice(fechas, func(i, j int) bool { return fechas[i].Before(fechas[j]) })
}
