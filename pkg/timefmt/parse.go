package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	fieldPattern    = regexp.MustCompile(`\d+`)
	meridiemPattern = regexp.MustCompile(`(?i)\b([ap])\.?\s*m\.?`)
)

// splitToken breaks a raw timestamp token into its numeric fields and
// an optional meridiem marker ("a", "p", or "").
func splitToken(token string) ([]int, string, error) {
	raw := fieldPattern.FindAllString(token, -1)
	nums := make([]int, len(raw))
	for i, r := range raw {
		n, err := strconv.Atoi(r)
		if err != nil {
			return nil, "", fmt.Errorf("timefmt: field %q: %w", r, err)
		}
		nums[i] = n
	}

	meridiem := ""
	if m := meridiemPattern.FindStringSubmatch(token); m != nil {
		switch m[1] {
		case "a", "A":
			meridiem = "a"
		case "p", "P":
			meridiem = "p"
		}
	}
	return nums, meridiem, nil
}

// Parse converts a raw timestamp token (e.g. "01/02/20, 14:05" or
// "[2020-02-01, 2:05:07 PM]") into a point in time, applying the given
// descriptor. The result carries no zone offset; the wall-clock value
// is kept as written.
func Parse(token string, d Descriptor) (time.Time, error) {
	if !d.Valid() {
		return time.Time{}, fmt.Errorf("timefmt: incomplete descriptor %v", d)
	}

	nums, meridiem, err := splitToken(token)
	if err != nil {
		return time.Time{}, err
	}
	if len(nums) < 5 {
		return time.Time{}, fmt.Errorf("timefmt: timestamp %q has %d numeric fields, need at least 5", token, len(nums))
	}

	var year, month, day int
	switch d.Order {
	case OrderDayFirst:
		day, month, year = nums[0], nums[1], nums[2]
	case OrderMonthFirst:
		month, day, year = nums[0], nums[1], nums[2]
	case OrderYearMonthDay:
		year, month, day = nums[0], nums[1], nums[2]
	case OrderYearDayMonth:
		year, day, month = nums[0], nums[1], nums[2]
	}
	if year < 100 {
		// Two-digit years: all supported platforms postdate 2000.
		year += 2000
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("timefmt: month %d out of range in %q", month, token)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("timefmt: day %d out of range in %q", day, token)
	}

	hour, minute := nums[3], nums[4]
	second := 0
	if len(nums) >= 6 {
		second = nums[5]
	}

	switch d.Clock {
	case Clock12:
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("timefmt: hour %d out of range for 12-hour clock in %q", hour, token)
		}
		if meridiem == "p" && hour < 12 {
			hour += 12
		}
		if meridiem == "a" && hour == 12 {
			hour = 0
		}
	case Clock24:
		if meridiem != "" {
			return time.Time{}, fmt.Errorf("timefmt: meridiem marker in %q contradicts 24-hour clock", token)
		}
		if hour > 23 {
			return time.Time{}, fmt.Errorf("timefmt: hour %d out of range in %q", hour, token)
		}
	}
	if minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("timefmt: time of day out of range in %q", token)
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}
