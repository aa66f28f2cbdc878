// Package timefmt infers and applies the date/time conventions used by
// free-text chat exports. A format is described by an ordered pair of
// date-field order and clock convention, drawn from a small enumerated
// candidate set. Inference runs once over a sample prefix and the
// resulting descriptor is held immutable for the rest of the parse.
package timefmt

// DateOrder enumerates the orderings of numeric date fields.
type DateOrder int

const (
	OrderUnknown DateOrder = iota

	// OrderDayFirst is day/month/year.
	OrderDayFirst

	// OrderMonthFirst is month/day/year.
	OrderMonthFirst

	// OrderYearMonthDay is year/month/day.
	OrderYearMonthDay

	// OrderYearDayMonth is year/day/month.
	OrderYearDayMonth
)

func (o DateOrder) String() string {
	switch o {
	case OrderDayFirst:
		return "day/month/year"
	case OrderMonthFirst:
		return "month/day/year"
	case OrderYearMonthDay:
		return "year/month/day"
	case OrderYearDayMonth:
		return "year/day/month"
	default:
		return "unknown"
	}
}

// YearFirst reports whether the ordering places the year before the
// day and month fields.
func (o DateOrder) YearFirst() bool {
	return o == OrderYearMonthDay || o == OrderYearDayMonth
}

// Clock enumerates the time-of-day conventions.
type Clock int

const (
	ClockUnknown Clock = iota

	// Clock24 is the 24-hour convention.
	Clock24

	// Clock12 is the 12-hour convention with an AM/PM marker.
	Clock12
)

func (c Clock) String() string {
	switch c {
	case Clock24:
		return "24-hour"
	case Clock12:
		return "12-hour"
	default:
		return "unknown"
	}
}

// Descriptor is a fully determined timestamp format.
type Descriptor struct {
	Order DateOrder
	Clock Clock
}

func (d Descriptor) String() string {
	return d.Order.String() + ", " + d.Clock.String()
}

// Valid reports whether both components of the descriptor are set.
func (d Descriptor) Valid() bool {
	return d.Order != OrderUnknown && d.Clock != ClockUnknown
}
