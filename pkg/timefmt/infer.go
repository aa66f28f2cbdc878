package timefmt

// DefaultSampleSize is the number of timestamp tokens examined during
// inference when no override is given.
const DefaultSampleSize = 100

// Inferrer determines the date/time format of an export from a sample
// of its timestamp tokens.
type Inferrer struct {
	sampleSize int
}

// Option configures the Inferrer.
type Option func(*Inferrer)

// WithSampleSize sets the number of tokens to sample (default 100).
func WithSampleSize(n int) Option {
	return func(inf *Inferrer) {
		if n > 0 {
			inf.sampleSize = n
		}
	}
}

// NewInferrer creates an Inferrer with default settings.
func NewInferrer(opts ...Option) *Inferrer {
	inf := &Inferrer{sampleSize: DefaultSampleSize}
	for _, opt := range opts {
		opt(inf)
	}
	return inf
}

// Infer examines up to the configured number of timestamp tokens and
// returns the single consistent descriptor.
//
// The candidate set is fixed: year-first tokens (leading four-digit
// field) are year/month/day vs year/day/month; all others are
// day/month/year vs month/day/year. Candidates are eliminated by
// field-value constraints. If more than one candidate survives the
// full sample the result is an AmbiguousFormatError, never a silent
// default; if none survive, a NoMatchError naming the offending token.
func (inf *Inferrer) Infer(tokens []string) (Descriptor, error) {
	if len(tokens) > inf.sampleSize {
		tokens = tokens[:inf.sampleSize]
	}
	if len(tokens) == 0 {
		return Descriptor{}, &NoMatchError{Line: ""}
	}

	clock := Clock24
	yearFirst := false
	candidates := []DateOrder(nil)

	lastEliminator := ""
	for i, token := range tokens {
		nums, meridiem, err := splitToken(token)
		if err != nil || len(nums) < 3 {
			return Descriptor{}, &NoMatchError{Line: token}
		}
		if meridiem != "" {
			clock = Clock12
		}

		if i == 0 {
			yearFirst = nums[0] >= 100
			if yearFirst {
				candidates = []DateOrder{OrderYearMonthDay, OrderYearDayMonth}
			} else {
				candidates = []DateOrder{OrderDayFirst, OrderMonthFirst}
			}
		}

		// The two fields whose roles are in question.
		a, b := nums[0], nums[1]
		if yearFirst {
			a, b = nums[1], nums[2]
		}

		survivors := candidates[:0:0]
		for _, order := range candidates {
			if satisfies(order, a, b) {
				survivors = append(survivors, order)
			}
		}
		if len(survivors) < len(candidates) {
			lastEliminator = token
		}
		candidates = survivors
		if len(candidates) == 0 {
			return Descriptor{}, &NoMatchError{Line: lastEliminator}
		}
		if len(candidates) == 1 {
			break
		}
	}

	if len(candidates) > 1 {
		descs := make([]Descriptor, len(candidates))
		for i, order := range candidates {
			descs[i] = Descriptor{Order: order, Clock: clock}
		}
		return Descriptor{}, &AmbiguousFormatError{Candidates: descs}
	}

	return Descriptor{Order: candidates[0], Clock: clock}, nil
}

// satisfies reports whether fields a and b are consistent with the
// roles the ordering assigns them.
func satisfies(order DateOrder, a, b int) bool {
	switch order {
	case OrderDayFirst, OrderYearDayMonth:
		return a >= 1 && a <= 31 && b >= 1 && b <= 12
	case OrderMonthFirst, OrderYearMonthDay:
		return a >= 1 && a <= 12 && b >= 1 && b <= 31
	default:
		return false
	}
}

// Validate checks a caller-supplied descriptor override against the
// first timestamp token of the export. An override bypasses inference
// entirely and is validated only by successfully parsing that token.
func Validate(d Descriptor, firstToken string) error {
	_, err := Parse(firstToken, d)
	return err
}
