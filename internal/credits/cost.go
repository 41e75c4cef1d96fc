package credits

// Base credit cost per analysis tier.
const (
	BaseCostBasic = 1
	BaseCostPro   = 3
)

// contentUnit is the input size covered by one base-cost multiple.
const contentUnit = 2000

// Cost computes the credit cost of an analysis. The tier's base cost is
// scaled by ceil(contentLength/contentUnit), floored at the base cost.
// Pass contentLength 0 when the input size is unknown.
func Cost(tier string, contentLength int) (int, error) {
	if contentLength < 0 {
		return 0, ErrInvalidLength
	}

	var base int
	switch tier {
	case "basic":
		base = BaseCostBasic
	case "pro":
		base = BaseCostPro
	default:
		return 0, ErrUnknownTier
	}

	units := (contentLength + contentUnit - 1) / contentUnit
	if units < 1 {
		units = 1
	}
	cost := base * units
	if cost < base {
		cost = base
	}
	return cost, nil
}
