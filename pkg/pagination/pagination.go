package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

// Params holds skip/limit pagination inputs from controllers.
type Params struct {
	Skip  int
	Limit int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeSkip clamps negative offsets to zero.
func NormalizeSkip(skip int) int {
	if skip < 0 {
		return 0
	}
	return skip
}

// Normalize returns a copy of the params with both fields clamped.
func Normalize(p Params) Params {
	return Params{
		Skip:  NormalizeSkip(p.Skip),
		Limit: NormalizeLimit(p.Limit),
	}
}
