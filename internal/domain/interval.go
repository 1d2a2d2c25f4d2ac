package domain

import "github.com/m04kA/SMC-AutoService/pkg/types"

// EndOfDayMinutes конец суток (24:00), используется для праздников без времени окончания
const EndOfDayMinutes = types.MinutesPerDay

// Interval полуоткрытый интервал [Start, End) в минутах от начала суток
type Interval struct {
	Start int
	End   int
}

// Overlaps returns true if the half-open intervals intersect.
// Touching intervals ([09:00,10:00) and [10:00,11:00)) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains returns true if other lies completely inside i
func (i Interval) Contains(other Interval) bool {
	return other.Start >= i.Start && other.End <= i.End
}
