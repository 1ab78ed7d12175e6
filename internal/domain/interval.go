package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ChargingService/pkg/types"
)

// TimeRange полуоткрытый интервал времени внутри дня: [Start, End)
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет формат границ и что Start строго раньше End
func (r TimeRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("interval bounds are required")
	}
	if err := r.Start.Validate(); err != nil {
		return err
	}
	// "24:00" допустим только как правая граница
	if r.End != types.TimeString("24:00") {
		if err := r.End.Validate(); err != nil {
			return err
		}
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("interval start %s must be before end %s", r.Start, r.End)
	}
	return nil
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// [a,b) и [c,d) пересекаются тогда и только тогда, когда a < d && c < b.
// Граничащие интервалы (b == c) НЕ пересекаются.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Within проверяет, что интервал целиком лежит внутри outer
func (r TimeRange) Within(outer TimeRange) bool {
	return !r.Start.IsBefore(outer.Start) && !outer.End.IsBefore(r.End)
}

// DurationMinutes возвращает длину интервала в минутах
func (r TimeRange) DurationMinutes() (int, error) {
	start, err := r.Start.Minutes()
	if err != nil {
		return 0, err
	}

	var end int
	if r.End == types.TimeString("24:00") {
		end = 24 * 60
	} else {
		end, err = r.End.Minutes()
		if err != nil {
			return 0, err
		}
	}

	return end - start, nil
}
