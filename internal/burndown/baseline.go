package burndown

import "github.com/alexanderramin/sprintburn/internal/domain"

// SumBaselines folds item baselines into sprint-wide totals.
func SumBaselines(baselines ...domain.ItemBaseline) domain.BaselineTotal {
	var total domain.BaselineTotal
	for _, b := range baselines {
		total = total.Add(b)
	}
	return total
}
