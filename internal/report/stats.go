package report

import (
	"github.com/montanaflynn/stats"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// Summary describes the order totals of one results view.
type Summary struct {
	Count  int
	Sum    float64
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Describe summarizes the totals of orders. An empty view yields a zero
// Summary.
func Describe(orders []*types.ProcessedOrder) (Summary, error) {
	summary := Summary{Count: len(orders)}
	if len(orders) == 0 {
		return summary, nil
	}

	data := make(stats.Float64Data, len(orders))
	for i, order := range orders {
		data[i] = order.TotalAmount.InexactFloat64()
	}

	var err error
	if summary.Sum, err = stats.Sum(data); err != nil {
		return summary, err
	}
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}

	return summary, nil
}
