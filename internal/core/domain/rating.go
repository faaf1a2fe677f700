package domain

type Rating struct {
	Count   uint32
	Average float64
}

// Add folds one score into the running mean.
func (r Rating) Add(score float64) Rating {
	count := r.Count + 1
	return Rating{
		Count:   count,
		Average: r.Average + (score-r.Average)/float64(count),
	}
}

type RatingEvent struct {
	LaptopID string  `validate:"required"`
	Score    float64 `validate:"gte=0,lte=10"`
}
