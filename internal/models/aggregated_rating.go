package models

// AggregatedRating is one running (count, sum) cell for a teaching
// assignment and rating parameter. It is the only place rating values
// land: no row anywhere links a student to a value, which is what makes
// the stored state anonymous. Cells are created on first contribution
// and only ever mutated by the atomic fold in the repository.
//
// The mean is always derived; persisting it alongside count and sum
// would just be a second copy that can go stale.
type AggregatedRating struct {
	ID                   uint  `gorm:"primaryKey" json:"id"`
	TeachingAssignmentID uint  `gorm:"not null;uniqueIndex:idx_aggregated_rating_cell" json:"teaching_assignment_id"`
	RatingParameterID    uint  `gorm:"not null;uniqueIndex:idx_aggregated_rating_cell" json:"rating_parameter_id"`
	TotalResponses       int64 `gorm:"not null;default:0" json:"total_responses"`
	RatingSum            int64 `gorm:"not null;default:0" json:"rating_sum"`
}

// HasData reports whether any response has been folded into the cell.
func (a AggregatedRating) HasData() bool {
	return a.TotalResponses > 0
}

// Mean returns the derived average rating. Callers must check HasData
// first; a cell without responses has no mean, not a mean of zero.
func (a AggregatedRating) Mean() float64 {
	if a.TotalResponses == 0 {
		return 0
	}
	return float64(a.RatingSum) / float64(a.TotalResponses)
}
