// Package career aggregates one player's season ratings into a single
// time-weighted career rating that favors recent form.
package career

import "sort"

// Weighting splits between the recent two-season block and everything
// earlier, with the historical block itself tilted toward its last three
// seasons.
const (
	recentWeight     = 0.70
	historicalWeight = 0.30
	last3Weight      = 0.70
	olderWeight      = 0.30

	// recentSpan is how many trailing seasons count as "recent" and
	// last3Cutoff how far back the favored historical window reaches.
	recentSpan  = 1
	last3Cutoff = 4
)

// SeasonRating pairs a season with its overall rating.
type SeasonRating struct {
	Season int
	Rating float64
}

// Rating is the aggregated career view for one player.
type Rating struct {
	// Weighted favors recent form: 70% recent block, 30% historical.
	Weighted float64
	// Recent is the mean over the recent block, 0 when the block is empty.
	Recent float64
	// Historical is the tiered mean over the pre-recent seasons.
	Historical float64
	// Mean is the plain career rolling mean over all seasons.
	Mean float64
	// Seasons is the number of rows aggregated.
	Seasons int
}

// Aggregate computes the time-weighted career rating as of the given season.
// Input order does not affect the result; seasons are sorted internally.
// An empty input returns the zero Rating.
func Aggregate(seasons []SeasonRating, asOf int) Rating {
	if len(seasons) == 0 {
		return Rating{}
	}

	sorted := make([]SeasonRating, len(seasons))
	copy(sorted, seasons)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Season < sorted[j].Season })

	var recent, last3, older []float64
	sum := 0.0
	for _, s := range sorted {
		sum += s.Rating
		switch {
		case s.Season >= asOf-recentSpan:
			recent = append(recent, s.Rating)
		case s.Season >= asOf-last3Cutoff:
			last3 = append(last3, s.Rating)
		default:
			older = append(older, s.Rating)
		}
	}

	r := Rating{
		Mean:    sum / float64(len(sorted)),
		Seasons: len(sorted),
	}

	rw, hw := 0.0, 0.0
	if len(recent) > 0 {
		r.Recent = mean(recent)
		rw = recentWeight
	}
	switch {
	case len(last3) > 0 && len(older) > 0:
		r.Historical = last3Weight*mean(last3) + olderWeight*mean(older)
		hw = historicalWeight
	case len(last3) > 0:
		r.Historical = mean(last3)
		hw = historicalWeight
	case len(older) > 0:
		r.Historical = mean(older)
		hw = historicalWeight
	}

	switch {
	case rw > 0 && hw > 0:
		r.Weighted = r.Recent*rw + r.Historical*hw
	case rw > 0:
		// No history: all weight shifts to the recent block.
		r.Weighted = r.Recent
	case hw > 0:
		r.Weighted = r.Historical
	default:
		// Degenerate single-row input outside every window.
		r.Weighted = sorted[len(sorted)-1].Rating
	}

	return r
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
