package market

import (
	"math/rand"
	"time"
)

// retainEvery keeps one of every N hourly points, bounding series size
// while the walk itself still compounds at hourly resolution.
const retainEvery = 4

// GenerateSeries simulates an hourly multiplicative random walk over
// days*24 hours ending at now, and returns every retainEvery-th point
// (42 points for a 7-day window), oldest first, prices rounded to cents.
//
// Trend sets the total drift across the window (+5%/-5%/+1% for
// UP/DOWN/FLAT), spread evenly per hour. Volatility 0..100 scales to a
// per-step noise amplitude of volatility/100*0.10, with a smaller
// secondary noise term on top. A nil rng gets a time-seeded source;
// tests pin it for reproducible shapes.
func GenerateSeries(base float64, days int, trend Trend, volatility float64, rng *rand.Rand) []PricePoint {
	if days <= 0 {
		days = 7
	}
	if volatility < 0 {
		volatility = 0
	}
	if volatility > 100 {
		volatility = 100
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	hours := days * 24
	driftPerStep := trend.drift() / float64(hours)
	amp := volatility / 100 * 0.10

	end := time.Now().UTC().Truncate(time.Minute)
	start := end.Add(-time.Duration(hours) * time.Hour)

	price := base
	points := make([]PricePoint, 0, hours/retainEvery)
	for h := 1; h <= hours; h++ {
		noise := (rng.Float64()*2 - 1) * amp
		noise += (rng.Float64()*2 - 1) * amp * 0.25
		price *= 1 + driftPerStep + noise
		if price < 0.01 {
			price = 0.01
		}
		if h%retainEvery == 0 {
			points = append(points, PricePoint{
				Timestamp: start.Add(time.Duration(h) * time.Hour),
				Price:     round2(price),
			})
		}
	}
	return points
}
