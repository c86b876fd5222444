package session

import (
	"math"
	"sort"

	"github.com/verte-zerg/thok/internal/model"
)

// charsPerWord is the conventional word length used for speed figures.
const charsPerWord = 5.0

// Bucket counts correct keystrokes that landed in one second of the session.
type Bucket struct {
	Second float64
	Count  int
}

// BucketCorrect groups correct-keystroke offsets (seconds since start) into
// whole-second buckets ordered by time.
//
// An offset of zero or below one second goes to second 1. Offsets whose
// ceiling fits within the whole seconds elapsed go to that ceiling. Anything
// later is clamped to the raw elapsed value, which is the trailing partial
// second.
func BucketCorrect(offsets []float64, elapsedSecs float64) []Bucket {
	limit := math.Floor(elapsedSecs)
	counts := map[float64]int{}
	for _, off := range offsets {
		if off < 0 {
			off = 0
		}
		var second float64
		switch {
		case off == 0:
			second = 1
		case math.Ceil(off) <= limit:
			if off > 0 && off < 1 {
				second = 1
			} else {
				second = math.Ceil(off)
			}
		default:
			second = elapsedSecs
		}
		counts[second]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for second, count := range counts {
		buckets = append(buckets, Bucket{Second: second, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Second < buckets[j].Second
	})
	return buckets
}

// Consistency is the population standard deviation of bucket counts,
// leaving out the final, possibly partial, bucket.
func Consistency(buckets []Bucket) float64 {
	if len(buckets) < 2 {
		return 0
	}
	values := make([]float64, 0, len(buckets)-1)
	for _, b := range buckets[:len(buckets)-1] {
		values = append(values, float64(b.Count))
	}
	return stdDev(values)
}

// SpeedOverTime emits the cumulative average speed at every bucket.
func SpeedOverTime(buckets []Bucket) []model.Sample {
	samples := make([]model.Sample, 0, len(buckets))
	total := 0.0
	for _, b := range buckets {
		total += float64(b.Count)
		samples = append(samples, model.Sample{
			Second: b.Second,
			WPM:    ((60.0 / b.Second) * total) / charsPerWord,
		})
	}
	return samples
}

// RawSpeed emits the speed typed within each bucket alone.
func RawSpeed(buckets []Bucket) []model.Sample {
	samples := make([]model.Sample, 0, len(buckets))
	prev := 0.0
	for _, b := range buckets {
		width := b.Second - prev
		prev = b.Second
		if width <= 0 {
			continue
		}
		samples = append(samples, model.Sample{
			Second: b.Second,
			WPM:    (float64(b.Count) / charsPerWord) * (60.0 / width),
		})
	}
	return samples
}

// Accuracy returns the rounded percentage of correct keystrokes.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct) / float64(total) * 100.0)
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
