package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"dinner/internal/pkg/errs"
)

// Travel estimate bounds in minutes. No delivery is assumed to take less
// than the minimum or more than the maximum one way.
const (
	minTravelMinutes = 20
	maxTravelMinutes = 75

	defaultRegionMinutes = 40

	rushHourBuffer    = 12
	offPeakBuffer     = 5
	weekendBuffer     = 8
	rushHourStart     = 16
	rushHourEnd       = 20
	maxDistanceBuffer = 15
)

// regionBaselines maps known district names to a baseline one-way travel
// time from the kitchen. Addresses are matched by substring.
func regionBaselines() map[string]int {
	return map[string]int{
		"강남": 28,
		"강북": 38,
		"서초": 32,
		"송파": 34,
		"관악": 30,
		"마포": 36,
		"용산": 35,
	}
}

// TravelEstimator is a domain service that estimates one-way courier travel
// time for a delivery address at a given time. The estimate is a
// deterministic heuristic: a district baseline adjusted for rush hour,
// weekends and a rough address-length distance proxy, clamped to sane
// bounds. No external routing calls are made.
type TravelEstimator struct{}

// NewTravelEstimator creates a new TravelEstimator instance.
func NewTravelEstimator() TravelEstimator {
	return TravelEstimator{}
}

// EstimateOneWayMinutes estimates the one-way travel time in minutes for
// delivering to address at deliveryTime.
func (e TravelEstimator) EstimateOneWayMinutes(address string, deliveryTime time.Time) (int, error) {
	if address == "" {
		return 0, errs.NewValueIsRequiredError("delivery address")
	}
	if deliveryTime.IsZero() {
		return 0, errs.NewValueIsRequiredError("delivery time")
	}

	minutes := e.regionBaseline(address)
	minutes += e.timeOfDayBuffer(deliveryTime)
	minutes += e.weekendBufferFor(deliveryTime)
	minutes += e.distanceBuffer(address)

	if minutes < minTravelMinutes {
		minutes = minTravelMinutes
	}
	if minutes > maxTravelMinutes {
		minutes = maxTravelMinutes
	}
	return minutes, nil
}

func (e TravelEstimator) regionBaseline(address string) int {
	for region, baseline := range regionBaselines() {
		if strings.Contains(address, region) {
			return baseline
		}
	}
	return defaultRegionMinutes
}

func (e TravelEstimator) timeOfDayBuffer(t time.Time) int {
	hour := t.Hour()
	if hour >= rushHourStart && hour <= rushHourEnd {
		return rushHourBuffer
	}
	return offPeakBuffer
}

func (e TravelEstimator) weekendBufferFor(t time.Time) int {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return weekendBuffer
	default:
		return 0
	}
}

// distanceBuffer derives a rough extra-distance penalty from the address
// length: long addresses tend to name outlying complexes and sub-units.
func (e TravelEstimator) distanceBuffer(address string) int {
	buffer := utf8.RuneCountInString(address)/5 - 10
	if buffer < 0 {
		buffer = 0
	}
	if buffer > maxDistanceBuffer {
		buffer = maxDistanceBuffer
	}
	return buffer
}
