package metrics

import (
	"sort"
	"sync"
	"time"
)

const maxSamples = 1000

type Metrics struct {
	mutex         sync.RWMutex
	requests      map[string]int64
	outcomes      map[string]int64
	responseTimes []time.Duration
	modelHealthy  bool
	startTime     time.Time
}

type Snapshot struct {
	TotalRequests int64             `json:"total_requests"`
	Uptime        time.Duration     `json:"uptime"`
	Requests      map[string]int64  `json:"requests"`
	Predictions   PredictionMetrics `json:"predictions"`
	ModelHealthy  bool              `json:"model_healthy"`
}

type PredictionMetrics struct {
	Total       int64            `json:"total"`
	Outcomes    map[string]int64 `json:"outcomes"`
	AvgResponse time.Duration    `json:"avg_response"`
	P50Response time.Duration    `json:"p50_response"`
	P95Response time.Duration    `json:"p95_response"`
	P99Response time.Duration    `json:"p99_response"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		requests:  make(map[string]int64),
		outcomes:  make(map[string]int64),
		startTime: time.Now(),
	}
}

func (m *Metrics) IncrementRequests(path string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.requests[path]++
}

func (m *Metrics) RecordPrediction(outcome string, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.outcomes[outcome]++

	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > maxSamples {
		m.responseTimes = m.responseTimes[1:]
	}
}

func (m *Metrics) UpdateModelHealth(healthy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.modelHealthy = healthy
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:       time.Since(m.startTime),
		Requests:     make(map[string]int64, len(m.requests)),
		ModelHealthy: m.modelHealthy,
		Predictions: PredictionMetrics{
			Outcomes: make(map[string]int64, len(m.outcomes)),
		},
	}

	for path, n := range m.requests {
		snap.Requests[path] = n
		snap.TotalRequests += n
	}

	for outcome, n := range m.outcomes {
		snap.Predictions.Outcomes[outcome] = n
		snap.Predictions.Total += n
	}

	if len(m.responseTimes) > 0 {
		sorted := make([]time.Duration, len(m.responseTimes))
		copy(sorted, m.responseTimes)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.Predictions.AvgResponse = average(sorted)
		snap.Predictions.P50Response = percentile(sorted, 0.50)
		snap.Predictions.P95Response = percentile(sorted, 0.95)
		snap.Predictions.P99Response = percentile(sorted, 0.99)
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
