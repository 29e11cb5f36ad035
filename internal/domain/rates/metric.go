// Package rates holds the pure pieces of the resolution engine: rate-metric
// selection, specialty match patterns, profession restrictions and the
// statistics math. Nothing in this package touches a store or a network.
package rates

import "strings"

// Metric identifies which of the three rate columns a query evaluates.
// Exactly one metric is active per query.
type Metric string

const (
	MetricBillRate  Metric = "bill_rate"
	MetricWeeklyPay Metric = "weekly_pay"
	MetricHourlyPay Metric = "hourly_pay"
)

// ParseMetric maps a rate-type token to a metric. Absent or unrecognized
// tokens fall back to the billing metric.
func ParseMetric(token string) Metric {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "weekly_pay", "weekly pay", "weekly", "pay_package", "gross_weekly":
		return MetricWeeklyPay
	case "hourly_pay", "hourly pay", "hourly", "pay_rate":
		return MetricHourlyPay
	default:
		return MetricBillRate
	}
}

// Column returns the transaction-store column name for the metric
func (m Metric) Column() string {
	return string(m)
}

// Label returns the human-readable name used in responses
func (m Metric) Label() string {
	switch m {
	case MetricWeeklyPay:
		return "weekly pay"
	case MetricHourlyPay:
		return "hourly pay"
	default:
		return "bill rate"
	}
}

// FloorPercentile selects the competitive-floor percentile for the metric.
// Worker compensation markets tolerate a narrower acceptable band than
// billing markets, so pay metrics use a higher floor.
func (m Metric) FloorPercentile() float64 {
	if m == MetricBillRate {
		return 0.25
	}
	return 0.35
}

// Bounds returns the metric's sanity range. Rows outside it are excluded at
// query time; the feed itself is never cleaned.
func (m Metric) Bounds() (min, max float64) {
	switch m {
	case MetricWeeklyPay:
		return 1200, 15000
	case MetricHourlyPay:
		return 10, 250
	default:
		return 30, 800
	}
}
