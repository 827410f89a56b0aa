// Package dto defines response payloads for the Finnhub REST API.
package dto

// QuoteResponse is the /quote payload. Finnhub uses single-letter keys:
// c = current price, dp = percent change since previous close.
type QuoteResponse struct {
	Current       float64 `json:"c"`
	PercentChange float64 `json:"dp"`
}

// CompanyProfileResponse is the subset of /stock/profile2 we consume.
// Market capitalization is reported in billions of USD.
type CompanyProfileResponse struct {
	MarketCapitalization float64 `json:"marketCapitalization"`
}

// FinancialMetricsResponse is the /stock/metric payload. The metric map mixes
// numbers and strings, so values are decoded loosely and filtered by the
// client.
type FinancialMetricsResponse struct {
	Metric map[string]any `json:"metric"`
}
