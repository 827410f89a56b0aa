package entity

// Quote is the near-real-time price snapshot for a symbol.
type Quote struct {
	Current       float64 // last traded price
	PercentChange float64 // change since previous close, in percent
}

// CompanyProfile carries the slow-changing company data used for display.
// MarketCapitalization is expressed in billions of USD, as delivered by the
// market-data provider.
type CompanyProfile struct {
	MarketCapitalization float64
}

// FinancialMetrics is the aggregate metric map for a symbol. Only numeric
// metrics are retained; the valuation keys of interest are the P/E variants.
type FinancialMetrics struct {
	Metric map[string]float64
}
