// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import "time"

// AddReq is the request body for adding a symbol to the watchlist.
type AddReq struct {
	Symbol  string `json:"symbol" binding:"required"`
	Company string `json:"company" binding:"required"`
}

// ActionResult mirrors the mutation outcome on the wire:
// {"ok":true} or {"ok":false,"error":"..."}.
type ActionResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// WatchlistItem is one raw entry in the unenriched watchlist response.
type WatchlistItem struct {
	Symbol  string    `json:"symbol"`
	Company string    `json:"company"`
	AddedAt time.Time `json:"addedAt"`
}

// WatchlistRow is one enriched row in the watchlist response. The derived
// fields are omitted when market data for the symbol was unavailable.
type WatchlistRow struct {
	Symbol          string    `json:"symbol"`
	Company         string    `json:"company"`
	AddedAt         time.Time `json:"addedAt"`
	CurrentPrice    *float64  `json:"currentPrice,omitempty"`
	ChangePercent   *float64  `json:"changePercent,omitempty"`
	PriceFormatted  string    `json:"priceFormatted,omitempty"`
	ChangeFormatted string    `json:"changeFormatted,omitempty"`
	MarketCap       string    `json:"marketCap,omitempty"`
	PERatio         string    `json:"peRatio,omitempty"`
}

// SymbolsResponse is the symbol set returned by the email lookup.
type SymbolsResponse struct {
	Symbols []string `json:"symbols"`
}
