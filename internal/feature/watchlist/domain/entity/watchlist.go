// Package entity はwatchlistフィーチャーのドメインモデルを定義します。
package entity

import "time"

// WatchlistEntry はユーザーが保存した銘柄（ウォッチリストの1行）を表します。
// (UserID, Symbol) の組は複合ユニークインデックスで一意に保たれ、
// 作成後に更新されることはありません（追加と削除のみ）。
type WatchlistEntry struct {
	ID      uint      `gorm:"primaryKey"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_user_symbol"`
	Symbol  string    `gorm:"size:20;not null;uniqueIndex:idx_user_symbol"`
	Company string    `gorm:"size:255;not null"`
	AddedAt time.Time `gorm:"autoCreateTime"`
}

// EnrichedEntry is a WatchlistEntry augmented with market data at read time.
// It is derived on every read and never persisted. Nil pointers and empty
// strings mark data that could not be fetched; such a row keeps its place in
// the list with base fields only.
type EnrichedEntry struct {
	UserID  uint
	Symbol  string
	Company string
	AddedAt time.Time

	CurrentPrice  *float64
	ChangePercent *float64

	PriceFormatted  string
	ChangeFormatted string
	MarketCap       string
	PERatio         string
}
