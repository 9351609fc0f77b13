// Package models defines the domain types for the stock news bot
package models

import (
	"strings"
	"time"
)

// Market classifies a ticker by the exchange it trades on.
type Market string

const (
	MarketDomestic Market = "KRX"
	MarketNASDAQ   Market = "NASDAQ"
	MarketNYSE     Market = "NYSE"
	MarketUnknown  Market = "UNKNOWN"
)

// IsForeign reports whether the market is a known foreign exchange.
func (m Market) IsForeign() bool {
	return m == MarketNASDAQ || m == MarketNYSE
}

// DomesticCodeWidth is the fixed width of domestic ticker codes.
const DomesticCodeWidth = 6

// IsDomesticCode reports whether the ticker has the shape of a domestic
// code: exactly 6 ASCII digits.
func IsDomesticCode(ticker string) bool {
	if len(ticker) != DomesticCodeWidth {
		return false
	}
	for i := 0; i < len(ticker); i++ {
		if ticker[i] < '0' || ticker[i] > '9' {
			return false
		}
	}
	return true
}

// IsNumeric reports whether the string is non-empty and all ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeTicker canonicalizes a ticker for comparison and storage:
// numeric codes are zero-padded to the domestic width, everything else
// is uppercased.
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(ticker)
	if IsNumeric(ticker) {
		return PadDomesticCode(ticker)
	}
	return strings.ToUpper(ticker)
}

// PadDomesticCode left-pads a numeric code with zeros to the domestic width.
func PadDomesticCode(code string) string {
	for len(code) < DomesticCodeWidth {
		code = "0" + code
	}
	return code
}

// PriceBar is one daily close for a ticker.
type PriceBar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Symbol is one listing entry from the market data provider.
type Symbol struct {
	Code string `json:"Code"`
	Name string `json:"Name"`
}

// StockInfo holds the per-ticker snapshot used by report generation.
// It is only ever built from at least two session closes.
type StockInfo struct {
	Name       string  `json:"name"`
	Ticker     string  `json:"ticker"`
	Close      float64 `json:"close"`
	ChangeRate float64 `json:"change_rate"` // percent vs previous session close
}
