// Package catalog provides the in-memory symbol catalog.
//
// The catalog is built once at startup from the provider's bulk listings
// and is read-only afterwards. A failed listing fetch degrades to an
// empty catalog: classification answers Unknown and resolution falls
// through to the foreign-ticker path. That is a supported operating mode
// with reduced disambiguation quality, never an error.
package catalog

import (
	"context"
	"strings"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// Catalog implements interfaces.SymbolCatalog.
type Catalog struct {
	// domestic listing, in the order the provider returned it. Search
	// iterates this slice so candidate order is stable across calls.
	domestic []models.Symbol
	byCode   map[string]string // code -> name
	byName   map[string]string // exact name -> code

	foreign      map[string]models.Market // uppercase symbol -> exchange
	foreignNames map[string]string        // uppercase symbol -> listed name
}

// New builds a catalog from a domestic listing and per-exchange foreign
// listings. Either input may be empty. Foreign names feed display
// lookups only; name-based resolution stays domestic.
func New(domestic []models.Symbol, foreign map[models.Market][]models.Symbol) *Catalog {
	c := &Catalog{
		byCode:       make(map[string]string, len(domestic)),
		byName:       make(map[string]string, len(domestic)),
		foreign:      make(map[string]models.Market),
		foreignNames: make(map[string]string),
	}

	for _, sym := range domestic {
		code := models.NormalizeTicker(sym.Code)
		if !models.IsDomesticCode(code) || sym.Name == "" {
			continue
		}
		if _, dup := c.byCode[code]; dup {
			continue
		}
		c.domestic = append(c.domestic, models.Symbol{Code: code, Name: sym.Name})
		c.byCode[code] = sym.Name
		if _, dup := c.byName[sym.Name]; !dup {
			c.byName[sym.Name] = code
		}
	}

	for market, symbols := range foreign {
		for _, sym := range symbols {
			code := strings.ToUpper(strings.TrimSpace(sym.Code))
			if code == "" {
				continue
			}
			if _, dup := c.foreign[code]; dup {
				continue
			}
			c.foreign[code] = market
			if sym.Name != "" {
				c.foreignNames[code] = sym.Name
			}
		}
	}

	return c
}

// Build fetches the listings and constructs the catalog. Fetch failures
// are logged and skipped: the result may be partially or fully empty.
func Build(ctx context.Context, client interfaces.MarketDataClient, cfg common.CatalogConfig, logger *common.Logger) *Catalog {
	var domestic []models.Symbol
	foreign := make(map[models.Market][]models.Symbol)

	if client != nil {
		listing, err := client.GetExchangeSymbols(ctx, cfg.DomesticExchange)
		if err != nil {
			logger.Warn().Err(err).Str("exchange", cfg.DomesticExchange).
				Msg("Domestic listing unavailable: catalog degrades to empty")
		} else {
			domestic = listing
		}

		for _, exchange := range cfg.ForeignExchanges {
			listing, err := client.GetExchangeSymbols(ctx, exchange)
			if err != nil {
				logger.Warn().Err(err).Str("exchange", exchange).Msg("Foreign listing unavailable")
				continue
			}
			foreign[models.Market(exchange)] = listing
		}
	}

	c := New(domestic, foreign)
	logger.Info().
		Int("domestic", len(c.domestic)).
		Int("foreign", len(c.foreign)).
		Msg("Symbol catalog built")
	return c
}

// Classify returns the market a ticker belongs to, or MarketUnknown.
func (c *Catalog) Classify(ticker string) models.Market {
	ticker = models.NormalizeTicker(ticker)
	if _, ok := c.byCode[ticker]; ok {
		return models.MarketDomestic
	}
	if market, ok := c.foreign[ticker]; ok {
		return market
	}
	return models.MarketUnknown
}

// NameFor returns the listed name for a domestic code or foreign symbol.
func (c *Catalog) NameFor(code string) (string, bool) {
	code = models.NormalizeTicker(code)
	if name, ok := c.byCode[code]; ok {
		return name, true
	}
	name, ok := c.foreignNames[code]
	return name, ok
}

// CodeForName returns the code for an exact domestic name.
func (c *Catalog) CodeForName(name string) (string, bool) {
	code, ok := c.byName[name]
	return code, ok
}

// Search returns all (name, code) pairs whose name contains text, in
// listing order. The order is part of the contract: callers show the
// candidates to users for disambiguation, so it must be deterministic.
func (c *Catalog) Search(text string) []models.Candidate {
	if text == "" {
		return nil
	}

	var matches []models.Candidate
	for _, sym := range c.domestic {
		if strings.Contains(sym.Name, text) {
			matches = append(matches, models.Candidate{Name: sym.Name, Code: sym.Code})
		}
	}
	return matches
}

// Empty reports whether the catalog loaded no domestic listing.
func (c *Catalog) Empty() bool {
	return len(c.domestic) == 0
}

// Ensure Catalog implements SymbolCatalog
var _ interfaces.SymbolCatalog = (*Catalog)(nil)
