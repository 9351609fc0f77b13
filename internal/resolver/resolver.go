// Package resolver turns raw user text into a canonical ticker.
package resolver

import (
	"strings"

	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// Resolver resolves free-text input against the symbol catalog.
// It is pure: no I/O beyond the in-memory catalog, idempotent, and
// side-effect-free.
type Resolver struct {
	catalog interfaces.SymbolCatalog
}

// New creates a resolver backed by the given catalog.
func New(catalog interfaces.SymbolCatalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve canonicalizes raw user text.
//
// Numeric input of any length is treated as a domestic code and
// zero-padded, even when the catalog has no entry for it. Whether such
// a code actually exists is the gateway's problem, not the resolver's.
// Name matching applies only when a domestic listing is loaded: an exact
// name wins outright, a single substring match resolves, multiple
// matches come back Ambiguous in catalog order. Anything else is taken
// as a foreign ticker and uppercased, with no display name.
func (r *Resolver) Resolve(text string) models.Resolution {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Resolution{Status: models.Unresolved}
	}

	if models.IsNumeric(text) {
		code := models.PadDomesticCode(text)
		name, _ := r.catalog.NameFor(code)
		return models.Resolution{Status: models.Resolved, Ticker: code, Name: name}
	}

	if !r.catalog.Empty() {
		if code, ok := r.catalog.CodeForName(text); ok {
			return models.Resolution{Status: models.Resolved, Ticker: code, Name: text}
		}

		matches := r.catalog.Search(text)
		switch len(matches) {
		case 0:
			// fall through to the foreign-ticker path
		case 1:
			return models.Resolution{Status: models.Resolved, Ticker: matches[0].Code, Name: matches[0].Name}
		default:
			return models.Resolution{Status: models.Ambiguous, Candidates: matches}
		}
	}

	return models.Resolution{Status: models.Resolved, Ticker: strings.ToUpper(text)}
}
