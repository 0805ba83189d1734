// Package locale serves the catalogue of recognition locales. The list is
// derived from the platform's models, cached for an hour, and replaced by a
// fixed list of common locales when the platform cannot be reached.
package locale
