package adzuna

import "strings"

// supportedCountries lists the Adzuna country endpoints with their salary currency.
var supportedCountries = map[string]string{
	"at": "EUR", // Austria
	"au": "AUD", // Australia
	"be": "EUR", // Belgium
	"br": "BRL", // Brazil
	"ca": "CAD", // Canada
	"ch": "CHF", // Switzerland
	"de": "EUR", // Germany
	"es": "EUR", // Spain
	"fr": "EUR", // France
	"gb": "GBP", // United Kingdom
	"in": "INR", // India
	"it": "EUR", // Italy
	"mx": "MXN", // Mexico
	"nl": "EUR", // Netherlands
	"nz": "NZD", // New Zealand
	"pl": "PLN", // Poland
	"sg": "SGD", // Singapore
	"us": "USD", // United States
	"za": "ZAR", // South Africa
}

var countryAliases = map[string]string{
	"uk": "gb",
}

// NormalizeCountry trims and lower-cases a country code and resolves aliases.
// It does not check support; use IsSupportedCountry for that.
func NormalizeCountry(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if alias, ok := countryAliases[code]; ok {
		return alias
	}
	return code
}

// IsSupportedCountry reports whether Adzuna serves the given country code
func IsSupportedCountry(code string) bool {
	_, ok := supportedCountries[NormalizeCountry(code)]
	return ok
}

// Currency returns the ISO currency Adzuna reports salaries in for a country
func Currency(code string) string {
	return supportedCountries[NormalizeCountry(code)]
}

// SupportedCountries returns the supported codes in stable order
func SupportedCountries() []string {
	return []string{"at", "au", "be", "br", "ca", "ch", "de", "es", "fr", "gb", "in", "it", "mx", "nl", "nz", "pl", "sg", "us", "za"}
}
