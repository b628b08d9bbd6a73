package tools

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/adzuna"
)

const countriesURI = "adzuna://countries"

// CountryInfo describes one supported search country
type CountryInfo struct {
	Code     string `json:"code"`
	Currency string `json:"currency"`
}

// WithCountriesResource exposes the supported country codes as a resource
func WithCountriesResource() Option {
	return func(reg *registry) {
		reg.add(func(reg *registry) {
			reg.server.AddResource(&sdkmcp.Resource{
				URI:         countriesURI,
				Name:        "countries",
				Description: "Country codes accepted by the search tools, with the currency salaries are reported in",
				MIMEType:    "application/json",
			}, readCountries)
		})
	}
}

func readCountries(_ context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(SupportedCountries(), "", "  ")
	if err != nil {
		return nil, err
	}
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{URI: countriesURI, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}

// SupportedCountries lists every country the search tools accept
func SupportedCountries() []CountryInfo {
	codes := adzuna.SupportedCountries()
	out := make([]CountryInfo, 0, len(codes))
	for _, code := range codes {
		out = append(out, CountryInfo{Code: code, Currency: adzuna.Currency(code)})
	}
	return out
}
