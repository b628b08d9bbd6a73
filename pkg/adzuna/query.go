package adzuna

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
)

const (
	// MaxResultsPerPage is the largest page size Adzuna honours
	MaxResultsPerPage = 50

	defaultPage = 1
)

// Query is a fully-formed request target: endpoint path plus encoded parameters
type Query struct {
	Path   string
	Values url.Values
}

// URL joins the query onto baseURL
func (q Query) URL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, q.Path)
	u.RawQuery = q.Values.Encode()
	return u.String(), nil
}

// BuildSearchQuery translates params into the search endpoint query
func (c *Client) BuildSearchQuery(params SearchParams) (Query, error) {
	if c == nil {
		return Query{}, fmt.Errorf("adzuna: client is nil")
	}

	country := c.country
	if strings.TrimSpace(params.Country) != "" {
		country = NormalizeCountry(params.Country)
	}
	if !IsSupportedCountry(country) {
		return Query{}, fmt.Errorf("%w: %q", ErrUnsupportedCountry, params.Country)
	}

	page := params.Page
	switch {
	case page < 0:
		return Query{}, fmt.Errorf("%w: page must be positive, got %d", ErrInvalidParameter, page)
	case page == 0:
		page = defaultPage
	}

	perPage := params.ResultsPerPage
	switch {
	case perPage < 0:
		return Query{}, fmt.Errorf("%w: results_per_page must be positive, got %d", ErrInvalidParameter, perPage)
	case perPage == 0:
		perPage = c.pageSize
	}
	perPage = ClampResultsPerPage(perPage)

	if params.MaxDaysOld < 0 {
		return Query{}, fmt.Errorf("%w: max_days_old must not be negative", ErrInvalidParameter)
	}

	values := c.credentials()
	values.Set("results_per_page", strconv.Itoa(perPage))
	values.Set("content-type", "application/json")

	setTrimmed(values, "what", params.What)
	setTrimmed(values, "where", params.Where)
	setTrimmed(values, "category", params.Category)
	setTrimmed(values, "sort_by", params.SortBy)

	if params.MaxDaysOld > 0 {
		values.Set("max_days_old", strconv.Itoa(params.MaxDaysOld))
	}
	setFlag(values, "full_time", params.FullTime)
	setFlag(values, "part_time", params.PartTime)
	setFlag(values, "permanent", params.Permanent)
	setFlag(values, "contract", params.Contract)

	return Query{
		Path:   path.Join("/v1", "api", "jobs", country, "search", strconv.Itoa(page)),
		Values: values,
	}, nil
}

// BuildCategoriesQuery builds the metadata query listing categories for a country
func (c *Client) BuildCategoriesQuery(country string) (Query, error) {
	if c == nil {
		return Query{}, fmt.Errorf("adzuna: client is nil")
	}
	if strings.TrimSpace(country) == "" {
		country = c.country
	}
	country = NormalizeCountry(country)
	if !IsSupportedCountry(country) {
		return Query{}, fmt.Errorf("%w: %q", ErrUnsupportedCountry, country)
	}

	values := c.credentials()
	values.Set("content-type", "application/json")

	return Query{
		Path:   path.Join("/v1", "api", "jobs", country, "categories"),
		Values: values,
	}, nil
}

// ParseSearchQuery decodes a search URL produced by BuildSearchQuery.
// Credentials are not returned.
func ParseSearchQuery(u *url.URL) (SearchParams, error) {
	if u == nil {
		return SearchParams{}, fmt.Errorf("adzuna: url is nil")
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] != "search" {
		return SearchParams{}, fmt.Errorf("adzuna: not a search path: %q", u.Path)
	}
	if len(segments) < 3 {
		return SearchParams{}, fmt.Errorf("adzuna: search path missing country: %q", u.Path)
	}

	page, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return SearchParams{}, fmt.Errorf("adzuna: parse page: %w", err)
	}

	values := u.Query()
	params := SearchParams{
		Country:   segments[len(segments)-3],
		Page:      page,
		What:      values.Get("what"),
		Where:     values.Get("where"),
		Category:  values.Get("category"),
		SortBy:    values.Get("sort_by"),
		FullTime:  values.Get("full_time") == "1",
		PartTime:  values.Get("part_time") == "1",
		Permanent: values.Get("permanent") == "1",
		Contract:  values.Get("contract") == "1",
	}

	if v := values.Get("results_per_page"); v != "" {
		if params.ResultsPerPage, err = strconv.Atoi(v); err != nil {
			return SearchParams{}, fmt.Errorf("adzuna: parse results_per_page: %w", err)
		}
	}
	if v := values.Get("max_days_old"); v != "" {
		if params.MaxDaysOld, err = strconv.Atoi(v); err != nil {
			return SearchParams{}, fmt.Errorf("adzuna: parse max_days_old: %w", err)
		}
	}

	return params, nil
}

// ClampResultsPerPage caps n at MaxResultsPerPage
func ClampResultsPerPage(n int) int {
	if n > MaxResultsPerPage {
		return MaxResultsPerPage
	}
	return n
}

func (c *Client) credentials() url.Values {
	values := url.Values{}
	values.Set("app_id", c.appID)
	values.Set("app_key", c.appKey)
	return values
}

func setTrimmed(values url.Values, key, value string) {
	value = strings.Join(strings.Fields(value), " ")
	if value != "" {
		values.Set(key, value)
	}
}

func setFlag(values url.Values, key string, on bool) {
	if on {
		values.Set(key, "1")
	}
}
