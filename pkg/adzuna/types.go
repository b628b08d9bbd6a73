package adzuna

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	PageSize   int
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// SearchParams describe a job search request.
// Zero values mean "not set"; Page and ResultsPerPage fall back to defaults.
type SearchParams struct {
	What           string
	Where          string
	Country        string
	Page           int
	ResultsPerPage int
	Category       string
	SortBy         string
	MaxDaysOld     int
	FullTime       bool
	PartTime       bool
	Permanent      bool
	Contract       bool
}

// SearchPage is one decoded page of search results
type SearchPage struct {
	Count int
	Mean  float64
	Jobs  []Job
}

// Category is a job category tag as listed by the categories endpoint
type Category struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

type jobSearchResponse struct {
	Count   int           `json:"count"`
	Results *[]jobPosting `json:"results"`
	Mean    float64       `json:"mean"`
}

type categoriesResponse struct {
	Results *[]Category `json:"results"`
}

type jobPosting struct {
	ID                flexString      `json:"id"`
	Title             string          `json:"title"`
	Company           companySummary  `json:"company"`
	Location          locationSummary `json:"location"`
	Description       string          `json:"description"`
	Created           string          `json:"created"`
	RedirectURL       string          `json:"redirect_url"`
	ContractType      string          `json:"contract_type"`
	ContractTime      string          `json:"contract_time"`
	Category          categorySummary `json:"category"`
	SalaryMin         *float64        `json:"salary_min"`
	SalaryMax         *float64        `json:"salary_max"`
	SalaryIsPredicted flexString      `json:"salary_is_predicted"`
}

type companySummary struct {
	DisplayName string `json:"display_name"`
}

type locationSummary struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

type categorySummary struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// flexString accepts both JSON strings and numbers; Adzuna is not consistent about ids
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Job represents a normalized Adzuna job posting.
// Empty strings and nil pointers mean the provider omitted the field.
type Job struct {
	ID              string
	Title           string
	CompanyName     string
	Location        string
	Category        string
	CategoryTag     string
	URL             string
	Description     string
	ContractType    string
	ContractTime    string
	Remote          bool
	IsInternship    bool
	PostedAt        time.Time
	PostedAtRaw     string
	SalaryMin       *float64
	SalaryMax       *float64
	SalaryPredicted bool
}

func (f flexString) bool() bool {
	b, err := strconv.ParseBool(string(f))
	return err == nil && b
}
