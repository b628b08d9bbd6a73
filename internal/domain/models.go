package domain

import (
	"time"
)

// Unavailable marks a listing field the provider did not supply
const Unavailable = "unavailable"

// Operation names the tool-level search flavour a request belongs to
type Operation string

const (
	OpSearchJobs        Operation = "search_jobs"
	OpSearchInternships Operation = "search_internships"
	OpSearchCompanyJobs Operation = "search_company_jobs"
	OpGetJobCategories  Operation = "get_job_categories"
	OpSearchRemoteJobs  Operation = "search_remote_jobs"
)

// SearchRequest is the per-call search input.
// It is created for one invocation and discarded when the call returns.
type SearchRequest struct {
	Keywords       string `json:"keywords"`
	Location       string `json:"location,omitempty"`
	Country        string `json:"country" validate:"required,len=2,alpha"`
	Page           int    `json:"page" validate:"min=1"`
	ResultsPerPage int    `json:"results_per_page" validate:"min=1,max=50"`
	Company        string `json:"company,omitempty"`
	Category       string `json:"category,omitempty"`
	SortBy         string `json:"sort_by,omitempty" validate:"omitempty,oneof=default hybrid date salary relevance"`
	MaxDaysOld     int    `json:"max_days_old,omitempty" validate:"min=0"`
	ContractTime   string `json:"contract_time,omitempty" validate:"omitempty,oneof=full_time part_time"`
	ContractType   string `json:"contract_type,omitempty" validate:"omitempty,oneof=permanent contract"`
}

// JobListing is the uniform listing shape returned to callers.
// Optional fields carry Unavailable instead of being omitted.
type JobListing struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Category     string `json:"category"`
	SalaryMin    string `json:"salary_min"`
	SalaryMax    string `json:"salary_max"`
	Salary       string `json:"salary"`
	ContractType string `json:"contract_type"`
	ContractTime string `json:"contract_time"`
	URL          string `json:"url"`
	CreatedDate  string `json:"created_date"`
	Description  string `json:"description"`
	Remote       bool   `json:"remote"`
	IsInternship bool   `json:"is_internship"`
	Source       string `json:"source"`
}

// Category is one provider job category
type Category struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// SearchResult is what a provider returns for one search call
type SearchResult struct {
	Jobs           []JobListing
	TotalAvailable int
	FetchedAt      time.Time
}
