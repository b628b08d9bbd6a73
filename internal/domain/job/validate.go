package job

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
)

const (
	DefaultPage           = 1
	DefaultResultsPerPage = 20
	MaxResultsPerPage     = 50
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NormalizeRequest trims free text, applies paging defaults and clamps the page size
func NormalizeRequest(req domain.SearchRequest) domain.SearchRequest {
	req.Keywords = collapse(req.Keywords)
	req.Location = collapse(req.Location)
	req.Company = collapse(req.Company)
	req.Category = collapse(req.Category)
	req.Country = strings.ToLower(strings.TrimSpace(req.Country))
	req.SortBy = strings.ToLower(strings.TrimSpace(req.SortBy))
	req.ContractTime = strings.ToLower(strings.TrimSpace(req.ContractTime))
	req.ContractType = strings.ToLower(strings.TrimSpace(req.ContractType))

	if req.Page == 0 {
		req.Page = DefaultPage
	}
	if req.ResultsPerPage == 0 {
		req.ResultsPerPage = DefaultResultsPerPage
	}
	if req.ResultsPerPage > MaxResultsPerPage {
		req.ResultsPerPage = MaxResultsPerPage
	}
	return req
}

// ValidateRequest checks a normalized request against the rules of op
func ValidateRequest(op domain.Operation, req domain.SearchRequest) error {
	switch op {
	case domain.OpSearchJobs, domain.OpSearchInternships, domain.OpSearchRemoteJobs:
		if req.Keywords == "" {
			return domain.InvalidParameter("keywords is required for %s", op)
		}
	case domain.OpSearchCompanyJobs:
		if req.Company == "" {
			return domain.InvalidParameter("company is required for %s", op)
		}
	case domain.OpGetJobCategories:
		if err := validate.Var(req.Country, "required,len=2,alpha"); err != nil {
			return countryError(req.Country)
		}
		return nil
	default:
		return domain.InvalidParameter("unknown operation %q", op)
	}

	if err := validate.Struct(req); err != nil {
		return translateValidation(req, err)
	}
	return nil
}

func translateValidation(req domain.SearchRequest, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.InvalidParameter("%v", err)
	}

	fe := verrs[0]
	switch fe.Field() {
	case "country":
		return countryError(req.Country)
	case "page":
		return domain.InvalidParameter("page must be a positive integer, got %v", fe.Value())
	case "results_per_page":
		return domain.InvalidParameter("results_per_page must be a positive integer, got %v", fe.Value())
	case "max_days_old":
		return domain.InvalidParameter("max_days_old must not be negative, got %v", fe.Value())
	case "sort_by", "contract_time", "contract_type":
		return domain.InvalidParameter("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return domain.InvalidParameter("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

func countryError(country string) error {
	if country == "" {
		return domain.InvalidParameter("country is required")
	}
	return domain.InvalidParameter("country must be a 2-letter country code, got %q", country)
}

func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
