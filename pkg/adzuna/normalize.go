package adzuna

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	internshipPattern = regexp.MustCompile(`\b(interns?|internships?|trainees?|apprentices?|apprenticeships?)\b`)
	remotePattern     = regexp.MustCompile(`\b(remote|work from home|wfh)\b`)
	// matched against the text directly before a remote marker
	remoteNegation = regexp.MustCompile(`\b(not|no|non)[\s-]+((a|an|fully)\s+)?$`)
)

// DecodeSearchResponse parses a raw search body into a SearchPage.
// Provider order is preserved. A body without a "results" key is rejected.
func DecodeSearchResponse(body []byte) (SearchPage, error) {
	var payload jobSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return SearchPage{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if payload.Results == nil {
		return SearchPage{}, fmt.Errorf("%w: missing results key", ErrDecode)
	}

	jobs := make([]Job, 0, len(*payload.Results))
	for _, posting := range *payload.Results {
		jobs = append(jobs, mapPosting(posting))
	}

	return SearchPage{
		Count: payload.Count,
		Mean:  payload.Mean,
		Jobs:  jobs,
	}, nil
}

// DecodeCategoriesResponse parses a raw categories body
func DecodeCategoriesResponse(body []byte) ([]Category, error) {
	var payload categoriesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%w: missing results key", ErrDecode)
	}

	out := make([]Category, 0, len(*payload.Results))
	for _, c := range *payload.Results {
		c.Tag = strings.TrimSpace(c.Tag)
		c.Label = strings.TrimSpace(c.Label)
		if c.Tag == "" && c.Label == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func mapPosting(posting jobPosting) Job {
	job := Job{
		ID:              strings.TrimSpace(string(posting.ID)),
		Title:           stripHTML(posting.Title),
		CompanyName:     cleanText(posting.Company.DisplayName),
		Location:        formatLocation(posting.Location),
		Category:        strings.TrimSpace(posting.Category.Label),
		CategoryTag:     strings.TrimSpace(posting.Category.Tag),
		URL:             strings.TrimSpace(posting.RedirectURL),
		Description:     stripHTML(posting.Description),
		ContractType:    strings.TrimSpace(posting.ContractType),
		ContractTime:    strings.TrimSpace(posting.ContractTime),
		PostedAtRaw:     strings.TrimSpace(posting.Created),
		SalaryMin:       posting.SalaryMin,
		SalaryMax:       posting.SalaryMax,
		SalaryPredicted: posting.SalaryIsPredicted.bool(),
	}

	if job.PostedAtRaw != "" {
		if ts, err := time.Parse(time.RFC3339, job.PostedAtRaw); err == nil {
			job.PostedAt = ts.UTC()
		}
	}

	job.Remote = mentionsRemote(job.Location + " " + job.Title + " " + job.Description)
	job.IsInternship = internshipPattern.MatchString(strings.ToLower(job.Title))

	return job
}

// formatLocation prefers "city, region" from the area hierarchy
func formatLocation(loc locationSummary) string {
	area := make([]string, 0, len(loc.Area))
	for _, a := range loc.Area {
		if a = strings.TrimSpace(a); a != "" {
			area = append(area, a)
		}
	}
	if len(area) >= 2 {
		return area[len(area)-1] + ", " + area[len(area)-2]
	}
	if name := cleanText(loc.DisplayName); name != "" {
		return name
	}
	if len(area) == 1 {
		return area[0]
	}
	return ""
}

func stripHTML(value string) string {
	if !strings.ContainsAny(value, "<&") {
		return cleanText(value)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return cleanText(value)
	}
	return cleanText(doc.Text())
}

func cleanText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// mentionsRemote reports whether text advertises remote work; negated mentions such as "not a remote role" are ignored
func mentionsRemote(text string) bool {
	text = strings.ToLower(text)
	for _, loc := range remotePattern.FindAllStringIndex(text, -1) {
		if !remoteNegation.MatchString(text[:loc[0]]) {
			return true
		}
	}
	return false
}
