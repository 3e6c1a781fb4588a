package job

import (
	"strings"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// AllValues is the facet value that clears a facet
const AllValues = "all"

// Facet names one filter dimension
type Facet string

const (
	FacetSearch   Facet = "search"
	FacetLocation Facet = "location"
	FacetJobType  Facet = "job_type"
)

// Filters is the ephemeral narrowing state for a listing. The zero value matches everything.
type Filters struct {
	Search   string `json:"search,omitempty" form:"search"`
	Location string `json:"location,omitempty" form:"location"`
	JobType  string `json:"job_type,omitempty" form:"job_type"`
}

// Set returns a copy of f with a single facet overwritten. "all" or "" unsets it.
func (f Filters) Set(facet Facet, value string) Filters {
	if value == AllValues {
		value = ""
	}
	switch facet {
	case FacetSearch:
		f.Search = value
	case FacetLocation:
		f.Location = value
	case FacetJobType:
		f.JobType = value
	}
	return f
}

// Clear resets every facet
func (f Filters) Clear() Filters {
	return Filters{}
}

// Normalized folds "all" sentinels into unset facets
func (f Filters) Normalized() Filters {
	return Filters{}.
		Set(FacetSearch, f.Search).
		Set(FacetLocation, f.Location).
		Set(FacetJobType, f.JobType)
}

// Active reports whether any facet narrows the listing
func (f Filters) Active() bool {
	f = f.Normalized()
	return strings.TrimSpace(f.Search) != "" || f.Location != "" || f.JobType != ""
}

// Apply narrows jobs by f. Passes run search, location, job type in order; each only
// removes candidates and the input order is preserved. jobs is never modified.
func Apply(jobs []domain.Job, f Filters) []domain.Job {
	f = f.Normalized()
	out := jobs

	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		out = keep(out, func(j domain.Job) bool {
			return strings.Contains(strings.ToLower(j.Title), term) ||
				strings.Contains(strings.ToLower(j.Company), term) ||
				strings.Contains(strings.ToLower(j.Description), term)
		})
	}

	if f.Location != "" {
		out = keep(out, func(j domain.Job) bool { return j.Location == f.Location })
	}

	if f.JobType != "" {
		out = keep(out, func(j domain.Job) bool { return string(j.JobType) == f.JobType })
	}

	if len(out) == len(jobs) {
		return append(make([]domain.Job, 0, len(jobs)), jobs...)
	}
	return out
}

func keep(jobs []domain.Job, pred func(domain.Job) bool) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if pred(j) {
			out = append(out, j)
		}
	}
	return out
}

// Facets are the choices offered for each exact-match facet
type Facets struct {
	Locations []string `json:"locations"`
	JobTypes  []string `json:"job_types"`
}

// FacetsOf collects distinct locations and job types of the full listing in first-seen order.
// Call it on the unfiltered jobs so the options do not shrink while narrowing.
func FacetsOf(jobs []domain.Job) Facets {
	facets := Facets{Locations: []string{}, JobTypes: []string{}}
	seenLoc := make(map[string]struct{})
	seenType := make(map[domain.JobType]struct{})

	for _, j := range jobs {
		if _, ok := seenLoc[j.Location]; !ok {
			seenLoc[j.Location] = struct{}{}
			facets.Locations = append(facets.Locations, j.Location)
		}
		if _, ok := seenType[j.JobType]; !ok {
			seenType[j.JobType] = struct{}{}
			facets.JobTypes = append(facets.JobTypes, string(j.JobType))
		}
	}

	return facets
}
