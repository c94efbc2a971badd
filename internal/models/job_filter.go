package models

import "strings"

// FilterAll is the sentinel value meaning "do not narrow by this field"
const FilterAll = "all"

// JobFilter holds the listing criteria shared by the server query and the
// in-memory client view.
type JobFilter struct {
	Category string `query:"category" json:"category,omitempty"`
	Type     string `query:"type" json:"type,omitempty"`
	Search   string `query:"search" json:"search,omitempty"`
	Location string `query:"location" json:"location,omitempty"`
}

// Normalized trims every field and clears the "all" sentinels
func (f JobFilter) Normalized() JobFilter {
	out := JobFilter{
		Category: strings.TrimSpace(f.Category),
		Type:     strings.TrimSpace(f.Type),
		Search:   strings.TrimSpace(f.Search),
		Location: strings.TrimSpace(f.Location),
	}
	if strings.EqualFold(out.Category, FilterAll) {
		out.Category = ""
	}
	if strings.EqualFold(out.Type, FilterAll) {
		out.Type = ""
	}
	return out
}

// Matches applies the criteria to a single job. Active state is not
// considered; callers that need it filter on IsActive themselves.
func (f JobFilter) Matches(job Job) bool {
	f = f.Normalized()

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !containsFold(job.Title, needle) &&
			!containsFold(job.Company, needle) &&
			!containsFold(job.Description, needle) {
			return false
		}
	}
	if f.Category != "" && string(job.Category) != f.Category {
		return false
	}
	if f.Type != "" && string(job.Type) != f.Type {
		return false
	}
	if f.Location != "" && !containsFold(job.Location, strings.ToLower(f.Location)) {
		return false
	}
	return true
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
