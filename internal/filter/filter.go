// Package filter narrows an already fetched job list in memory. It uses the
// same models.JobFilter predicate the server compiles to SQL, so a local
// re-filter never disagrees with the listing endpoint.
package filter

import (
	"sync"

	"github.com/anonto42/pegawe/backend/internal/models"
)

// Apply returns the jobs matching every criterion, in their original order
func Apply(jobs []models.Job, criteria models.JobFilter) []models.Job {
	criteria = criteria.Normalized()
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if criteria.Matches(job) {
			out = append(out, job)
		}
	}
	return out
}

// View holds a job list and the current criteria. The visible subset is a
// derived value, recomputed from scratch whenever either input changes.
type View struct {
	mu       sync.RWMutex
	jobs     []models.Job
	criteria models.JobFilter
	visible  []models.Job
}

// NewView creates a view over jobs with no criteria set
func NewView(jobs []models.Job) *View {
	v := &View{}
	v.SetJobs(jobs)
	return v
}

// SetJobs replaces the underlying list, e.g. after a refetch
func (v *View) SetJobs(jobs []models.Job) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.jobs = append([]models.Job(nil), jobs...)
	v.recompute()
}

// SetCriteria replaces all criteria at once
func (v *View) SetCriteria(criteria models.JobFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = criteria
	v.recompute()
}

func (v *View) SetSearch(search string) {
	v.update(func(f *models.JobFilter) { f.Search = search })
}

func (v *View) SetCategory(category string) {
	v.update(func(f *models.JobFilter) { f.Category = category })
}

func (v *View) SetType(jobType string) {
	v.update(func(f *models.JobFilter) { f.Type = jobType })
}

func (v *View) SetLocation(location string) {
	v.update(func(f *models.JobFilter) { f.Location = location })
}

// Criteria returns the current criteria as set
func (v *View) Criteria() models.JobFilter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.criteria
}

// Visible returns a copy of the jobs passing the current criteria
func (v *View) Visible() []models.Job {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Job(nil), v.visible...)
}

// Len returns the number of visible jobs
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.visible)
}

func (v *View) update(fn func(*models.JobFilter)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.criteria)
	v.recompute()
}

// recompute must be called with mu held
func (v *View) recompute() {
	v.visible = Apply(v.jobs, v.criteria)
}
