package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobsServer(t *testing.T, jobs []models.Job) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/jobs" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not Found"}`))
			return
		}
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jobs)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListJobsFiltersLocally(t *testing.T) {
	srv := jobsServer(t, []models.Job{
		{ID: 1, Title: "Senior Frontend Developer", Company: "TechCorp", Location: "Jakarta", Type: models.JobTypeFullTime, Category: models.CategoryTechnology},
		{ID: 2, Title: "Product Designer", Company: "Creative Studio", Location: "Bandung", Type: models.JobTypeFullTime, Category: models.CategoryDesign},
	})

	var out bytes.Buffer
	err := listJobs(context.Background(), &out, srv.Client(), jobsOptions{
		server:   srv.URL + "/",
		criteria: models.JobFilter{Search: "frontend", Category: "all"},
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Senior Frontend Developer")
	assert.NotContains(t, text, "Product Designer")
	assert.True(t, strings.HasSuffix(text, "1 of 2 jobs\n"), text)
}

func TestFetchJobsReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
	}))
	defer srv.Close()

	_, err := fetchJobs(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Internal server error")
}
