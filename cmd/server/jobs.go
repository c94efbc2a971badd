package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/anonto42/pegawe/backend/internal/filter"
	"github.com/anonto42/pegawe/backend/internal/models"
	"github.com/spf13/cobra"
)

type jobsOptions struct {
	server   string
	criteria models.JobFilter
	watch    time.Duration
	timeout  time.Duration
}

func jobsCmd() *cobra.Command {
	var opts jobsOptions

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List active jobs from a running server, filtered locally",
		Long: `Jobs fetches the active job list once and narrows it in memory with the
same criteria the listing endpoint accepts. With --watch the list is
refetched on every interval and the filter reapplied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: opts.timeout}
			return listJobs(cmd.Context(), cmd.OutOrStdout(), client, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.server, "server", "http://localhost:8080", "Base URL of the Pegawe API")
	flags.StringVarP(&opts.criteria.Search, "search", "s", "", "Match title, company or description")
	flags.StringVar(&opts.criteria.Category, "category", "", "Job category, or \"all\"")
	flags.StringVar(&opts.criteria.Type, "type", "", "Job type, or \"all\"")
	flags.StringVar(&opts.criteria.Location, "location", "", "Location substring")
	flags.DurationVar(&opts.watch, "watch", 0, "Refetch interval; 0 fetches once")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "HTTP request timeout")
	return cmd
}

func listJobs(ctx context.Context, out io.Writer, client *http.Client, opts jobsOptions) error {
	jobs, err := fetchJobs(ctx, client, opts.server)
	if err != nil {
		return err
	}
	view := filter.NewView(jobs)
	view.SetCriteria(opts.criteria)
	if err := printJobs(out, view.Visible(), len(jobs)); err != nil {
		return err
	}
	if opts.watch <= 0 {
		return nil
	}

	ticker := time.NewTicker(opts.watch)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			jobs, err := fetchJobs(ctx, client, opts.server)
			if err != nil {
				fmt.Fprintf(out, "refresh failed: %v\n", err)
				continue
			}
			view.SetJobs(jobs)
			fmt.Fprintln(out)
			if err := printJobs(out, view.Visible(), len(jobs)); err != nil {
				return err
			}
		}
	}
}

// fetchJobs reads the unfiltered active listing
func fetchJobs(ctx context.Context, client *http.Client, server string) ([]models.Job, error) {
	url := strings.TrimRight(server, "/") + "/api/v1/jobs"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("fetch jobs: %s: %s", resp.Status, body.Error)
	}

	var jobs []models.Job
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

func printJobs(w io.Writer, jobs []models.Job, total int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE\tCATEGORY")
	for _, job := range jobs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", job.ID, job.Title, job.Company, job.Location, job.Type, job.Category)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d jobs\n", len(jobs), total)
	return err
}
