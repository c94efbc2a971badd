package models

// CategoryCount is the number of jobs posted under one category
type CategoryCount struct {
	Category   JobCategory `json:"category"`
	Count      int64       `json:"count"`
	Percentage float64     `json:"percentage"`
}

// Stats is the admin dashboard overview
type Stats struct {
	TotalJobs            int64                       `json:"totalJobs"`
	ActiveJobs           int64                       `json:"activeJobs"`
	TotalApplications    int64                       `json:"totalApplications"`
	TotalUsers           int64                       `json:"totalUsers"`
	TotalBookmarks       int64                       `json:"totalBookmarks"`
	UnreadNotifications  int64                       `json:"unreadNotifications"`
	ApplicationsByStatus map[ApplicationStatus]int64 `json:"applicationsByStatus"`
	JobsByCategory       []CategoryCount             `json:"jobsByCategory"`
}
