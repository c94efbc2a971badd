// Package seed loads the demo data set used for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anonto42/pegawe/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Summary reports how many rows each table received
type Summary struct {
	Users         int
	Jobs          int
	Applications  int
	Bookmarks     int
	Reviews       int
	Notifications int
}

// Run replaces every table's contents with the demo data in one transaction
func Run(ctx context.Context, db *gorm.DB, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Seeding demo data")

	var summary Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := truncate(tx); err != nil {
			return err
		}

		users := demoUsers()
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		jobs := demoJobs()
		if err := tx.Create(&jobs).Error; err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}

		applications := []models.Application{
			{
				JobID: jobs[0].ID, UserID: users[0].ID, Status: models.ApplicationStatusPending,
				CoverLetter: "I am very interested in this Senior Frontend Developer position. With my 5 years of experience in React development, I believe I would be a great addition to your team.",
				ResumeURL:   "https://drive.google.com/file/d/1234567890",
			},
			{
				JobID: jobs[1].ID, UserID: users[1].ID, Status: models.ApplicationStatusReviewed,
				CoverLetter: "As a passionate designer with 3 years of experience, I am excited about the opportunity to work with your creative team.",
				ResumeURL:   "https://drive.google.com/file/d/0987654321",
			},
			{
				JobID: jobs[2].ID, UserID: users[2].ID, Status: models.ApplicationStatusAccepted,
				CoverLetter: "My experience in digital marketing and leadership skills make me an ideal candidate for this position.",
				ResumeURL:   "https://drive.google.com/file/d/1122334455",
			},
		}
		bookmarks := []models.Bookmark{
			{JobID: jobs[0].ID, UserID: users[0].ID},
			{JobID: jobs[1].ID, UserID: users[1].ID},
			{JobID: jobs[2].ID, UserID: users[2].ID},
		}
		reviews := []models.Review{
			{JobID: jobs[0].ID, UserID: users[0].ID, Rating: 5, Comment: "Great company with excellent work culture and opportunities for growth."},
			{JobID: jobs[1].ID, UserID: users[1].ID, Rating: 4, Comment: "Creative environment and supportive team. Highly recommended!"},
			{JobID: jobs[2].ID, UserID: users[2].ID, Rating: 4, Comment: "Good marketing strategies and professional team."},
		}
		notifications := []models.Notification{
			{Title: "New Job Application", Message: fmt.Sprintf("%s has applied for %s position", users[0].Name, jobs[0].Title), Type: models.NotificationInfo},
			{Title: "Application Status Update", Message: fmt.Sprintf("%s's application for %s has been reviewed", users[1].Name, jobs[1].Title), Type: models.NotificationSuccess},
			{Title: "New User Registration", Message: fmt.Sprintf("%s has registered on the platform", users[2].Name), Type: models.NotificationInfo, IsRead: true},
			{Title: "System Alert", Message: "Database backup completed successfully", Type: models.NotificationSuccess, IsRead: true},
		}

		for _, batch := range []struct {
			name string
			rows any
		}{
			{"applications", &applications},
			{"bookmarks", &bookmarks},
			{"reviews", &reviews},
			{"notifications", &notifications},
		} {
			if err := tx.Omit(clause.Associations).Create(batch.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", batch.name, err)
			}
		}

		summary = Summary{
			Users:         len(users),
			Jobs:          len(jobs),
			Applications:  len(applications),
			Bookmarks:     len(bookmarks),
			Reviews:       len(reviews),
			Notifications: len(notifications),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Demo data seeded",
		slog.Int("users", summary.Users),
		slog.Int("jobs", summary.Jobs),
		slog.Int("applications", summary.Applications),
		slog.Int("bookmarks", summary.Bookmarks),
		slog.Int("reviews", summary.Reviews),
		slog.Int("notifications", summary.Notifications))
	return &summary, nil
}

// truncate empties the tables, dependents first
func truncate(tx *gorm.DB) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&models.Notification{},
		&models.Review{},
		&models.Bookmark{},
		&models.Application{},
		&models.User{},
		&models.Job{},
	} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

func demoUsers() []models.User {
	return []models.User{
		{
			Email:      "john.doe@example.com",
			Name:       "John Doe",
			Phone:      "+62 812-3456-7890",
			Skills:     datatypes.JSON(`["JavaScript","React","Node.js","TypeScript"]`),
			Experience: "3 years as Frontend Developer at TechCorp",
			Education:  "Bachelor of Computer Science, University of Indonesia",
		},
		{
			Email:      "jane.smith@example.com",
			Name:       "Jane Smith",
			Phone:      "+62 813-5678-9012",
			Skills:     datatypes.JSON(`["UI/UX Design","Figma","Adobe XD","Prototyping"]`),
			Experience: "2 years as UI/UX Designer at Creative Studio",
			Education:  "Bachelor of Design, Bandung Institute of Technology",
		},
		{
			Email:      "bob.johnson@example.com",
			Name:       "Bob Johnson",
			Phone:      "+62 814-7890-1234",
			Skills:     datatypes.JSON(`["Python","Django","PostgreSQL","AWS"]`),
			Experience: "4 years as Backend Developer at StartupTech",
			Education:  "Master of Computer Science, ITB",
		},
	}
}

func demoJobs() []models.Job {
	return []models.Job{
		{
			Title:        "Senior Frontend Developer",
			Company:      "TechCorp Indonesia",
			Location:     "Jakarta Selatan",
			Type:         models.JobTypeFullTime,
			Salary:       "Rp 20.000.000 - 30.000.000",
			Description:  "We are looking for an experienced Senior Frontend Developer to join our growing team. You will be responsible for developing and implementing user interfaces using React.js and modern web technologies.",
			Requirements: "• 5+ years of experience in frontend development\n• Expert in React.js, Next.js, and TypeScript\n• Strong understanding of responsive design principles\n• Experience with state management (Redux, Zustand)\n• Proficient in Tailwind CSS and modern CSS",
			Benefits:     "• Competitive salary and performance bonuses\n• Health insurance for you and your family\n• Flexible working hours and remote work options\n• Professional development budget\n• Annual team building events",
			Email:        "careers@techcorp.id",
			Category:     models.CategoryTechnology,
			ImageURL:     "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=400&h=300&fit=crop",
			IsActive:     true,
		},
		{
			Title:        "Product Designer",
			Company:      "Creative Studio",
			Location:     "Bandung",
			Type:         models.JobTypeFullTime,
			Salary:       "Rp 15.000.000 - 22.000.000",
			Description:  "Join our design team to create amazing user experiences for digital products. You will work closely with product managers and developers to bring ideas to life.",
			Requirements: "• 3+ years of experience in product design\n• Proficient in Figma, Sketch, or Adobe XD\n• Strong portfolio demonstrating your design process\n• Understanding of user research and usability testing\n• Experience with design systems",
			Benefits:     "• Creative work environment\n• Latest design tools and equipment\n• Health and wellness benefits\n• Flexible vacation policy\n• Learning and development opportunities",
			Email:        "jobs@creativestudio.id",
			Category:     models.CategoryDesign,
			ImageURL:     "https://images.unsplash.com/photo-1559028006-44a36f1157a1?w=400&h=300&fit=crop",
			IsActive:     true,
		},
		{
			Title:        "Digital Marketing Manager",
			Company:      "Growth Agency",
			Location:     "Jakarta Pusat",
			Type:         models.JobTypeFullTime,
			Salary:       "Rp 18.000.000 - 25.000.000",
			Description:  "Lead our digital marketing efforts and help our clients achieve their business goals through innovative marketing strategies.",
			Requirements: "• 5+ years in digital marketing\n• Experience with Google Ads, Facebook Ads, SEO/SEM\n• Strong analytical and data-driven mindset\n• Leadership experience\n• Excellent communication skills",
			Benefits:     "• Performance-based bonuses\n• Professional certifications support\n• Health insurance\n• Remote work flexibility\n• Team building activities",
			Email:        "hr@growthagency.com",
			Category:     models.CategoryMarketing,
			ImageURL:     "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=400&h=300&fit=crop",
			IsActive:     true,
		},
		{
			Title:        "Full Stack Developer",
			Company:      "StartupTech",
			Location:     "Yogyakarta",
			Type:         models.JobTypeRemote,
			Salary:       "Rp 25.000.000 - 35.000.000",
			Description:  "Join our remote team to build innovative web applications. You will work on both frontend and backend development.",
			Requirements: "• 4+ years of full stack development\n• Proficient in Node.js, React, and databases\n• Experience with cloud services (AWS/GCP)\n• Self-motivated and disciplined\n• Good communication skills",
			Benefits:     "• 100% remote work\n• Flexible working hours\n• Equipment allowance\n• Annual retreats\n• Stock options",
			ApplyURL:     "https://startuptech.com/careers/fullstack",
			Category:     models.CategoryTechnology,
			ImageURL:     "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?w=400&h=300&fit=crop",
			IsActive:     true,
		},
	}
}
