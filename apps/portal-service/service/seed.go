package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/auth"
	"nightlife-portal/pkg/logger"
)

// ErrSeedPasswordMissing 需要创建管理员但未配置密码
var ErrSeedPasswordMissing = errors.New("seed admin password not configured")

// SeedAdmin 初始管理员
type SeedAdmin struct {
	Username string
	Email    string
	Password string
}

// SeedReport 初始化结果
type SeedReport struct {
	AdminCreated bool
	Slides       int
	Blogs        int
	Events       int
	Jobs         int
}

// Seed 创建管理员（不存在时）并为空集合写入示例数据，可重复执行
func (s *Service) Seed(ctx context.Context, admin SeedAdmin) (*SeedReport, error) {
	report := &SeedReport{}

	created, err := s.EnsureAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}
	report.AdminCreated = created

	now := s.now()
	if report.Slides, err = seedIfEmpty(ctx, s.carousel.Count, s.carousel.Create, sampleSlides(now)); err != nil {
		return nil, fmt.Errorf("seed carousel: %w", err)
	}
	if report.Blogs, err = seedIfEmpty(ctx, s.blogs.Count, s.blogs.Create, sampleBlogs(now)); err != nil {
		return nil, fmt.Errorf("seed blogs: %w", err)
	}
	if report.Events, err = seedIfEmpty(ctx, s.events.Count, s.events.Create, sampleEvents(now)); err != nil {
		return nil, fmt.Errorf("seed events: %w", err)
	}
	if report.Jobs, err = seedIfEmpty(ctx, s.jobs.Count, s.jobs.Create, sampleJobs(now)); err != nil {
		return nil, fmt.Errorf("seed jobs: %w", err)
	}

	s.logger.Info(ctx, "Seed finished",
		logger.F("adminCreated", report.AdminCreated),
		logger.F("slides", report.Slides),
		logger.F("blogs", report.Blogs),
		logger.F("events", report.Events),
		logger.F("jobs", report.Jobs))
	return report, nil
}

// EnsureAdmin 没有任何管理员时创建一个
func (s *Service) EnsureAdmin(ctx context.Context, admin SeedAdmin) (bool, error) {
	count, err := s.accounts.CountByRole(ctx, auth.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if admin.Password == "" {
		return false, ErrSeedPasswordMissing
	}

	hashed, err := auth.HashPassword(admin.Password)
	if err != nil {
		return false, err
	}
	now := s.now()
	account := &model.Account{
		ID:        primitive.NewObjectID(),
		Username:  admin.Username,
		Email:     admin.Email,
		Password:  hashed,
		Role:      auth.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info(ctx, "Admin account created", logger.F("email", account.Email))
	return true, nil
}

func seedIfEmpty[T any](ctx context.Context, count func(context.Context) (int64, error), create func(context.Context, *T) error, items []*T) (int, error) {
	n, err := count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, item := range items {
		if err := create(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func intPtr(v int) *int {
	return &v
}

func sampleSlides(now time.Time) []*model.CarouselSlide {
	slide := func(order int, title, link, description string) *model.CarouselSlide {
		return &model.CarouselSlide{
			ID:          primitive.NewObjectID(),
			Title:       title,
			Image:       fmt.Sprintf("/banner/banner%d.jpg", order),
			AltText:     fmt.Sprintf("AAU Nightlife Banner %d", order),
			Link:        &link,
			Order:       order,
			Active:      true,
			Description: description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	return []*model.CarouselSlide{
		slide(1, "Welcome to AAU Nightlife", "/events", "Discover amazing events and activities"),
		slide(2, "Join Our Community", "/blogs", "Read our latest blogs and updates"),
		slide(3, "Find Your Next Opportunity", "/jobs", "Explore job opportunities"),
		slide(4, "Experience the Nightlife", "/events", "Unforgettable experiences await"),
		slide(5, "Stay Connected", "/blogs", "Keep up with the latest news"),
	}
}

func sampleBlogs(now time.Time) []*model.Blog {
	blog := func(b model.Blog) *model.Blog {
		b.ID = primitive.NewObjectID()
		b.Published = true
		b.CreatedAt = now
		b.UpdatedAt = now
		return &b
	}
	return []*model.Blog{
		blog(model.Blog{
			Title:    "Welcome to AAU Nightlife Community",
			Excerpt:  "Discover the vibrant nightlife scene at AAU and connect with fellow students.",
			Content:  "AAU Nightlife is your gateway to an exciting campus life filled with events, activities, and opportunities. Whether you're looking for social gatherings, career opportunities, or just a place to unwind, we've got you covered.",
			Author:   "AAU Nightlife Team",
			Category: "General",
			Image:    "/blog/blog1.jpg",
			Tags:     []string{"welcome", "community", "campus"},
			Featured: true,
		}),
		blog(model.Blog{
			Title:    "Upcoming Events This Semester",
			Excerpt:  "Check out the exciting events planned for this semester.",
			Content:  "This semester promises to be filled with amazing events including movie nights, bonfires, hangouts, and much more. Stay tuned for updates and don't miss out on the fun!",
			Author:   "Events Committee",
			Category: "Events",
			Image:    "/blog/blog2.jpg",
			Tags:     []string{"events", "semester", "activities"},
			Featured: true,
		}),
		blog(model.Blog{
			Title:    "Career Opportunities in Hospitality",
			Excerpt:  "Explore the growing field of hospitality and event management.",
			Content:  "The hospitality industry offers exciting career paths for students interested in event planning, hotel management, and tourism. Learn about the opportunities available and how to get started.",
			Author:   "Career Services",
			Category: "Jobs",
			Image:    "/blog/blog3.jpg",
			Tags:     []string{"careers", "hospitality", "jobs"},
		}),
	}
}

func sampleEvents(now time.Time) []*model.Event {
	event := func(e model.Event) *model.Event {
		e.ID = primitive.NewObjectID()
		e.Published = true
		e.CreatedAt = now
		e.UpdatedAt = now
		return &e
	}
	return []*model.Event{
		event(model.Event{
			Title:            "Bonfire Night",
			Description:      "Join us for a relaxing bonfire evening with music, food, and great company. Perfect way to unwind and meet new people.",
			ShortDescription: "Relaxing bonfire with music and food",
			Date:             day("2025-12-15"),
			Time:             "7:00 PM",
			Location:         "Campus Green Area",
			Image:            "/events/Bonfire.png",
			Capacity:         intPtr(100),
			Category:         "Social",
			Organizer:        "AAU Nightlife",
			ContactEmail:     "events@aau-nightlife.com",
			Featured:         true,
			Tags:             []string{"bonfire", "social", "music"},
		}),
		event(model.Event{
			Title:            "Movie AMA Session",
			Description:      "Watch popular movies and participate in Ask Me Anything sessions with guest speakers from the film industry.",
			ShortDescription: "Movie screening with AMA session",
			Date:             day("2025-12-20"),
			Time:             "6:00 PM",
			Location:         "Campus Auditorium",
			Image:            "/events/MovieAMA.jpg",
			Capacity:         intPtr(200),
			Price:            500,
			Category:         "Cultural",
			Organizer:        "Film Club",
			ContactEmail:     "filmclub@aau-nightlife.com",
			Featured:         true,
			Tags:             []string{"movie", "ama", "cultural"},
		}),
		event(model.Event{
			Title:            "Campus Hangout",
			Description:      "Casual hangout session for students to relax, play games, and socialize.",
			ShortDescription: "Casual student hangout",
			Date:             day("2025-12-10"),
			Time:             "4:00 PM",
			Location:         "Student Center",
			Image:            "/events/Hangout.jpg",
			Capacity:         intPtr(50),
			Category:         "Social",
			Organizer:        "Student Council",
			ContactEmail:     "council@aau-nightlife.com",
			Tags:             []string{"hangout", "social", "games"},
		}),
	}
}

func sampleJobs(now time.Time) []*model.Job {
	job := func(j model.Job, deadline string) *model.Job {
		j.ID = primitive.NewObjectID()
		j.ApplicationDeadline = model.TimePtr(day(deadline))
		j.Published = true
		j.CreatedAt = now
		j.UpdatedAt = now
		return &j
	}
	return []*model.Job{
		job(model.Job{
			Title:        "Event Coordinator",
			Company:      "AAU Nightlife",
			Location:     "Campus",
			Description:  "Coordinate and manage various campus events and activities. Work with teams to ensure successful execution of events.",
			Requirements: "Strong organizational skills, experience in event planning preferred, good communication skills.",
			Salary:       "25,000 - 35,000 NGN/month",
			Type:         "Part-time",
			Category:     "Event Management",
			ContactEmail: "jobs@aau-nightlife.com",
			Image:        "/blog/blog1.jpg",
			Featured:     true,
			Tags:         []string{"event", "coordinator", "management"},
		}, "2025-12-31"),
		job(model.Job{
			Title:        "Social Media Manager",
			Company:      "AAU Nightlife",
			Location:     "Remote/Campus",
			Description:  "Manage social media accounts, create content, and engage with the campus community online.",
			Requirements: "Experience with social media platforms, content creation skills, basic graphic design knowledge.",
			Salary:       "20,000 - 30,000 NGN/month",
			Type:         "Part-time",
			Category:     "Marketing",
			ContactEmail: "jobs@aau-nightlife.com",
			Image:        "/blog/blog2.jpg",
			Tags:         []string{"social media", "marketing", "content"},
		}, "2025-12-25"),
		job(model.Job{
			Title:        "Hospitality Intern",
			Company:      "Campus Hotel Partners",
			Location:     "Various Locations",
			Description:  "Gain hands-on experience in the hospitality industry through internships with partner hotels and venues.",
			Requirements: "Enrolled student, interest in hospitality, willingness to learn.",
			Salary:       "15,000 NGN/month + benefits",
			Type:         "Internship",
			Category:     "Hospitality",
			ContactEmail: "internships@aau-nightlife.com",
			Image:        "/blog/blog3.jpg",
			Tags:         []string{"hospitality", "internship", "experience"},
		}, "2026-01-15"),
	}
}
