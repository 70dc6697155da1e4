package service

import (
	"context"
	"fmt"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/session"
)

const (
	HomeVariantGuest    = "guest"
	HomeVariantLoggedIn = "logged_in"
)

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Quote   string `json:"quote"`
	Outcome string `json:"outcome"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type HomeStats struct {
	RecentSearches int `json:"recentSearches"`
	SkillsTracked  int `json:"skillsTracked"`
	ResumeScans    int `json:"resumeScans"`
}

// Home is the payload of the home page. Which fields are set depends on
// Variant.
type Home struct {
	Variant  string `json:"variant"`
	Headline string `json:"headline"`
	Tagline  string `json:"tagline"`

	Initials     string                  `json:"initials,omitempty"`
	Stats        *HomeStats              `json:"stats,omitempty"`
	LatestReport *model.SkillGapAnalysis `json:"latestReport,omitempty"`
	QuickActions []Link                  `json:"quickActions,omitempty"`

	Features     []Feature     `json:"features,omitempty"`
	SocialProof  []Stat        `json:"socialProof,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
	FAQ          []FAQ         `json:"faq,omitempty"`
	CallToAction *Link         `json:"callToAction,omitempty"`
}

type HomeService struct {
	Analyses AnalysisStore
	Scans    DashboardScans
}

func NewHomeService(analyses AnalysisStore, scans DashboardScans) *HomeService {
	return &HomeService{Analyses: analyses, Scans: scans}
}

// Get picks the home variant for the session.
func (s *HomeService) Get(ctx context.Context, sess session.Session) (*Home, error) {
	if !sess.LoggedIn {
		return GuestHome(), nil
	}
	return s.memberHome(ctx, sess)
}

func (s *HomeService) memberHome(ctx context.Context, sess session.Session) (*Home, error) {
	history, err := s.Analyses.ListByUser(ctx, sess.UserID, model.MaxHistory)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	scans, err := s.Scans.RecentByUser(ctx, sess.UserID, model.MaxHistory)
	if err != nil {
		return nil, fmt.Errorf("load scans: %w", err)
	}

	stats := &HomeStats{ResumeScans: len(scans)}
	tracked := map[string]struct{}{}
	for _, a := range history {
		if a.Source == model.SourceMarket {
			stats.RecentSearches++
		}
		for _, skill := range a.MissingSkills {
			tracked[skill] = struct{}{}
		}
	}
	stats.SkillsTracked = len(tracked)

	h := &Home{
		Variant:  HomeVariantLoggedIn,
		Headline: fmt.Sprintf("Welcome back, %s!", sess.FirstName()),
		Tagline:  "Continue building your skills and advancing your career.",
		Initials: sess.Initials(),
		Stats:    stats,
		QuickActions: []Link{
			{Label: "View Analytics", Href: "/dashboard"},
			{Label: "Analyze Resume", Href: "/resume"},
			{Label: "Take Assessment", Href: "/assessment"},
		},
	}
	if len(history) > 0 {
		latest := history[0]
		h.LatestReport = &latest
	}
	return h, nil
}

// GuestHome is the static landing page shown to visitors.
func GuestHome() *Home {
	return &Home{
		Variant:  HomeVariantGuest,
		Headline: "Find Your Path to Success",
		Tagline: "Enter any job title and we'll analyze current market demands to show you " +
			"the skills you need and resources to develop them.",
		Features: []Feature{
			{Title: "Market Analysis", Description: "We scan job postings to identify the most in-demand skills"},
			{Title: "Skill Mapping", Description: "Get a clear breakdown of technical and soft skills required"},
			{Title: "Learning Resources", Description: "Discover courses, tutorials, and materials to build those skills"},
		},
		SocialProof: []Stat{
			{Value: "10,000+", Label: "Job Searches"},
			{Value: "500+", Label: "Skills Analyzed"},
			{Value: "95%", Label: "User Success Rate"},
		},
		Testimonials: []Testimonial{
			{
				Name:    "Sarah M.",
				Role:    "Software Engineer",
				Quote:   "SkillPath helped me identify the exact skills I needed for my dream job. I landed a senior role with a 45% salary increase!",
				Outcome: "+45% salary increase",
			},
			{
				Name:    "Michael R.",
				Role:    "Data Scientist",
				Quote:   "The personalized learning recommendations saved me months of studying irrelevant topics. Focused learning is game-changing!",
				Outcome: "3 months faster job transition",
			},
		},
		FAQ: []FAQ{
			{
				Question: "Is SkillPath really free to start?",
				Answer:   "Yes! You can analyze jobs and get skill recommendations completely free. Premium features unlock advanced tracking and personalized learning paths.",
			},
			{
				Question: "How accurate is the job market data?",
				Answer:   "We analyze thousands of real job postings daily from major job boards, ensuring our insights reflect current market demands.",
			},
			{
				Question: "Can I track multiple career paths?",
				Answer:   "Absolutely! Save different job searches, compare skill requirements, and get recommendations for multiple career trajectories.",
			},
		},
		CallToAction: &Link{Label: "Start Free Today", Href: "/auth"},
	}
}
