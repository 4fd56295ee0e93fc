//nolint:revive // types is a standard Go package name pattern
package types

// SeedProfile returns the placeholder Master Profile used on first run,
// before the user imports or edits their own resume. Each call returns a
// fresh instance; callers may mutate the result freely.
func SeedProfile() *Profile {
	return &Profile{
		Name:     "Alex Mercer",
		Email:    "alex.mercer@example.com",
		Phone:    "555-0199",
		LinkedIn: "linkedin.com/in/alexmercer",
		Summary: "Senior Backend Engineer focused on scalable architecture and data consistency. " +
			"Proven track record of reducing latency and optimizing database queries in high-throughput environments.",
		Experiences: []Experience{
			{
				ID:        "1",
				Company:   "FinTech Global",
				Role:      "Senior Python Developer",
				StartDate: "2021-03",
				EndDate:   "Present",
				Location:  "New York, NY",
				Bullets: []Bullet{
					{ID: "b1", Content: "Utilized advanced methodologies to comprehensively audit the financial systems, ensuring total accuracy.", IsVisible: true},
					{ID: "b2", Content: "Directed a team of 4 analysts to automate monthly reporting, saving 12 hours per week.", IsVisible: true},
					{ID: "b3", Content: "Refactored legacy codebase to improve maintainability and reduce technical debt.", IsVisible: true},
				},
			},
			{
				ID:        "2",
				Company:   "DataCorp Solutions",
				Role:      "Software Engineer",
				StartDate: "2018-06",
				EndDate:   "2021-02",
				Location:  "Remote",
				Bullets: []Bullet{
					{ID: "b4", Content: "Spearheaded the migration of on-premise servers to AWS, achieving great synergy.", IsVisible: true},
					{ID: "b5", Content: "Built internal tooling for data processing using Python and Pandas.", IsVisible: true},
				},
			},
		},
	}
}
