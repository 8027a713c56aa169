package goal

import (
	"strings"

	"github.com/google/uuid"
)

var templateNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("streaker/goal-templates"))

func newTemplate(name, description string, targetDays int, period Period, targetCount int, category, icon string) Template {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-")) + "-template"
	return Template{
		ID:          uuid.NewSHA1(templateNamespace, []byte(slug)),
		Slug:        slug,
		Name:        name,
		Description: description,
		TargetDays:  targetDays,
		Period:      period,
		TargetCount: targetCount,
		Category:    category,
		Icon:        icon,
		IsActive:    true,
	}
}

// DefaultTemplates is the seeded template catalog. IDs are derived from the
// slug so reseeding keeps references stable.
func DefaultTemplates() []Template {
	return []Template{
		newTemplate("30-Day Challenge", "Complete a daily activity for 30 consecutive days. Build a strong habit foundation!", 30, PeriodDaily, 1, "General", "calendar"),
		newTemplate("Weekly Warrior", "Complete 5 activities per week for 4 weeks. Stay consistent throughout the week!", 28, PeriodWeekly, 5, "General", "target"),
		newTemplate("Fitness First", "Exercise at least 3 times per week for 8 weeks. Build a sustainable fitness routine!", 56, PeriodWeekly, 3, "Exercise", "dumbbell"),
		newTemplate("Learning Journey", "Dedicate time to learning every day for 21 days. Knowledge compounds over time!", 21, PeriodDaily, 1, "Learning", "book"),
		newTemplate("Creative Sprint", "Create something new 5 times a week for 4 weeks. Unleash your creativity!", 28, PeriodWeekly, 5, "Creative", "palette"),
		newTemplate("Health Hero", "Log a health-related activity daily for 14 days. Small steps lead to big changes!", 14, PeriodDaily, 1, "Health", "heart"),
		newTemplate("Work Productivity Boost", "Complete 10 work tasks per week for 4 weeks. Master your productivity!", 28, PeriodWeekly, 10, "Work", "briefcase"),
		newTemplate("Social Butterfly", "Engage in 2 social activities per week for 4 weeks. Nurture your relationships!", 28, PeriodWeekly, 2, "Social", "users"),
	}
}
