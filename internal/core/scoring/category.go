package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

const noDataDetails = "No data available"

func categoryStatus(score int) domain.CategoryStatus {
	switch {
	case score >= 80:
		return domain.CategoryExcellent
	case score >= 60:
		return domain.CategoryGood
	case score >= 40:
		return domain.CategoryFair
	default:
		return domain.CategoryPoor
	}
}

// EmotionalStabilityCategory wraps an EmotionStability score for the
// dashboard, naming the two most frequent emotions.
func EmotionalStabilityCategory(score int, percentages map[domain.Emotion]int) domain.CategoryScore {
	if score == 0 {
		return domain.CategoryScore{
			Name:    "Emotional Stability",
			Status:  domain.CategoryPoor,
			Details: "No data - start monitoring emotions",
		}
	}

	labels := make([]domain.Emotion, 0, len(percentages))
	for e := range percentages {
		labels = append(labels, e)
	}
	sort.Slice(labels, func(i, j int) bool {
		if percentages[labels[i]] != percentages[labels[j]] {
			return percentages[labels[i]] > percentages[labels[j]]
		}
		return labels[i] < labels[j]
	})

	top := make([]string, 0, 2)
	for _, e := range labels[:min(2, len(labels))] {
		top = append(top, fmt.Sprintf("%s %d%%", e, percentages[e]))
	}
	details := strings.Join(top, ", ")
	if details == "" {
		details = "Tracking emotions..."
	}

	return domain.CategoryScore{
		Name:    "Emotional Stability",
		Score:   score,
		Status:  categoryStatus(score),
		Details: details,
	}
}

// PhysicalWellness scores sleep against a 7-9 hour optimum and activity
// against a 60 minute target, 50 points each.
func PhysicalWellness(m *domain.FitnessMetrics) domain.CategoryScore {
	if m == nil {
		return domain.CategoryScore{Name: "Physical Wellness", Status: domain.CategoryPoor, Details: noDataDetails}
	}

	sleep := m.RecentSleepMinutes
	var sleepScore int
	switch {
	case sleep >= 420 && sleep <= 540:
		sleepScore = 50
	case sleep >= 360 && sleep < 420, sleep > 540 && sleep <= 600:
		sleepScore = 35
	default:
		sleepScore = 20
	}

	active := m.RecentActiveMinutes
	var activityScore int
	switch {
	case active >= 60:
		activityScore = 50
	case active >= 30:
		activityScore = 35
	case active >= 15:
		activityScore = 20
	default:
		activityScore = 10
	}

	score := sleepScore + activityScore
	return domain.CategoryScore{
		Name:    "Physical Wellness",
		Score:   score,
		Status:  categoryStatus(score),
		Details: fmt.Sprintf("%dh sleep, %dmin active", int(math.Round(sleep/60)), int(math.Round(active))),
	}
}

// ProductivityBalance rewards using several apps (up to 50 points) without
// any single one dominating the session (up to 50 points).
func ProductivityBalance(a *domain.DigitalActivity) domain.CategoryScore {
	if a == nil || a.Apps == nil {
		return domain.CategoryScore{Name: "Productivity Balance", Status: domain.CategoryPoor, Details: noDataDetails}
	}

	total := a.TotalSeconds
	if total == 0 {
		total = 1
	}

	diversity := math.Min(float64(len(a.Apps))*10, 50)
	maxTime := 1.0
	for _, secs := range a.Apps {
		maxTime = math.Max(maxTime, secs)
	}
	balance := clamp((1-maxTime/total)*100, 0, 50)

	score := int(math.Round(diversity + balance))
	return domain.CategoryScore{
		Name:    "Productivity Balance",
		Score:   score,
		Status:  categoryStatus(score),
		Details: fmt.Sprintf("%d apps used with balanced time distribution", len(a.Apps)),
	}
}

// OverallScore averages the category scores with equal weight. The emotional
// score only counts once monitoring has produced one.
func OverallScore(productivity, physical, emotional int) int {
	scores := []int{productivity, physical}
	if emotional > 0 {
		scores = append(scores, emotional)
	}
	var sum int
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}
