package domain

type CategoryStatus string

const (
	CategoryExcellent CategoryStatus = "excellent"
	CategoryGood      CategoryStatus = "good"
	CategoryFair      CategoryStatus = "fair"
	CategoryPoor      CategoryStatus = "poor"
)

// CategoryScore is one tile of the analytics dashboard.
type CategoryScore struct {
	Name    string         `json:"name"`
	Score   int            `json:"score"`
	Status  CategoryStatus `json:"status"`
	Details string         `json:"details"`
}

// FitnessMetrics are the recent sleep/activity medians from the fitness source.
type FitnessMetrics struct {
	RecentSleepMinutes  float64 `json:"recentSleepMinutes"`
	RecentActiveMinutes float64 `json:"recentActiveMinutes"`
}

// DigitalActivity is per-app foreground time from the screen-time source.
type DigitalActivity struct {
	TotalSeconds float64            `json:"totalSeconds"`
	Apps         map[string]float64 `json:"apps"`
}

type CategoryReport struct {
	OverallScore       int           `json:"overallScore"`
	EmotionalStability CategoryScore `json:"emotionalStability"`
	Productivity       CategoryScore `json:"productivity"`
	PhysicalWellness   CategoryScore `json:"physicalWellness"`
}
