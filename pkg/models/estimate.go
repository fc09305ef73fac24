package models

// HoursBand is the effort estimate with its fixed ±20% confidence band.
type HoursBand struct {
	Min     float64 `json:"min"`
	Typical float64 `json:"typical"`
	Max     float64 `json:"max"`
}

// RegionCost is the cost projection for one rate region.
type RegionCost struct {
	Region    string  `json:"region"`
	Currency  string  `json:"currency"`
	Min       float64 `json:"min"`
	Typical   float64 `json:"typical"`
	Max       float64 `json:"max"`
	Formatted string  `json:"formatted"`
}

// ActivityHours splits typical hours into fixed activity ratios.
type ActivityHours struct {
	Analysis       float64 `json:"analysis"`
	Design         float64 `json:"design"`
	Implementation float64 `json:"implementation"`
	Testing        float64 `json:"testing"`
	Documentation  float64 `json:"documentation"`
}

// CocomoEstimate is the full parametric cost estimate for a repository.
type CocomoEstimate struct {
	Methodology        string                `json:"methodology"`
	KLOC               float64               `json:"kloc"`
	EffortPersonMonths float64               `json:"effort_person_months"`
	DurationMonths     float64               `json:"duration_months"`
	TeamSize           float64               `json:"team_size"`
	EAF                float64               `json:"eaf"`
	Hours              HoursBand             `json:"hours"`
	Cost               map[string]RegionCost `json:"cost"`
	Activities         ActivityHours         `json:"activities"`
}
