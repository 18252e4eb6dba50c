package model

import "time"

// RecommendationKind identifies a fixed recommendation bundle.
type RecommendationKind string

// Recommendation bundle kinds emitted by the scoring engine.
const (
	RecHighPerformer      RecommendationKind = "high_performer"
	RecPerformanceConcern RecommendationKind = "performance_concern"
	RecSolidPerformer     RecommendationKind = "solid_performer"
	RecHighAttrition      RecommendationKind = "high_attrition"
	RecModerateRisk       RecommendationKind = "moderate_risk"
	RecTrainingDeficiency RecommendationKind = "training_deficiency"
	RecExcessiveOvertime  RecommendationKind = "excessive_overtime"
	RecElevatedSickDays   RecommendationKind = "elevated_sick_days"
	RecRetention          RecommendationKind = "retention"
	RecPromotion          RecommendationKind = "promotion"
	RecTraining           RecommendationKind = "training"
)

// Recommendation is one fixed-text bundle, optionally parameterized by the
// subject's live metrics.
type Recommendation struct {
	Kind  RecommendationKind `json:"kind"`
	Title string             `json:"title"`
	Items []string           `json:"items"`
}

// Evaluation is a scored candidate submission. One evaluation occupies the
// session's slot until the next submission overwrites it.
type Evaluation struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	Candidate       Candidate        `json:"candidate"`
	Performance     float64          `json:"performance"`
	RiskScore       float64          `json:"risk_score"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Assessment is the derived view of one existing employee: resignation risk,
// promotion eligibility, and training need, with their recommendation bundles.
type Assessment struct {
	EmployeeID string `json:"employee_id"`

	RiskScore float64 `json:"risk_score"`
	HighRisk  bool    `json:"high_risk"`

	PromotionEligible bool    `json:"promotion_eligible"`
	PromotionScore    float64 `json:"promotion_score,omitempty"`

	TrainingNeeded   bool    `json:"training_needed"`
	RecommendedHours float64 `json:"recommended_training_hours,omitempty"`

	Recommendations []Recommendation `json:"recommendations"`
}
