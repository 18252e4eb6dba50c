// Package scoring implements the employee scoring engine: the load-time
// derivation pass plus the risk, promotion, training, and candidate formulas.
package scoring

import (
	"time"

	"github.com/staffscope/staffscope/internal/domain/model"
)

// Fixed thresholds and weights. The two risk formulas intentionally differ:
// existing employees carry tenure and promotion history, new candidates do not.
const (
	lowPerformanceMax    = 2.5
	mediumPerformanceMax = 3.5

	highRiskThreshold = 50

	promotionMinPerformance = 4.0
	promotionMinTenure      = 2.0
	promotionMinTraining    = 30.0

	trainingNeedHours       = 20.0
	trainingNeedPerformance = 3.0
	trainingTargetHours     = 40.0

	candidateHighAttritionRisk = 60
	candidateModerateRisk      = 30
	candidateHighPerformance   = 4.0
	candidateLowPerformance    = 2.0
	candidateTrainingShortfall = 15.0
	candidateTrainingBaseline  = 25.0
	candidateOvertimeLimit     = 10.0
	candidateSickDayLimit      = 5.0
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock overrides the time source used for tenure derivation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine computes derived fields and scores. Safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Maxima carries the dataset-wide maxima the productivity formula normalizes
// against. Collect once over the full dataset, then apply row-wise.
type Maxima struct {
	ProjectsHandled float64
	TrainingHours   float64
}

// CollectMaxima is the first derivation pass: find the dataset-wide maxima.
func CollectMaxima(records []model.EmployeeRecord) Maxima {
	var m Maxima
	for i := range records {
		if p := float64(records[i].ProjectsHandled); p > m.ProjectsHandled {
			m.ProjectsHandled = p
		}
		if t := records[i].TrainingHours; t > m.TrainingHours {
			m.TrainingHours = t
		}
	}
	return m
}

// norm returns value/max, or 0 when the dataset-wide max is 0. A zero max
// means the term cannot contribute; dividing would be undefined.
func norm(value, max float64) float64 {
	if max == 0 {
		return 0
	}
	return value / max
}

// CategorizePerformance buckets a performance score into half-open (lo, hi]
// intervals: Low <= 2.5 < Medium <= 3.5 < High.
func CategorizePerformance(score float64) model.PerformanceCategory {
	switch {
	case score <= lowPerformanceMax:
		return model.CategoryLow
	case score <= mediumPerformanceMax:
		return model.CategoryMedium
	default:
		return model.CategoryHigh
	}
}

// Productivity computes the 0-100 productivity score for one record using the
// dataset-wide maxima. This is the second derivation pass, applied row-wise.
func Productivity(rec *model.EmployeeRecord, m Maxima) float64 {
	return 100 * (0.4*rec.PerformanceScore +
		0.3*norm(float64(rec.ProjectsHandled), m.ProjectsHandled) +
		0.2*norm(rec.TrainingHours, m.TrainingHours) +
		0.1*rec.SatisfactionScore/10)
}

// Derive fills the derived fields of one record in place.
func (e *Engine) Derive(rec *model.EmployeeRecord, m Maxima) {
	rec.TenureYears = model.TenureYears(rec.HireDate, e.now())
	rec.PerformanceCategory = CategorizePerformance(rec.PerformanceScore)
	rec.ProductivityScore = Productivity(rec, m)
}

// RiskScore computes the existing-employee resignation risk, clamped to
// [0,100]. Satisfaction, performance, promotions, and tenure reduce risk;
// overtime increases it.
func RiskScore(rec *model.EmployeeRecord) float64 {
	risk := 30*(10-rec.SatisfactionScore)/10 +
		20*(5-rec.PerformanceScore)/5 +
		15*rec.OvertimeHours/40 -
		10*float64(rec.Promotions) -
		25*rec.TenureYears/10
	return clamp(0, 100, risk)
}

// HighRisk reports whether a risk score crosses the retention threshold.
func HighRisk(risk float64) bool {
	return risk > highRiskThreshold
}

// PromotionEligible applies the three-threshold promotion gate. The returned
// score (performance*10 + tenure*5, uncapped) is informational and only
// meaningful when eligible is true.
func PromotionEligible(rec *model.EmployeeRecord) (eligible bool, score float64) {
	eligible = rec.PerformanceScore >= promotionMinPerformance &&
		rec.TenureYears >= promotionMinTenure &&
		rec.TrainingHours >= promotionMinTraining
	if !eligible {
		return false, 0
	}
	return true, rec.PerformanceScore*10 + rec.TenureYears*5
}

// TrainingNeed flags employees short on training or performance and returns
// the recommended additional hours.
func TrainingNeed(rec *model.EmployeeRecord) (needed bool, hours float64) {
	needed = rec.TrainingHours < trainingNeedHours || rec.PerformanceScore < trainingNeedPerformance
	if !needed {
		return false, 0
	}
	hours = trainingTargetHours - rec.TrainingHours
	if hours < trainingNeedHours {
		hours = trainingNeedHours
	}
	return true, hours
}

// Assess computes the full derived view of one existing employee.
func (e *Engine) Assess(rec *model.EmployeeRecord) model.Assessment {
	a := model.Assessment{
		EmployeeID: rec.EmployeeID,
		RiskScore:  RiskScore(rec),
	}
	a.HighRisk = HighRisk(a.RiskScore)
	if a.HighRisk {
		a.Recommendations = append(a.Recommendations, retentionBundle(rec.OvertimeHours))
	}

	a.PromotionEligible, a.PromotionScore = PromotionEligible(rec)
	if a.PromotionEligible {
		a.Recommendations = append(a.Recommendations, promotionBundle())
	}

	a.TrainingNeeded, a.RecommendedHours = TrainingNeed(rec)
	if a.TrainingNeeded {
		a.Recommendations = append(a.Recommendations, trainingBundle(rec.TrainingHours, a.RecommendedHours))
	}

	return a
}

// PredictPerformance computes a candidate's predicted performance on the 1-5
// scale from the submitted productivity metrics.
func PredictPerformance(c *model.Candidate) float64 {
	perf := 0.4*(c.WorkHoursPerWeek/50)*5 +
		0.3*(c.ProjectsHandled/5)*5 +
		0.2*(c.TrainingHours/50)*5 +
		0.1*(c.Satisfaction/10)*5
	return clamp(1, 5, perf)
}

// CandidateRisk computes the new-candidate resignation risk, clamped to
// [0,100]. Candidates have no promotion history and no tenure term.
func CandidateRisk(c *model.Candidate, performance float64) float64 {
	risk := 40*(10-c.Satisfaction)/10 +
		30*(5-performance)/5 +
		20*c.OvertimeHours/40
	return clamp(0, 100, risk)
}

// Evaluate scores a validated candidate and selects its recommendation
// bundles. Validation happens before this call; Evaluate never fails.
func (e *Engine) Evaluate(c *model.Candidate) (performance, risk float64, recs []model.Recommendation) {
	performance = PredictPerformance(c)
	risk = CandidateRisk(c, performance)
	recs = candidateBundles(c, performance, risk)
	return performance, risk, recs
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
