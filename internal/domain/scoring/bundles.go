package scoring

import (
	"fmt"

	"github.com/staffscope/staffscope/internal/domain/model"
)

// Fixed recommendation bundles. Texts are part of the product contract, only
// the metric substitutions vary per subject.

func retentionBundle(overtimeHours float64) model.Recommendation {
	return model.Recommendation{
		Kind:  model.RecRetention,
		Title: "High resignation risk",
		Items: []string{
			"Conduct retention interview",
			fmt.Sprintf("Review workload (current overtime: %.0f hrs/week)", overtimeHours),
			"Consider recognition or promotion",
		},
	}
}

func promotionBundle() model.Recommendation {
	return model.Recommendation{
		Kind:  model.RecPromotion,
		Title: "Promotion candidate",
		Items: []string{
			"Eligible for next level",
			"Consider leadership training",
		},
	}
}

func trainingBundle(currentHours, recommendedHours float64) model.Recommendation {
	return model.Recommendation{
		Kind:  model.RecTraining,
		Title: fmt.Sprintf("Training recommended (current: %.0f hrs)", currentHours),
		Items: []string{
			fmt.Sprintf("Needs %.0f additional hours", recommendedHours),
			"Skills development program",
			"Mentorship opportunity",
		},
	}
}

// candidateBundles selects the fixed bundles for a scored candidate, in the
// report's section order: performance, risk, training, workload, health.
func candidateBundles(c *model.Candidate, performance, risk float64) []model.Recommendation {
	var recs []model.Recommendation

	switch {
	case performance >= candidateHighPerformance:
		recs = append(recs, model.Recommendation{
			Kind:  model.RecHighPerformer,
			Title: "High Performer Detected",
			Items: []string{
				"Fast-track for leadership training",
				"Consider special projects assignment",
				"Eligible for early promotion review",
			},
		})
	case performance <= candidateLowPerformance:
		recs = append(recs, model.Recommendation{
			Kind:  model.RecPerformanceConcern,
			Title: "Performance Concerns",
			Items: []string{
				"Implement 90-day improvement plan",
				"Assign mentor for weekly check-ins",
				"Required training: 40+ hours",
			},
		})
	default:
		recs = append(recs, model.Recommendation{
			Kind:  model.RecSolidPerformer,
			Title: "Solid Performer",
			Items: []string{
				"Recommend skill development plan",
				"Regular performance feedback",
			},
		})
	}

	switch {
	case risk > candidateHighAttritionRisk:
		recs = append(recs, model.Recommendation{
			Kind:  model.RecHighAttrition,
			Title: "High Attrition Risk",
			Items: []string{
				"Schedule retention interview immediately",
				"Review workload balance",
				"Consider spot bonus/recognition",
			},
		})
	case risk > candidateModerateRisk:
		recs = append(recs, model.Recommendation{
			Kind:  model.RecModerateRisk,
			Title: "Moderate Risk",
			Items: []string{
				"Monitor engagement closely",
				"Conduct stay interviews quarterly",
			},
		})
	}

	if c.TrainingHours < candidateTrainingShortfall {
		recs = append(recs, model.Recommendation{
			Kind:  model.RecTrainingDeficiency,
			Title: "Training Deficiency",
			Items: []string{
				fmt.Sprintf("Minimum %.0f additional training hours needed", candidateTrainingBaseline-c.TrainingHours),
				"Enroll in foundational skills program",
			},
		})
	}

	if c.OvertimeHours > candidateOvertimeLimit {
		recs = append(recs, model.Recommendation{
			Kind:  model.RecExcessiveOvertime,
			Title: "Excessive Overtime",
			Items: []string{
				"Review workload distribution",
				"Consider temporary assistance",
			},
		})
	}

	if c.SickDays > candidateSickDayLimit {
		recs = append(recs, model.Recommendation{
			Kind:  model.RecElevatedSickDays,
			Title: "Elevated Sick Days",
			Items: []string{
				"Recommend wellness check",
				"Review work-life balance",
			},
		})
	}

	return recs
}
