// Package email builds HR outreach drafts from employee records. Drafts are
// never sent; they are returned as subject, body, and a mailto link for the
// operator's own mail client.
package email

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/metrics"
)

// Scenario selects one of the fixed outreach templates.
type Scenario string

// Outreach scenarios, one per risk-and-growth tab.
const (
	ScenarioRetention Scenario = "retention"
	ScenarioPromotion Scenario = "promotion"
	ScenarioTraining  Scenario = "training"
	ScenarioWellness  Scenario = "wellness"
)

// Valid reports whether s is a known scenario.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioRetention, ScenarioPromotion, ScenarioTraining, ScenarioWellness:
		return true
	}
	return false
}

// Draft is a prepared outreach email for one employee.
type Draft struct {
	Scenario   Scenario `json:"scenario"`
	EmployeeID string   `json:"employee_id"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	MailtoURL  string   `json:"mailto_url"`
}

// NewDraft builds the draft for one employee and scenario. The recipient may
// be empty; the mailto link then opens with a blank To field.
func NewDraft(rec *model.EmployeeRecord, scenario Scenario, recipient string) (Draft, error) {
	var subject, body string

	switch scenario {
	case ScenarioRetention:
		subject = fmt.Sprintf("Retention Discussion - %s", rec.EmployeeID)
		body = retentionBody(rec)
	case ScenarioPromotion:
		subject = fmt.Sprintf("Promotion Recommendation - %s", rec.EmployeeID)
		body = promotionBody(rec)
	case ScenarioTraining:
		subject = fmt.Sprintf("Training Recommendation - %s", rec.EmployeeID)
		body = trainingBody(rec)
	case ScenarioWellness:
		subject = fmt.Sprintf("Wellness Check-In - %s", rec.EmployeeID)
		body = wellnessBody(rec)
	default:
		return Draft{}, fmt.Errorf("%w: %s", ErrUnknownScenario, scenario)
	}

	metrics.RecordEmailDraft(string(scenario))
	return Draft{
		Scenario:   scenario,
		EmployeeID: rec.EmployeeID,
		Subject:    subject,
		Body:       body,
		MailtoURL:  mailtoURL(recipient, subject, body),
	}, nil
}

func retentionBody(rec *model.EmployeeRecord) string {
	return fmt.Sprintf(`Dear %s,

We've noticed some indicators that you might be considering other opportunities. We value your contributions and would like to understand how we can better support you.

Some areas we'd like to discuss:
- Your current satisfaction level (%s/10)
- Workload balance (current overtime: %s hrs/week)
- Career development opportunities

Would you be available for a conversation this week to discuss how we can improve your experience?

Best regards,
[Your Name]
[Your Position]`,
		greeting(rec), num(rec.SatisfactionScore), num(rec.OvertimeHours))
}

func promotionBody(rec *model.EmployeeRecord) string {
	subject := rec.Name
	if subject == "" {
		subject = rec.EmployeeID
	}
	return fmt.Sprintf(`Dear HR Team,

I'm recommending %s for promotion consideration based on their outstanding performance and contributions.

Key highlights:
- Consistent high performance (%s/5)
- Tenure with company: %.1f years
- Completed %s training hours
- Currently handling %d projects

Suggested next steps:
1. Schedule promotion review meeting
2. Discuss potential new role and responsibilities
3. Plan announcement timeline

Please let me know your availability to discuss.

Best regards,
[Your Name]
[Your Position]`,
		subject, num(rec.PerformanceScore), rec.TenureYears,
		num(rec.TrainingHours), rec.ProjectsHandled)
}

func trainingBody(rec *model.EmployeeRecord) string {
	return fmt.Sprintf(`Dear %s,

As part of our ongoing development program, I'd like to recommend some training opportunities that would help support your growth.

Current status:
- Training hours completed: %s
- Performance score: %s/5
- Projects handled: %d

Recommended training areas:
1. Core skills development (estimated 20 hours)
2. Advanced %s methodologies
3. Professional effectiveness workshops

Would you be available to discuss a personalized training plan?

Best regards,
[Your Name]
[Your Position]`,
		greeting(rec), num(rec.TrainingHours), num(rec.PerformanceScore),
		rec.ProjectsHandled, rec.Department)
}

func wellnessBody(rec *model.EmployeeRecord) string {
	return fmt.Sprintf(`Dear %s,

I wanted to check in as I noticed you've had %d sick days recently. Your health and wellbeing are important to us.

We'd like to offer:
- A confidential discussion with HR about any support you might need
- Information about our wellness programs
- Flexible work options if helpful

Please know we're here to support you. Would you be available for a conversation?

Best regards,
[Your Name]
[Your Position]`,
		greeting(rec), rec.SickDays)
}

// greeting addresses the employee by name, falling back to a generic salute.
func greeting(rec *model.EmployeeRecord) string {
	if rec.Name != "" {
		return rec.Name
	}
	return "Employee"
}

// mailtoURL encodes newlines and spaces only, matching mail client behavior
// for plain text bodies.
func mailtoURL(recipient, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		recipient, encode(subject), encode(body))
}

func encode(s string) string {
	s = strings.ReplaceAll(s, "\n", "%0D%0A")
	return strings.ReplaceAll(s, " ", "%20")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
