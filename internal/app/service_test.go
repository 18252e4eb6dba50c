package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/staffscope/staffscope/internal/adapters/dataset"
	"github.com/staffscope/staffscope/internal/adapters/email"
	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	logger.SetLevel(slog.LevelError)
}

const testCSV = `Employee_ID,Name,Department,Job_Title,Hire_Date,Performance_Score,Monthly_Salary,Work_Hours_Per_Week,Projects_Handled,Overtime_Hours,Sick_Days,Team_Size,Training_Hours,Promotions,Employee_Satisfaction_Score
1001,Alice,Engineering,Engineer,2019-03-01,4.5,5200,42,6,8,2,9,35,1,8
1002,Bob,Sales,Account Exec,2021-07-15,3.0,4100,38,3,2,3,6,12,0,6
1003,Cara,Engineering,Engineer,2022-01-10,2.0,3900,40,2,14,7,9,5,0,2
1004,Drew,HR,Recruiter,2016-05-20,4.8,4500,41,7,1,0,4,45,2,9
bad-row,,,,,,,,,,,,,,
`

func startedService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "employee_data.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := New(append([]Option{
		WithDatasetPath(path),
		WithWorkerCount(2),
		WithClock(func() time.Time { return fixed }),
	}, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestServiceStart(t *testing.T) {
	ctx := context.Background()

	Convey("Given a dataset with one malformed row", t, func() {
		svc := startedService(t)
		defer svc.Stop()

		Convey("When the summary is read", func() {
			got := svc.Summary(ctx)

			Convey("Then the good rows loaded and the bad one was dropped", func() {
				So(got.TotalEmployees, ShouldEqual, 4)
				So(got.DroppedRows, ShouldEqual, 1)
				So(got.Departments, ShouldResemble, []string{"Engineering", "Sales", "HR"})
			})
		})

		Convey("When the roster is listed with a limit", func() {
			records, err := svc.Employees(ctx, 2)

			Convey("Then the list respects load order", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].EmployeeID, ShouldEqual, "1001")
				So(records[1].EmployeeID, ShouldEqual, "1002")
			})
		})

		Convey("When a record is fetched", func() {
			rec, assessment, err := svc.Employee(ctx, "1003")

			Convey("Then derived fields and the assessment are present", func() {
				So(err, ShouldBeNil)
				So(rec.PerformanceCategory, ShouldEqual, model.CategoryLow)
				So(rec.ProductivityScore, ShouldBeGreaterThan, 0)
				So(assessment.EmployeeID, ShouldEqual, "1003")
				So(assessment.RiskScore, ShouldBeGreaterThan, 25)
				So(assessment.TrainingNeeded, ShouldBeTrue)
			})
		})

		Convey("When an unknown record is fetched", func() {
			_, _, err := svc.Employee(ctx, "9999")

			Convey("Then the lookup fails with not found", func() {
				So(errors.Is(err, dataset.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When Start is called again", func() {
			err := svc.Start(ctx)

			Convey("Then it is a no-op", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a missing dataset file", t, func() {
		svc := New(WithDatasetPath("/nonexistent/employee_data.csv"))

		Convey("When the service starts", func() {
			err := svc.Start(ctx)

			Convey("Then startup fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestServiceRankings(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService(t)
		defer svc.Stop()

		Convey("When top performers are requested", func() {
			records, err := svc.TopPerformers(ctx, 2)

			Convey("Then the highest scores come first", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].EmployeeID, ShouldEqual, "1004")
				So(records[1].EmployeeID, ShouldEqual, "1001")
			})
		})

		Convey("When at-risk employees are requested", func() {
			records, err := svc.AtRisk(ctx, 1)

			Convey("Then the lowest satisfaction comes first", func() {
				So(err, ShouldBeNil)
				So(records[0].EmployeeID, ShouldEqual, "1003")
			})
		})

		Convey("When promotion candidates are requested", func() {
			records, err := svc.PromotionCandidates(ctx, 10)

			Convey("Then only employees passing the filter appear", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(records[0].EmployeeID, ShouldEqual, "1004")
				So(records[1].EmployeeID, ShouldEqual, "1001")
			})
		})

		Convey("When training needs are requested", func() {
			records, err := svc.TrainingNeeds(ctx, 10)

			Convey("Then the lowest training hours come first", func() {
				So(err, ShouldBeNil)
				So(len(records), ShouldBeGreaterThanOrEqualTo, 2)
				So(records[0].EmployeeID, ShouldEqual, "1003")
			})
		})

		Convey("When sick leave alerts are requested", func() {
			records, err := svc.SickLeaveAlerts(ctx, 1)

			Convey("Then the highest sick day count comes first", func() {
				So(err, ShouldBeNil)
				So(records[0].EmployeeID, ShouldEqual, "1003")
			})
		})

		Convey("When department means are aggregated", func() {
			stats := svc.DepartmentMeans(ctx, []string{"Engineering"})

			Convey("Then the mean covers both engineers", func() {
				So(stats, ShouldHaveLength, 1)
				So(stats[0].Employees, ShouldEqual, 2)
				So(stats[0].MeanPerformance, ShouldAlmostEqual, 3.25, 0.0001)
			})
		})

		Convey("When the department workbook is rendered", func() {
			out, err := svc.DepartmentWorkbook(ctx, nil)

			Convey("Then XLSX bytes are produced", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(out, []byte("PK")), ShouldBeTrue)
			})
		})
	})
}

func TestServiceEvaluations(t *testing.T) {
	ctx := context.Background()

	validCandidate := func() model.Candidate {
		return model.Candidate{
			EmployeeID:       "7777",
			Name:             "New Hire",
			Department:       "Engineering",
			JobTitle:         "Engineer",
			WorkHoursPerWeek: 45,
			ProjectsHandled:  4,
			TrainingHours:    35,
			OvertimeHours:    5,
			SickDays:         1,
			Satisfaction:     8,
			RemoteFrequency:  model.RemoteSometimes,
		}
	}

	Convey("Given a started service", t, func() {
		svc := startedService(t)
		defer svc.Stop()

		Convey("When a valid candidate is submitted", func() {
			eval, token, err := svc.EvaluateCandidate(ctx, "", validCandidate())

			Convey("Then a scored evaluation and new session are returned", func() {
				So(err, ShouldBeNil)
				So(eval.ID, ShouldNotBeEmpty)
				So(token, ShouldNotBeEmpty)
				So(eval.Performance, ShouldBeBetweenOrEqual, 1, 5)
				So(eval.RiskScore, ShouldBeBetweenOrEqual, 0, 100)
				So(len(eval.Recommendations), ShouldBeGreaterThan, 0)
			})

			Convey("Then the report renders from the same session", func() {
				So(err, ShouldBeNil)
				out, rerr := svc.EvaluationReport(ctx, token)
				So(rerr, ShouldBeNil)
				So(bytes.HasPrefix(out, []byte("%PDF")), ShouldBeTrue)
			})

			Convey("Then a resubmission overwrites the session slot", func() {
				So(err, ShouldBeNil)
				second, token2, rerr := svc.EvaluateCandidate(ctx, token, validCandidate())
				So(rerr, ShouldBeNil)
				So(token2, ShouldEqual, token)
				So(second.ID, ShouldNotEqual, eval.ID)
			})
		})

		Convey("When the employee ID is not digits", func() {
			c := validCandidate()
			c.EmployeeID = "EMP-1"
			_, _, err := svc.EvaluateCandidate(ctx, "", c)

			Convey("Then validation names the field", func() {
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "employee_id")
			})
		})

		Convey("When the employee ID already exists in the roster", func() {
			c := validCandidate()
			c.EmployeeID = "1001"
			_, _, err := svc.EvaluateCandidate(ctx, "", c)

			Convey("Then the duplicate is rejected on employee_id", func() {
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "employee_id")
				So(verr.Message, ShouldContainSubstring, "already exists")
			})
		})

		Convey("When satisfaction is out of range", func() {
			c := validCandidate()
			c.Satisfaction = 12
			_, _, err := svc.EvaluateCandidate(ctx, "", c)

			Convey("Then validation names the field", func() {
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "satisfaction")
			})
		})

		Convey("When the remote frequency is unknown", func() {
			c := validCandidate()
			c.RemoteFrequency = "Fridays"
			_, _, err := svc.EvaluateCandidate(ctx, "", c)

			Convey("Then validation names the field", func() {
				var verr *model.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "remote_frequency")
			})
		})

		Convey("When a report is requested for an unknown session", func() {
			_, err := svc.EvaluationReport(ctx, "no-such-session")

			Convey("Then the lookup fails", func() {
				So(errors.Is(err, model.ErrNoEvaluation), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service with a single session slot", t, func() {
		svc := startedService(t, WithSessionSlotLimit(1))
		defer svc.Stop()

		Convey("When a second session is opened", func() {
			_, _, err1 := svc.EvaluateCandidate(ctx, "", validCandidate())
			_, _, err2 := svc.EvaluateCandidate(ctx, "", validCandidate())

			Convey("Then the second is rejected at capacity", func() {
				So(err1, ShouldBeNil)
				So(errors.Is(err2, model.ErrSessionLimit), ShouldBeTrue)
			})
		})
	})
}

func TestServiceEmailDrafts(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService(t)
		defer svc.Stop()

		Convey("When a retention draft is built for a loaded employee", func() {
			d, err := svc.EmailDraft(ctx, "1003", email.ScenarioRetention, "hr@example.com")

			Convey("Then the draft carries the employee's metrics", func() {
				So(err, ShouldBeNil)
				So(d.Subject, ShouldEqual, "Retention Discussion - 1003")
				So(d.Body, ShouldContainSubstring, "satisfaction level (2/10)")
				So(d.MailtoURL, ShouldStartWith, "mailto:hr@example.com?")
			})
		})

		Convey("When the employee does not exist", func() {
			_, err := svc.EmailDraft(ctx, "9999", email.ScenarioWellness, "")

			Convey("Then the draft fails with not found", func() {
				So(errors.Is(err, dataset.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestServiceStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t)
		defer svc.Stop()

		Convey("When stats are collected", func() {
			stats := svc.GetStats()

			Convey("Then the dataset counters are present", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["totalEmployees"], ShouldEqual, 4)
				So(stats["droppedRows"], ShouldEqual, 1)
				So(stats["departments"], ShouldEqual, 3)
			})
		})
	})
}
