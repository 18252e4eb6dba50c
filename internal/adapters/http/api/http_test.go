package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/staffscope/staffscope/internal/adapters/dataset"
	"github.com/staffscope/staffscope/internal/adapters/email"
	"github.com/staffscope/staffscope/internal/adapters/http/api"
	"github.com/staffscope/staffscope/internal/domain/model"
)

// Mock implementations for testing
type mockDeps struct {
	summary     dataset.Summary
	employees   []model.EmployeeRecord
	assessment  model.Assessment
	means       []dataset.DepartmentStats
	workbook    []byte
	evaluation  model.Evaluation
	token       string
	evalErr     error
	report      []byte
	reportErr   error
	draft       email.Draft
	draftErr    error
	rankingsErr error
}

func (m *mockDeps) Summary(ctx context.Context) dataset.Summary {
	return m.summary
}

func (m *mockDeps) Employees(ctx context.Context, limit int) ([]model.EmployeeRecord, error) {
	if limit > len(m.employees) {
		return m.employees, nil
	}
	return m.employees[:limit], nil
}

func (m *mockDeps) Employee(ctx context.Context, id string) (model.EmployeeRecord, model.Assessment, error) {
	for _, rec := range m.employees {
		if rec.EmployeeID == id {
			return rec, m.assessment, nil
		}
	}
	return model.EmployeeRecord{}, model.Assessment{}, dataset.ErrNotFound
}

func (m *mockDeps) ranking(n int) ([]model.EmployeeRecord, error) {
	if m.rankingsErr != nil {
		return nil, m.rankingsErr
	}
	if n > len(m.employees) {
		return m.employees, nil
	}
	return m.employees[:n], nil
}

func (m *mockDeps) TopPerformers(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return m.ranking(n)
}

func (m *mockDeps) AtRisk(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return m.ranking(n)
}

func (m *mockDeps) PromotionCandidates(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return m.ranking(n)
}

func (m *mockDeps) TrainingNeeds(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return m.ranking(n)
}

func (m *mockDeps) SickLeaveAlerts(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return m.ranking(n)
}

func (m *mockDeps) DepartmentMeans(ctx context.Context, departments []string) []dataset.DepartmentStats {
	return m.means
}

func (m *mockDeps) DepartmentWorkbook(ctx context.Context, departments []string) ([]byte, error) {
	return m.workbook, nil
}

func (m *mockDeps) EvaluateCandidate(ctx context.Context, token string, c model.Candidate) (model.Evaluation, string, error) {
	if m.evalErr != nil {
		return model.Evaluation{}, "", m.evalErr
	}
	return m.evaluation, m.token, nil
}

func (m *mockDeps) EvaluationReport(ctx context.Context, token string) ([]byte, error) {
	if m.reportErr != nil {
		return nil, m.reportErr
	}
	return m.report, nil
}

func (m *mockDeps) EmailDraft(ctx context.Context, id string, scenario email.Scenario, recipient string) (email.Draft, error) {
	if m.draftErr != nil {
		return email.Draft{}, m.draftErr
	}
	return m.draft, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestServer(deps *mockDeps) *httptest.Server {
	mux := http.NewServeMux()
	srv := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 100)
	srv.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func roster() []model.EmployeeRecord {
	return []model.EmployeeRecord{
		{EmployeeID: "1001", Department: "Engineering", PerformanceScore: 4.5},
		{EmployeeID: "1002", Department: "Sales", PerformanceScore: 3.1},
		{EmployeeID: "1003", Department: "HR", PerformanceScore: 2.2},
	}
}

func TestSummaryEndpoint(t *testing.T) {
	Convey("Given a server with a loaded dataset", t, func() {
		deps := &mockDeps{
			summary: dataset.Summary{
				TotalEmployees:  3,
				DroppedRows:     1,
				MeanPerformance: 3.27,
				Departments:     []string{"Engineering", "Sales", "HR"},
			},
		}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When GET /summary is requested", func() {
			resp, err := http.Get(ts.URL + "/summary")

			Convey("Then the KPI view is returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got dataset.Summary
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.TotalEmployees, ShouldEqual, 3)
				So(got.DroppedRows, ShouldEqual, 1)
				So(got.Departments, ShouldHaveLength, 3)
			})
		})
	})
}

func TestEmployeesEndpoints(t *testing.T) {
	Convey("Given a server with three employees", t, func() {
		deps := &mockDeps{
			employees:  roster(),
			assessment: model.Assessment{EmployeeID: "1001", RiskScore: 12.5},
		}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When the roster is listed", func() {
			resp, err := http.Get(ts.URL + "/employees")

			Convey("Then every record is returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got []model.EmployeeRecord
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got, ShouldHaveLength, 3)
			})
		})

		Convey("When the roster is listed with a limit", func() {
			resp, err := http.Get(ts.URL + "/employees?limit=2")

			Convey("Then the list is truncated", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()

				var got []model.EmployeeRecord
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got, ShouldHaveLength, 2)
			})
		})

		Convey("When the limit exceeds the maximum", func() {
			resp, err := http.Get(ts.URL + "/employees?limit=500")

			Convey("Then the request is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When one employee is fetched", func() {
			resp, err := http.Get(ts.URL + "/employees/1001")

			Convey("Then the record and assessment are returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got struct {
					Employee   model.EmployeeRecord `json:"employee"`
					Assessment model.Assessment     `json:"assessment"`
				}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Employee.EmployeeID, ShouldEqual, "1001")
				So(got.Assessment.RiskScore, ShouldEqual, 12.5)
			})
		})

		Convey("When an unknown employee is fetched", func() {
			resp, err := http.Get(ts.URL + "/employees/9999")

			Convey("Then the lookup is a 404", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRankingsEndpoint(t *testing.T) {
	Convey("Given a server with ranking data", t, func() {
		deps := &mockDeps{employees: roster()}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When each ranking view is requested", func() {
			views := []string{"top-performers", "at-risk", "promotions", "training", "sick-leave"}

			Convey("Then every view responds with a list", func() {
				for _, view := range views {
					resp, err := http.Get(ts.URL + "/rankings/" + view)
					So(err, ShouldBeNil)
					So(resp.StatusCode, ShouldEqual, http.StatusOK)

					var got []model.EmployeeRecord
					So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
					resp.Body.Close()
					So(len(got), ShouldBeGreaterThan, 0)
				}
			})
		})

		Convey("When an unknown view is requested", func() {
			resp, err := http.Get(ts.URL + "/rankings/reorgs")

			Convey("Then the view is a 404", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the limit is malformed", func() {
			resp, err := http.Get(ts.URL + "/rankings/at-risk?limit=zero")

			Convey("Then the request is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestDepartmentsEndpoints(t *testing.T) {
	Convey("Given a server with department aggregates", t, func() {
		deps := &mockDeps{
			means:    []dataset.DepartmentStats{{Department: "Engineering", Employees: 2}},
			workbook: []byte("PK\x03\x04workbook"),
		}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When the summary is requested", func() {
			resp, err := http.Get(ts.URL + "/departments/summary")

			Convey("Then the aggregates are returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got []dataset.DepartmentStats
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Department, ShouldEqual, "Engineering")
			})
		})

		Convey("When the workbook export is requested", func() {
			resp, err := http.Get(ts.URL + "/departments/summary.xlsx")

			Convey("Then the XLSX attachment is returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "spreadsheetml")
				So(resp.Header.Get("Content-Disposition"), ShouldContainSubstring, "department_summary.xlsx")
			})
		})
	})
}

func TestEvaluationsEndpoints(t *testing.T) {
	Convey("Given a server accepting evaluations", t, func() {
		deps := &mockDeps{
			evaluation: model.Evaluation{ID: "eval-1", Performance: 4.2, RiskScore: 35},
			token:      "session-abc",
			report:     []byte("%PDF-1.4 fake"),
		}
		ts := newTestServer(deps)
		defer ts.Close()

		submission := `{"employee_id":"4521","department":"Engineering","job_title":"Engineer",` +
			`"work_hours_per_week":45,"projects_handled":4,"training_hours":12,` +
			`"overtime_hours":2,"sick_days":1,"satisfaction":7,"remote_frequency":"Sometimes"}`

		Convey("When a candidate is submitted", func() {
			resp, err := http.Post(ts.URL+"/evaluations", "application/json", strings.NewReader(submission))

			Convey("Then the evaluation and session token are returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				So(resp.Header.Get(api.SessionTokenHeader), ShouldEqual, "session-abc")

				var got struct {
					Evaluation   model.Evaluation `json:"evaluation"`
					SessionToken string           `json:"session_token"`
				}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Evaluation.ID, ShouldEqual, "eval-1")
				So(got.SessionToken, ShouldEqual, "session-abc")
			})
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(ts.URL+"/evaluations", "application/json", strings.NewReader("{nope"))

			Convey("Then the request is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When validation fails upstream", func() {
			deps.evalErr = model.NewValidationError("employee_id", "employee ID already exists in dataset")
			resp, err := http.Post(ts.URL+"/evaluations", "application/json", strings.NewReader(submission))

			Convey("Then a 422 names the offending field", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)

				var got struct {
					Code    string `json:"code"`
					Message string `json:"message"`
					Field   string `json:"field"`
				}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Code, ShouldEqual, "validation_failed")
				So(got.Field, ShouldEqual, "employee_id")
			})
		})

		Convey("When the report is requested with a token", func() {
			req, _ := http.NewRequest(http.MethodGet, ts.URL+"/evaluations/report", nil)
			req.Header.Set(api.SessionTokenHeader, "session-abc")
			resp, err := http.DefaultClient.Do(req)

			Convey("Then the PDF attachment is returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldEqual, "application/pdf")

				var buf bytes.Buffer
				_, _ = buf.ReadFrom(resp.Body)
				So(strings.HasPrefix(buf.String(), "%PDF"), ShouldBeTrue)
			})
		})

		Convey("When the report is requested without a token", func() {
			resp, err := http.Get(ts.URL + "/evaluations/report")

			Convey("Then the request is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the session has no evaluation", func() {
			deps.reportErr = model.ErrNoEvaluation
			req, _ := http.NewRequest(http.MethodGet, ts.URL+"/evaluations/report", nil)
			req.Header.Set(api.SessionTokenHeader, "session-xyz")
			resp, err := http.DefaultClient.Do(req)

			Convey("Then the report is a 404", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestEmailEndpoint(t *testing.T) {
	Convey("Given a server with drafts available", t, func() {
		deps := &mockDeps{
			employees: roster(),
			draft: email.Draft{
				Scenario:   email.ScenarioRetention,
				EmployeeID: "1001",
				Subject:    "Retention Discussion - 1001",
				Body:       "Dear Employee,",
				MailtoURL:  "mailto:?subject=Retention%20Discussion%20-%201001&body=Dear%20Employee,",
			},
		}
		ts := newTestServer(deps)
		defer ts.Close()

		Convey("When a retention draft is requested", func() {
			resp, err := http.Get(ts.URL + "/employees/1001/email?scenario=retention")

			Convey("Then the draft is returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got struct {
					Draft email.Draft `json:"draft"`
				}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Draft.Subject, ShouldEqual, "Retention Discussion - 1001")
			})
		})

		Convey("When the scenario is unknown", func() {
			resp, err := http.Get(ts.URL + "/employees/1001/email?scenario=spam")

			Convey("Then the request is rejected", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the employee does not exist", func() {
			deps.draftErr = dataset.ErrNotFound
			resp, err := http.Get(ts.URL + "/employees/9999/email?scenario=wellness")

			Convey("Then the draft is a 404", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a server with a stats provider", t, func() {
		ts := newTestServer(&mockDeps{})
		defer ts.Close()

		Convey("When GET /stats is requested", func() {
			resp, err := http.Get(ts.URL + "/stats")

			Convey("Then the stats map is returned", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got["started"], ShouldEqual, true)
			})
		})
	})
}
