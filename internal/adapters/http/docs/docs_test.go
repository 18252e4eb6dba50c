package docs_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/staffscope/staffscope/internal/adapters/http/docs"
)

func TestRegister(t *testing.T) {
	Convey("Given the documentation routes", t, func() {
		mux := http.NewServeMux()
		docs.Register(context.Background(), mux)
		ts := httptest.NewServer(mux)
		defer ts.Close()

		Convey("When the docs page is requested", func() {
			resp, err := http.Get(ts.URL + "/api-docs")

			Convey("Then the ReDoc shell is served", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "text/html")

				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "redoc")
				So(string(body), ShouldContainSubstring, "/openapi.yaml")
			})
		})

		Convey("When the OpenAPI document is requested", func() {
			resp, err := http.Get(ts.URL + "/openapi.yaml")

			Convey("Then the embedded YAML is served", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "openapi: 3.0.3")
				So(string(body), ShouldContainSubstring, "/evaluations/report")
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("When registration is attempted", func() {
			Convey("Then it panics", func() {
				So(func() { docs.Register(context.Background(), nil) }, ShouldPanic)
			})
		})
	})
}
