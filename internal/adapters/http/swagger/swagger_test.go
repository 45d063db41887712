package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSwaggerRoutes(t *testing.T) {
	Convey("Given a mux with swagger routes registered", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("When requesting /swagger", func() {
			req := httptest.NewRequest(http.MethodGet, "/swagger", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should serve the ReDoc shell", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "redoc")
			})
		})

		Convey("When requesting /openapi.yaml", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should serve the embedded spec", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "yaml")
				So(w.Body.String(), ShouldContainSubstring, "gridrate API")
				So(w.Body.String(), ShouldContainSubstring, "/rankings/current")
			})
		})
	})
}

func TestRegisterNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("When registering", func() {
			So(func() { Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
