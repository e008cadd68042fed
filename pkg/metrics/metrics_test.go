package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			m := NewManager(WithRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "audible")
				So(m.subsystem, ShouldEqual, "draft")
				So(m.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("custom"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithEnabled(false),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then options should be applied", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "custom")
				So(m.buckets, ShouldResemble, []float64{1, 5, 10})
				So(m.enabled, ShouldBeFalse)
			})
		})

		Convey("When passing empty option values", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRegistry(nil),
			)

			Convey("Then defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "audible")
				So(m.subsystem, ShouldEqual, "draft")
				So(m.buckets, ShouldResemble, prometheus.DefBuckets)
				So(m.registry, ShouldNotBeNil)
			})
		})
	})
}

func TestRecordingHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording suggestion metrics", func() {
			So(func() {
				RecordSuggestionRequest()
				RecordSuggestionError()
				RecordSuggestionLatency(12.5)
				UpdateSuggestionPoolSize(120)
			}, ShouldNotPanic)
		})

		Convey("When recording pick metrics", func() {
			So(func() {
				RecordPickApplied()
				RecordPickDuplicate()
				RecordPickUndone()
				RecordPickRejected()
				UpdatePoolSize(300)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/suggestions", "POST", "200")
				RecordHTTPRequestDuration("/suggestions", "POST", "200", 3.2)
			}, ShouldNotPanic)
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given a manager with recorded metrics", t, func() {
		m := NewManager(WithRegistry(prometheus.NewRegistry()))
		m.suggestionRequests.Inc()

		Convey("When scraping the handler", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			m.Handler().ServeHTTP(rec, req)

			Convey("Then the exposition should include the counter", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), "audible_draft_suggestion_requests_total"), ShouldBeTrue)
			})
		})
	})
}
