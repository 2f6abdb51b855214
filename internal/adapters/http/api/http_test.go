package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/boruto/internal/adapters/http/api"
	"github.com/okian/boruto/internal/adapters/repository"
	service "github.com/okian/boruto/internal/app"
	"github.com/okian/boruto/internal/domain/types"
	"github.com/okian/boruto/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	svc, err := service.New(ctx)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return api.NewServer(svc, api.WithCORSOrigins([]string{"http://localhost:4200"})).Handler(ctx)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) types.Response {
	var resp types.Response
	So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
	return resp
}

func TestRootEndpoint(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler(t)

		Convey("When requesting the root endpoint", func() {
			w := get(h, "/")

			Convey("Then it returns the exact welcome string", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, `"Welcome to Boruto API!"`)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			})
		})
	})
}

func TestHeroesEndpoint(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler(t)
		ctx := context.Background()
		catalog, err := repository.NewDefault(ctx)
		So(err, ShouldBeNil)

		Convey("When querying every page", func() {
			for page := 1; page <= 5; page++ {
				w := get(h, fmt.Sprintf("/boruto/heroes?page=%d", page))
				So(w.Code, ShouldEqual, http.StatusOK)

				want, err := catalog.Page(ctx, page)
				So(err, ShouldBeNil)
				resp := decode(w)
				So(resp.Success, ShouldBeTrue)
				So(resp.Message, ShouldEqual, "ok")
				So(resp.Heroes, ShouldResemble, want.Heroes)
				if page == 1 {
					So(resp.PrevPage, ShouldBeNil)
				} else {
					So(*resp.PrevPage, ShouldEqual, page-1)
				}
				if page == 5 {
					So(resp.NextPage, ShouldBeNil)
				} else {
					So(*resp.NextPage, ShouldEqual, page+1)
				}
			}
		})

		Convey("When the page parameter is absent", func() {
			w := get(h, "/boruto/heroes")

			Convey("Then the first page is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				resp := decode(w)
				So(resp.Heroes, ShouldHaveLength, 5)
				So(resp.Heroes[0].Name, ShouldEqual, "Sasuke")
				So(*resp.NextPage, ShouldEqual, 2)
			})
		})

		Convey("When querying a non existing page", func() {
			w := get(h, "/boruto/heroes?page=6")

			Convey("Then it responds 404 with the not found envelope", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				resp := decode(w)
				So(resp.Success, ShouldBeFalse)
				So(resp.Message, ShouldEqual, "Heroes not Found.")
				So(resp.Heroes, ShouldBeEmpty)
				So(w.Body.String(), ShouldNotContainSubstring, "prevPage")
				So(w.Body.String(), ShouldNotContainSubstring, "nextPage")
			})
		})

		Convey("When querying pages 0 and -1", func() {
			So(get(h, "/boruto/heroes?page=0").Code, ShouldEqual, http.StatusNotFound)
			So(get(h, "/boruto/heroes?page=-1").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When querying an invalid page number", func() {
			w := get(h, "/boruto/heroes?page=invalid")

			Convey("Then it responds 400 with the bad request envelope", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				resp := decode(w)
				So(resp.Success, ShouldBeFalse)
				So(resp.Message, ShouldEqual, "Only Numbers Allowed.")
				So(resp.Heroes, ShouldBeEmpty)
				So(resp.PrevPage, ShouldBeNil)
				So(resp.NextPage, ShouldBeNil)
			})
		})

		Convey("When the page parameter is present but empty", func() {
			So(get(h, "/boruto/heroes?page=").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestSearchEndpoint(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler(t)

		cases := []struct {
			query string
			want  int
		}{
			{"name=sas", 1},
			{"name=sa", 3},
			{"name=SA", 3},
			{"name=", 0},
			{"", 0},
			{"name=unknown", 0},
		}
		for _, tc := range cases {
			Convey("When searching with query "+strconvQuote(tc.query), func() {
				w := get(h, "/boruto/heroes/search?"+tc.query)

				So(w.Code, ShouldEqual, http.StatusOK)
				resp := decode(w)
				So(resp.Success, ShouldBeTrue)
				So(resp.Message, ShouldEqual, "ok")
				So(resp.Heroes, ShouldHaveLength, tc.want)
				So(resp.PrevPage, ShouldBeNil)
				So(resp.NextPage, ShouldBeNil)
				So(w.Body.String(), ShouldContainSubstring, `"heroes":[`)
			})
		}
	})
}

func TestServerRoutes(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler(t)

		Convey("When requesting an unknown route", func() {
			w := get(h, "/unknown")

			Convey("Then it responds 404 with the page not found string", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldEqual, `"Page not Found."`)
			})
		})

		Convey("When using a method other than GET", func() {
			req := httptest.NewRequest(http.MethodPost, "/boruto/heroes", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Body.String(), ShouldEqual, `"Method not Allowed."`)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")

			Convey("Then the rejected request is counted", func() {
				req := httptest.NewRequest(http.MethodDelete, "/boruto/heroes/search", http.NoBody)
				h.ServeHTTP(httptest.NewRecorder(), req)

				body := get(h, "/metrics").Body.String()
				So(metricLines(body, "http_requests_total", `endpoint="method_not_allowed"`, `method="DELETE"`, `status_code="405"`), ShouldNotBeEmpty)
				So(metricLines(body, "errors_by_endpoint_total", `error_type="method_not_allowed"`, `method="DELETE"`), ShouldNotBeEmpty)
			})
		})

		Convey("When requesting stats", func() {
			w := get(h, "/stats")

			So(w.Code, ShouldEqual, http.StatusOK)
			var stats types.CatalogStats
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats, ShouldResemble, types.CatalogStats{Heroes: 25, Pages: 5, PageSize: 5})
		})

		Convey("When requesting health", func() {
			w := get(h, "/healthz")

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, `{"status":"ok"}`)
		})

		Convey("When requesting metrics after some traffic", func() {
			get(h, "/boruto/heroes?page=2")
			get(h, "/boruto/heroes?page=9")
			w := get(h, "/metrics")

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "http_requests_total")
			So(w.Body.String(), ShouldContainSubstring, `endpoint="heroes"`)
			So(w.Body.String(), ShouldContainSubstring, "page_requests_total")
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given the API handler", t, func() {
		h := newHandler(t)

		Convey("When the caller sends a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.HeaderRequestID, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is echoed back", func() {
				So(w.Header().Get(api.HeaderRequestID), ShouldEqual, "abc-123")
			})
		})

		Convey("When the caller sends no request id", func() {
			w := get(h, "/")

			Convey("Then a UUID is assigned", func() {
				So(w.Header().Get(api.HeaderRequestID), ShouldHaveLength, 36)
			})
		})

		Convey("When a browser sends a preflight from an allowed origin", func() {
			req := httptest.NewRequest(http.MethodOptions, "/boruto/heroes", http.NoBody)
			req.Header.Set("Origin", "http://localhost:4200")
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then CORS headers allow it", func() {
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:4200")
			})
		})

		Convey("When a request comes from a disallowed origin", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set("Origin", "http://evil.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then no allow-origin header is set", func() {
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
			})
		})
	})
}

// metricLines returns the exposition lines for metric that contain every
// label fragment.
func metricLines(body, metric string, labels ...string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "#") || !strings.Contains(line, metric+"{") {
			continue
		}
		match := true
		for _, l := range labels {
			if !strings.Contains(line, l) {
				match = false
				break
			}
		}
		if match {
			out = append(out, line)
		}
	}
	return out
}

func strconvQuote(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
