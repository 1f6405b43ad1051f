package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		name     string
		isAdmin  interface{}
		wantCode int
	}{
		{"admin passes", true, http.StatusOK},
		{"customer rejected", false, http.StatusForbidden},
		{"missing claim rejected", nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/track/SC26082912345/update", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.isAdmin != nil {
				c.Set("is_admin", tc.isAdmin)
			}

			handler := AdminOnly()(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler returned %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}
