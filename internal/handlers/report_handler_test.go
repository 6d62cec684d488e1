package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "walleto/internal/errors"
	"walleto/internal/services"
)

type mockReportService struct {
	getReportFn func(userID uint, filter services.ReportFilter) (*services.Report, error)
}

func (m *mockReportService) GetReport(userID uint, filter services.ReportFilter) (*services.Report, error) {
	if m.getReportFn != nil {
		return m.getReportFn(userID, filter)
	}
	return &services.Report{Operations: []services.ReportOperation{}}, nil
}

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	r.GET("/report", injectUserID(1), handler.GetReport)
	return r
}

func TestReportHandler_GetReport(t *testing.T) {
	t.Run("passes the filter through", func(t *testing.T) {
		var gotFilter services.ReportFilter
		reportSvc := &mockReportService{
			getReportFn: func(_ uint, filter services.ReportFilter) (*services.Report, error) {
				gotFilter = filter
				return &services.Report{
					Operations:  []services.ReportOperation{},
					TotalAmount: 330,
					TotalItems:  2,
					TotalPages:  1,
				}, nil
			},
		}
		handler := NewReportHandler(reportSvc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/report?category=7&period=month&page=2&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.CategoryID == nil || *gotFilter.CategoryID != 7 {
			t.Errorf("expected category 7, got %v", gotFilter.CategoryID)
		}
		if gotFilter.Period != "month" {
			t.Errorf("expected period month, got %q", gotFilter.Period)
		}
		if gotFilter.Page.Page != 2 || gotFilter.Page.PageSize != 10 {
			t.Errorf("unexpected page request %+v", gotFilter.Page)
		}

		result := parseJSON(t, rec)
		report := result["report"].(map[string]interface{})
		if report["total_amount"].(float64) != 330 {
			t.Errorf("expected total_amount 330, got %v", report["total_amount"])
		}
	})

	t.Run("explicit bounds stay raw strings", func(t *testing.T) {
		var gotFilter services.ReportFilter
		reportSvc := &mockReportService{
			getReportFn: func(_ uint, filter services.ReportFilter) (*services.Report, error) {
				gotFilter = filter
				return &services.Report{Operations: []services.ReportOperation{}}, nil
			},
		}
		handler := NewReportHandler(reportSvc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/report?from=2024-01-01&to=2024-02-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.From != "2024-01-01" || gotFilter.To != "2024-02-01" {
			t.Errorf("unexpected bounds %q / %q", gotFilter.From, gotFilter.To)
		}
	})

	t.Run("returns 400 on unknown period token", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/report?period=fortnight", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on oversized page_size", func(t *testing.T) {
		handler := NewReportHandler(&mockReportService{})
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/report?page_size=1000", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 422 on bad explicit date", func(t *testing.T) {
		reportSvc := &mockReportService{
			getReportFn: func(_ uint, _ services.ReportFilter) (*services.Report, error) {
				return nil, apperrors.ErrInvalidDateFormat
			},
		}
		handler := NewReportHandler(reportSvc)
		r := setupReportRouter(handler)

		rec := doRequest(r, "GET", "/report?from=garbage", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE_FORMAT")
	})
}
