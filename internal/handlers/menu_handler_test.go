package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/soumya813/SwaadGharKa/internal/models"
	"github.com/soumya813/SwaadGharKa/internal/repository"
	"github.com/soumya813/SwaadGharKa/internal/services"
)

type stubMenuService struct {
	items     []models.MenuItem
	total     int64
	gotFilter repository.MenuListFilter
}

func (s *stubMenuService) List(filter repository.MenuListFilter) ([]models.MenuItem, int64, *repository.MenuFilterMeta, error) {
	s.gotFilter = filter
	return s.items, s.total, &repository.MenuFilterMeta{}, nil
}

func (s *stubMenuService) Get(id uint) (*models.MenuItem, error) { return nil, nil }

func (s *stubMenuService) GetFeatured(limit int) ([]models.MenuItem, error) { return nil, nil }

func (s *stubMenuService) GetSpecial(limit int) ([]models.MenuItem, error) { return nil, nil }

func (s *stubMenuService) IncrementDailyOrders(id uint, qty int) error { return nil }

func (s *stubMenuService) RecordRating(itemID uint, rating int) error { return nil }

func (s *stubMenuService) Create(actor services.Actor, item *models.MenuItem) error { return nil }

func (s *stubMenuService) Update(actor services.Actor, item *models.MenuItem) error { return nil }

func (s *stubMenuService) SoftDelete(actor services.Actor, id uint) error { return nil }

func (s *stubMenuService) CheckAvailability(id uint, requestedQty int) (*models.MenuItem, error) {
	return nil, nil
}

func newMenuRouter(svc services.MenuService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMenuHandler(svc)
	r := gin.New()
	r.GET("/api/menu", h.List)
	r.GET("/api/menu/category/:category", h.ByCategory)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return w.Code, body
}

func TestListToleratesHostileLimits(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantPage  int
		wantPages float64
	}{
		{"zero limit", "?limit=0", 12, 1, 1},
		{"negative limit", "?limit=-5&page=-3", 12, 1, 1},
		{"oversized limit", "?limit=1000", services.MaxListLimit, 1, 1},
		{"small limit", "?limit=2", 2, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubMenuService{total: 5}
			r := newMenuRouter(svc)

			code, body := getJSON(t, r, "/api/menu"+tt.query)
			if code != http.StatusOK {
				t.Fatalf("status = %d, want %d", code, http.StatusOK)
			}
			if svc.gotFilter.Limit != tt.wantLimit {
				t.Errorf("limit passed to service = %d, want %d", svc.gotFilter.Limit, tt.wantLimit)
			}
			if svc.gotFilter.Page != tt.wantPage {
				t.Errorf("page passed to service = %d, want %d", svc.gotFilter.Page, tt.wantPage)
			}
			if got := body["pages"]; got != tt.wantPages {
				t.Errorf("pages = %v, want %v", got, tt.wantPages)
			}
		})
	}
}

func TestByCategory(t *testing.T) {
	svc := &stubMenuService{
		items: []models.MenuItem{{Name: "Masala Dosa"}},
		total: 1,
	}
	r := newMenuRouter(svc)

	code, body := getJSON(t, r, "/api/menu/category/snacks")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if svc.gotFilter.Category != "snacks" {
		t.Errorf("category passed to service = %q, want %q", svc.gotFilter.Category, "snacks")
	}
	if body["category"] != "snacks" {
		t.Errorf("category in response = %v, want %q", body["category"], "snacks")
	}
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
}

func TestByCategoryRejectsUnknownCategory(t *testing.T) {
	r := newMenuRouter(&stubMenuService{})

	code, body := getJSON(t, r, "/api/menu/category/pizza")
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}
