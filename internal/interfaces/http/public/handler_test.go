package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
	publicapp "github.com/sngm3741/delivery-availability/api/internal/public/application"
	publicdomain "github.com/sngm3741/delivery-availability/api/internal/public/domain"
)

const storeID = "65a1f0c2e4b0a1b2c3d4e5f6"

type fakeStoreQueries struct {
	filter publicapp.StoreFilter
	paging publicapp.Paging
	err    error
}

func (q *fakeStoreQueries) List(_ context.Context, filter publicapp.StoreFilter, paging publicapp.Paging) (publicdomain.StorePage, error) {
	q.filter, q.paging = filter, paging
	if q.err != nil {
		return publicdomain.StorePage{}, q.err
	}
	reason := "sem entregador"
	return publicdomain.StorePage{
		Items: []publicdomain.StoreView{
			{Store: publicdomain.Store{ID: storeID, Name: "Açaí do Porto", Category: "lanchonete"}, Availability: availability.Result{IsOpen: true, ScheduleOpen: true}},
			{
				Store: publicdomain.Store{
					ID:    "65a1f0c2e4b0a1b2c3d4e5f7",
					Name:  "Bar do Zé",
					Block: availability.Block{Blocked: true, Reason: "inadimplência", IsFinancialBlock: true, FinancialValue: 99, FinancialInstallments: 2},
				},
				Availability: availability.Result{ScheduleOpen: true, Reason: &reason},
			},
		},
		Page:  paging.Page,
		Limit: paging.Limit,
		Total: 2,
	}, nil
}

func (q *fakeStoreQueries) Detail(_ context.Context, id string) (*publicdomain.StoreView, error) {
	if id != storeID {
		return nil, availability.ErrStoreNotFound
	}
	return &publicdomain.StoreView{Store: publicdomain.Store{ID: id, Name: "Açaí do Porto"}, Availability: availability.Result{IsOpen: true, ScheduleOpen: true}}, nil
}

func (q *fakeStoreQueries) Availability(_ context.Context, id string) (availability.Result, error) {
	if q.err != nil {
		return availability.Result{}, q.err
	}
	if id != storeID {
		return availability.Result{}, availability.ErrStoreNotFound
	}
	reason := availability.ReasonPaused
	return availability.Result{ScheduleOpen: true, Reason: &reason}, nil
}

func newTestRouter(q *fakeStoreQueries) http.Handler {
	h := NewHandler(Config{Logger: log.New(io.Discard, "", 0), StoreQueries: q})
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPublicHandler_ListForwardsFilters(t *testing.T) {
	t.Parallel()

	q := &fakeStoreQueries{}
	rec := get(t, newTestRouter(q), "/stores?open=true&category=Pizza&keyword=%20bar%20&page=2&limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !q.filter.OpenOnly || q.filter.Category != "pizzaria" || q.filter.Keyword != "bar" {
		t.Fatalf("unexpected filter %+v", q.filter)
	}
	if q.paging.Page != 2 || q.paging.Limit != 5 {
		t.Fatalf("unexpected paging %+v", q.paging)
	}

	var body storeListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 || len(body.Items) != 2 {
		t.Fatalf("unexpected listing %+v", body)
	}
	if !body.Items[0].IsOpen || body.Items[1].IsOpen {
		t.Fatalf("unexpected open flags %+v", body.Items)
	}
	if strings.Contains(rec.Body.String(), "financial") || strings.Contains(rec.Body.String(), "inadimplência") {
		t.Fatalf("block details leaked to public listing: %s", rec.Body.String())
	}
}

func TestPublicHandler_ListDefaults(t *testing.T) {
	t.Parallel()

	q := &fakeStoreQueries{}
	rec := get(t, newTestRouter(q), "/stores?open=maybe&page=-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if q.filter.OpenOnly {
		t.Fatalf("unparsable flag must not enable open-only")
	}
	if q.paging.Page != 1 || q.paging.Limit != 10 {
		t.Fatalf("expected default paging, got %+v", q.paging)
	}
}

func TestPublicHandler_ListError(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(&fakeStoreQueries{err: errors.New("boom")}), "/stores")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestPublicHandler_Detail(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeStoreQueries{})
	cases := map[string]int{
		"/stores/" + storeID:                   http.StatusOK,
		"/stores/65a1f0c2e4b0a1b2c3d4e5f7":     http.StatusNotFound,
		"/stores/not-an-id":                    http.StatusBadRequest,
		"/stores/" + storeID + "/availability": http.StatusOK,
		"/stores/not-an-id/availability":       http.StatusBadRequest,
	}
	for path, want := range cases {
		if rec := get(t, router, path); rec.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestPublicHandler_AvailabilityBody(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestRouter(&fakeStoreQueries{}), "/stores/"+storeID+"/availability")
	want := `{"isOpen":false,"scheduleOpen":true,"pause":{"active":false},"reason":"temporarily paused"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
