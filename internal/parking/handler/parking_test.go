package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"parkd/internal/parking/broadcast"
	"parkd/internal/parking/graph"
	"parkd/internal/parking/service"
	"parkd/internal/parking/validator"
	"parkd/pkg/logger"
	"parkd/pkg/model"
)

type mockParkingService struct {
	admitFunc   func(ctx context.Context, plate string, g *graph.Graph) (service.AdmissionResult, error)
	releaseFunc func(ctx context.Context, plate string, g *graph.Graph) (service.ReleaseResult, error)
	statusFunc  func(ctx context.Context, plate string) (*service.VehicleStatus, error)
	snapshot    model.StateView
}

func (m *mockParkingService) Load(ctx context.Context) error { return nil }

func (m *mockParkingService) Admit(ctx context.Context, plate string, g *graph.Graph) (service.AdmissionResult, error) {
	if m.admitFunc != nil {
		return m.admitFunc(ctx, plate, g)
	}
	return service.AdmissionResult{Status: service.StatusAdmitted, SlotID: 1}, nil
}

func (m *mockParkingService) Release(ctx context.Context, plate string, g *graph.Graph) (service.ReleaseResult, error) {
	if m.releaseFunc != nil {
		return m.releaseFunc(ctx, plate, g)
	}
	return service.ReleaseResult{Status: service.StatusReleased}, nil
}

func (m *mockParkingService) Status(ctx context.Context, plate string) (*service.VehicleStatus, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, plate)
	}
	return &service.VehicleStatus{Plate: plate, State: service.VehicleParked, SlotID: 1}, nil
}

func (m *mockParkingService) Snapshot() model.StateView { return m.snapshot }

func (m *mockParkingService) Subscribe(sub broadcast.Subscriber) string { return "handle" }

func (m *mockParkingService) Unsubscribe(handle string) {}

func newTestRouter(svc service.ParkingService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	h := NewParkingHandler(svc, validator.NewRequestValidator(log), graph.NewGrid(2, 2), log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestEntry_Admitted(t *testing.T) {
	svc := &mockParkingService{
		admitFunc: func(ctx context.Context, plate string, g *graph.Graph) (service.AdmissionResult, error) {
			if plate != "AB123" {
				t.Errorf("expected plate AB123, got %q", plate)
			}
			return service.AdmissionResult{Status: service.StatusAdmitted, SlotID: 2, RatePerMinute: 12.5}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/entry", strings.NewReader(`{"plate":"AB123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data service.AdmissionResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.SlotID != 2 || body.Data.RatePerMinute != 12.5 {
		t.Errorf("unexpected payload: %+v", body.Data)
	}
}

func TestEntry_Queued(t *testing.T) {
	svc := &mockParkingService{
		admitFunc: func(ctx context.Context, plate string, g *graph.Graph) (service.AdmissionResult, error) {
			return service.AdmissionResult{Status: service.StatusQueued}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/entry", strings.NewReader(`{"plate":"AB123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for queued, got %d", rec.Code)
	}
}

func TestEntry_AlreadyParkedConflict(t *testing.T) {
	for _, status := range []service.AdmissionStatus{service.StatusAlreadyParked, service.StatusConflict} {
		svc := &mockParkingService{
			admitFunc: func(ctx context.Context, plate string, g *graph.Graph) (service.AdmissionResult, error) {
				return service.AdmissionResult{Status: status}, nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/entry", strings.NewReader(`{"plate":"AB123"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status %s: expected 409, got %d", status, rec.Code)
		}
	}
}

func TestEntry_MalformedBody(t *testing.T) {
	router := newTestRouter(&mockParkingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/entry", strings.NewReader(`{"plate":`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestEntry_InvalidGraphPayload(t *testing.T) {
	called := false
	svc := &mockParkingService{
		admitFunc: func(ctx context.Context, plate string, g *graph.Graph) (service.AdmissionResult, error) {
			called = true
			return service.AdmissionResult{Status: service.StatusAdmitted}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"plate":"AB123","graph":[{"from":0,"to":1,"weight":-2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/entry", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if called {
		t.Error("service must not be reached with an invalid graph")
	}
}

func TestEntry_CustomGraphOverridesDefault(t *testing.T) {
	var received *graph.Graph
	svc := &mockParkingService{
		admitFunc: func(ctx context.Context, plate string, g *graph.Graph) (service.AdmissionResult, error) {
			received = g
			return service.AdmissionResult{Status: service.StatusAdmitted}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"plate":"AB123","graph":[{"from":0,"to":9,"weight":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/entry", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if received == nil || !received.HasNode(9) {
		t.Error("expected the request graph to reach the service")
	}
}

func TestExit_Released(t *testing.T) {
	svc := &mockParkingService{
		releaseFunc: func(ctx context.Context, plate string, g *graph.Graph) (service.ReleaseResult, error) {
			return service.ReleaseResult{Status: service.StatusReleased, Charge: 22.5}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/exit", strings.NewReader(`{"plate":"AB123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data service.ReleaseResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Charge != 22.5 {
		t.Errorf("expected charge 22.5, got %v", body.Data.Charge)
	}
}

func TestExit_NotFound(t *testing.T) {
	svc := &mockParkingService{
		releaseFunc: func(ctx context.Context, plate string, g *graph.Graph) (service.ReleaseResult, error) {
			return service.ReleaseResult{Status: service.StatusNotFound}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/exit", strings.NewReader(`{"plate":"AB123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestRouter(&mockParkingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parking/status/AB123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data service.VehicleStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Plate != "AB123" || body.Data.State != service.VehicleParked {
		t.Errorf("unexpected payload: %+v", body.Data)
	}
}

func TestStateEndpoint(t *testing.T) {
	svc := &mockParkingService{
		snapshot: model.StateView{Occupied: 3, Total: 4, QueueLength: 1, RatePerMinute: 17.5},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parking/state", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data model.StateView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Occupied != 3 || body.Data.RatePerMinute != 17.5 {
		t.Errorf("unexpected snapshot: %+v", body.Data)
	}
}
