package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisense/backend/internal/adapters/cache"
	"github.com/medisense/backend/internal/adapters/events"
	"github.com/medisense/backend/internal/adapters/ledger"
	"github.com/medisense/backend/internal/adapters/reference"
	"github.com/medisense/backend/internal/adapters/sessions"
	"github.com/medisense/backend/internal/api/handlers"
	"github.com/medisense/backend/internal/api/middleware"
	"github.com/medisense/backend/internal/api/routes"
	"github.com/medisense/backend/internal/application/services"
	"github.com/medisense/backend/internal/application/workflow"
	"github.com/medisense/backend/internal/mcp"
)

const adminMobile = "8050200772"

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	conditions := reference.NewConditionCatalog()
	directory := reference.NewProviderDirectory()
	areas := reference.NewAreaTable()
	bookingLedger := ledger.NewSeededLedger()
	bus := events.NewMemoryEventBus()
	t.Cleanup(func() { _ = bus.Close() })

	inference := services.NewInferenceService(conditions)
	ranking := services.NewRankingService(directory)
	locations := services.NewLocationService(areas)
	bookings := services.NewBookingService(bookingLedger, bus, nil)
	admin := services.NewAdminService(adminMobile, bookingLedger, conditions, directory, nil)
	sessionService := services.NewSessionService(
		sessions.NewMemoryStore(),
		workflow.NewMachine(),
		locations,
		inference,
		ranking,
		bookings,
		admin,
		nil,
		services.AnalysisPacing{},
	)
	t.Cleanup(sessionService.Shutdown)

	router := routes.NewRouter(
		routes.Handlers{
			Catalog:   handlers.NewCatalogHandler(conditions, locations),
			Provider:  handlers.NewProviderHandler(directory, ranking, locations),
			Diagnosis: handlers.NewDiagnosisHandler(inference),
			Location:  handlers.NewLocationHandler(locations),
			Session:   handlers.NewSessionHandler(sessionService),
			Admin:     handlers.NewAdminHandler(bookings, admin),
			SSE:       handlers.NewSSEHandler(bus),
		},
		routes.Options{
			AdminChecker: sessionService,
			MCPServer:    mcp.NewServer(inference, ranking, locations, "test").GetMCPServer(),
			Cache:        middleware.NewCacheMiddleware(cache.NewMemoryAdapter(), middleware.DefaultCacheRoutes),
		},
	)
	return router.SetupRoutes()
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// expectState asserts a 200 reply and returns the session state it carries
func expectState(t *testing.T, w *httptest.ResponseRecorder, want string) map[string]interface{} {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode(t, w)
	assert.Equal(t, want, view["state"])
	return view
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	view := decode(t, w)
	assert.Equal(t, "login", view["state"])
	return view["id"].(string)
}

func adminSession(t *testing.T, h http.Handler) http.Header {
	t.Helper()
	id := createSession(t, h)
	w := do(t, h, http.MethodPost, "/api/sessions/"+id+"/admin-login", map[string]string{"mobile": adminMobile}, nil)
	expectState(t, w, "admin")
	header := http.Header{}
	header.Set(middleware.SessionHeader, id)
	return header
}

func TestRouter_Health(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_Catalog(t *testing.T) {
	h := newTestHandler(t)

	t.Run("symptoms", func(t *testing.T) {
		body := decode(t, do(t, h, http.MethodGet, "/api/catalog/symptoms", nil, nil))
		assert.EqualValues(t, 20, body["count"])
	})

	t.Run("conditions keep catalog order", func(t *testing.T) {
		body := decode(t, do(t, h, http.MethodGet, "/api/catalog/conditions", nil, nil))
		list := body["conditions"].([]interface{})
		require.Len(t, list, 10)
		assert.Equal(t, "COVID-19", list[0].(map[string]interface{})["name"])
		assert.Equal(t, "Dengue Fever", list[9].(map[string]interface{})["name"])
	})

	t.Run("areas", func(t *testing.T) {
		body := decode(t, do(t, h, http.MethodGet, "/api/catalog/areas", nil, nil))
		assert.NotEmpty(t, body["areas"])
	})

	t.Run("time slots", func(t *testing.T) {
		body := decode(t, do(t, h, http.MethodGet, "/api/catalog/time-slots", nil, nil))
		assert.Len(t, body["time_slots"], 10)
	})

	t.Run("responses are cached", func(t *testing.T) {
		first := do(t, h, http.MethodGet, "/api/catalog/time-slots?v=1", nil, nil)
		second := do(t, h, http.MethodGet, "/api/catalog/time-slots?v=1", nil, nil)
		assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
		assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("etag revalidation", func(t *testing.T) {
		first := do(t, h, http.MethodGet, "/api/catalog/conditions", nil, nil)
		etag := first.Header().Get("ETag")
		require.NotEmpty(t, etag)

		second := do(t, h, http.MethodGet, "/api/catalog/conditions", nil, http.Header{"If-None-Match": []string{etag}})
		assert.Equal(t, http.StatusNotModified, second.Code)
	})
}

func TestRouter_Providers(t *testing.T) {
	h := newTestHandler(t)

	t.Run("directory", func(t *testing.T) {
		body := decode(t, do(t, h, http.MethodGet, "/api/providers", nil, nil))
		assert.EqualValues(t, 12, body["count"])
	})

	t.Run("rank by distance from an area", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/providers/rank?specialty=Infectious+Disease&location=Sathuvachari", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Providers []struct {
				ID         int      `json:"id"`
				DistanceKm *float64 `json:"distance_km"`
			} `json:"providers"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

		ids := make([]int, 0, len(body.Providers))
		for _, p := range body.Providers {
			ids = append(ids, p.ID)
			assert.NotNil(t, p.DistanceKm)
		}
		assert.Equal(t, []int{12, 6, 1, 7, 2, 11, 3}, ids)
	})

	t.Run("unknown specialty", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/providers/rank?specialty=Dentistry", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad coordinate", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/providers/rank?specialty=Cardiology&lat=north", nil, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["fields"], "lat")
	})
}

func TestRouter_Diagnosis(t *testing.T) {
	h := newTestHandler(t)

	t.Run("best match", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/diagnoses", map[string][]string{
			"symptoms": {"Joint Pain", "Back Pain", "Fatigue"},
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		diagnosis := decode(t, w)["diagnosis"].(map[string]interface{})
		assert.Equal(t, "Arthritis", diagnosis["condition"].(map[string]interface{})["name"])
	})

	t.Run("empty selection", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/diagnoses", map[string][]string{"symptoms": {}}, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decode(t, w)["type"])
	})

	t.Run("unknown field", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/diagnoses", map[string]string{"symptom": "Fever"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouter_ResolveLocation(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/api/locations/resolve", map[string]interface{}{"query": "near katpadi station"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Contains(t, body["label"], "Katpadi")
}

func TestRouter_BookingFlow(t *testing.T) {
	h := newTestHandler(t)
	id := createSession(t, h)
	base := "/api/sessions/" + id

	t.Run("login validates every field", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/login", map[string]interface{}{"name": "", "mobile": "123", "age": 0, "sex": ""}, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields := decode(t, w)["fields"].(map[string]interface{})
		assert.Len(t, fields, 4)
	})

	t.Run("analyze before symptoms is refused", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/analyze", nil, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "GUARD_VIOLATION", decode(t, w)["type"])
	})

	expectState(t, do(t, h, http.MethodPost, base+"/login", map[string]interface{}{
		"name": "Karthik Rajesh", "mobile": "7654321890", "age": 19, "sex": "Male",
	}, nil), "location")

	expectState(t, do(t, h, http.MethodPut, base+"/location", map[string]interface{}{
		"query": "Sathuvachari", "quick_select": true,
	}, nil), "location")
	expectState(t, do(t, h, http.MethodPost, base+"/location/confirm", nil, nil), "symptoms")

	for _, s := range []string{"Fever", "Headache", "Joint Pain", "Muscle Aches", "Skin Rash", "Fatigue"} {
		expectState(t, do(t, h, http.MethodPost, base+"/symptoms/toggle", map[string]string{"symptom": s}, nil), "symptoms")
	}

	t.Run("unknown symptom", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/symptoms/toggle", map[string]string{"symptom": "Hiccups"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	view := expectState(t, do(t, h, http.MethodPost, base+"/analyze", nil, nil), "result")
	diagnosis := view["diagnosis"].(map[string]interface{})
	assert.Equal(t, "Dengue Fever", diagnosis["condition"].(map[string]interface{})["name"])
	assert.EqualValues(t, 1, diagnosis["score"])

	t.Run("provider outside the results", func(t *testing.T) {
		w := do(t, h, http.MethodPost, base+"/provider", map[string]int{"provider_id": 4}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	expectState(t, do(t, h, http.MethodPost, base+"/provider", map[string]int{"provider_id": 12}, nil), "booking")

	t.Run("confirm without a slot", func(t *testing.T) {
		expectState(t, do(t, h, http.MethodPut, base+"/booking-form", map[string]string{"date": "2026-11-02"}, nil), "booking")

		w := do(t, h, http.MethodPost, base+"/confirm", nil, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "INVALID_INPUT", body["type"])
		fields := body["fields"].(map[string]interface{})
		assert.Contains(t, fields, "time")
		assert.NotContains(t, fields, "date")
	})

	t.Run("confirm with an empty form", func(t *testing.T) {
		expectState(t, do(t, h, http.MethodPut, base+"/booking-form", map[string]string{}, nil), "booking")

		w := do(t, h, http.MethodPost, base+"/confirm", nil, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		fields := decode(t, w)["fields"].(map[string]interface{})
		assert.Contains(t, fields, "date")
		assert.Contains(t, fields, "time")
	})

	expectState(t, do(t, h, http.MethodPut, base+"/booking-form", map[string]string{
		"date": "2026-11-02", "time": "10:00 AM",
	}, nil), "booking")

	view = expectState(t, do(t, h, http.MethodPost, base+"/confirm", nil, nil), "confirmed")
	booking := view["last_booking"].(map[string]interface{})
	assert.Equal(t, "BK006", booking["reference"])
	assert.Equal(t, "Dengue Fever", booking["condition"])
	assert.Equal(t, "pending", booking["status"])

	view = expectState(t, do(t, h, http.MethodPost, base+"/reset", nil, nil), "login")
	assert.Nil(t, view["last_booking"])

	t.Run("unknown session", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/sessions/missing", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_Admin(t *testing.T) {
	h := newTestHandler(t)

	t.Run("requires an admin session", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/admin/bookings", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		patient := createSession(t, h)
		w = do(t, h, http.MethodGet, "/api/admin/bookings", nil, http.Header{http.CanonicalHeaderKey(middleware.SessionHeader): {patient}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong mobile", func(t *testing.T) {
		id := createSession(t, h)
		w := do(t, h, http.MethodPost, "/api/sessions/"+id+"/admin-login", map[string]string{"mobile": "9999999999"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	header := adminSession(t, h)

	t.Run("list newest first", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/admin/bookings", nil, header)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.EqualValues(t, 5, body["count"])
		first := body["bookings"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "BK005", first["reference"])
	})

	t.Run("get by reference", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/admin/bookings/BK004", nil, header)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "confirmed", decode(t, w)["status"])

		w = do(t, h, http.MethodGet, "/api/admin/bookings/BK042", nil, header)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, h, http.MethodGet, "/api/admin/bookings/abc", nil, header)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("toggle status", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/admin/bookings/3/toggle", nil, header)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "confirmed", decode(t, w)["status"])

		stats := decode(t, do(t, h, http.MethodGet, "/api/admin/stats", nil, header))
		assert.EqualValues(t, 5, stats["total"])
		assert.EqualValues(t, 4, stats["confirmed"])
		assert.EqualValues(t, 1, stats["pending"])
	})

	t.Run("providers", func(t *testing.T) {
		body := decode(t, do(t, h, http.MethodGet, "/api/admin/providers", nil, header))
		assert.EqualValues(t, 12, body["count"])
	})

	t.Run("export", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/admin/bookings/export", nil, header)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
		assert.Equal(t, []byte("PK"), w.Body.Bytes()[:2])
	})
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodOptions, "/api/sessions", nil, http.Header{"Origin": []string{"http://localhost:3000"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), middleware.SessionHeader)
}
