package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"microwave/internal/models"
	"microwave/internal/service"
)

func TestHeatingHandlers_RequireAuth(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}, Heating: &mockHeating{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/heating/status", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}
}

func TestHeatingHandlers_ForwardSessionAndArguments(t *testing.T) {
	heating := &mockHeating{result: models.Succeeded("Aquecimento iniciado")}
	s := &service.Service{Authorization: &mockAuth{parseUser: "admin"}, Heating: heating}
	r := newTestRouter(s)

	steps := []struct {
		method, path, body, op string
	}{
		{http.MethodPost, "/api/v1/heating/start", `{"timeInSeconds":90,"powerLevel":7}`, "start"},
		{http.MethodPost, "/api/v1/heating/quick", "", "quick"},
		{http.MethodPost, "/api/v1/heating/add-time", `{"additionalSeconds":30}`, "add-time"},
		{http.MethodPost, "/api/v1/heating/pause", "", "pause-or-cancel"},
		{http.MethodPost, "/api/v1/heating/cancel", "", "pause-or-cancel"},
		{http.MethodPost, "/api/v1/programs/predefined/Pipoca/start", "", "predefined"},
	}
	for _, st := range steps {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, apiRequest(st.method, st.path, "sess-1", st.body))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", st.path, w.Code, w.Body.String())
		}
		if res := decodeResult(t, w); !res.Success || res.Message != "Aquecimento iniciado" {
			t.Fatalf("%s unexpected result: %+v", st.path, res)
		}
	}

	if heating.callCount("pause-or-cancel") != 2 {
		t.Fatalf("pause and cancel must share PauseOrCancel, calls=%v", heating.calls)
	}
	for _, sid := range heating.sessions {
		if sid != "sess-1" {
			t.Fatalf("session not forwarded: %v", heating.sessions)
		}
	}
	if heating.lastDuration != 90 || heating.lastPower != 7 {
		t.Fatalf("start args: %d/%d", heating.lastDuration, heating.lastPower)
	}
	if heating.lastAdd != 30 {
		t.Fatalf("add-time args: %d", heating.lastAdd)
	}
	if heating.lastProgram != "Pipoca" {
		t.Fatalf("program: %q", heating.lastProgram)
	}
}

func TestHeatingHandlers_ResultMapping(t *testing.T) {
	cases := []struct {
		name     string
		result   models.OperationResult
		err      error
		wantCode int
		wantErr  models.ErrorCode
	}{
		{"invalid parameters", models.Failed(models.CodeInvalidParameters, "x"), nil, http.StatusBadRequest, models.CodeInvalidParameters},
		{"not running", models.Failed(models.CodeNotRunning, "x"), nil, http.StatusBadRequest, models.CodeNotRunning},
		{"program not found", models.Failed(models.CodeProgramNotFound, "x"), nil, http.StatusNotFound, models.CodeProgramNotFound},
		{"custom not found", models.Failed(models.CodeCustomProgramNotFound, "x"), nil, http.StatusNotFound, models.CodeCustomProgramNotFound},
		{"storage error", models.OperationResult{}, errors.New("disk"), http.StatusInternalServerError, models.CodeInternalError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			heating := &mockHeating{result: tc.result, err: tc.err}
			s := &service.Service{Authorization: &mockAuth{parseUser: "admin"}, Heating: heating}
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, apiRequest(http.MethodPost, "/api/v1/heating/start", "s", `{"timeInSeconds":0,"powerLevel":0}`))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if res := decodeResult(t, w); res.Success || res.ErrorCode != tc.wantErr {
				t.Fatalf("unexpected result: %+v", res)
			}
		})
	}
}

func TestHeatingHandlers_Status(t *testing.T) {
	heating := &mockHeating{status: models.HeatingStatus{
		IsRunning:              true,
		RemainingTime:          180,
		PowerLevel:             7,
		FormattedRemainingTime: "3:00",
		CurrentState:           models.StateHeating,
		HeatingChar:            "∩",
		CurrentProgram:         "pipoca",
	}}
	s := &service.Service{Authorization: &mockAuth{parseUser: "admin"}, Heating: heating}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/heating/status", "sess-9", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var st models.HeatingStatus
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !st.IsRunning || st.RemainingTime != 180 || st.PowerLevel != 7 || st.CurrentProgram != "pipoca" || st.HeatingChar != "∩" {
		t.Fatalf("unexpected status: %+v", st)
	}
	if heating.sessions[0] != "sess-9" {
		t.Fatalf("session=%q", heating.sessions[0])
	}

	heating.err = errors.New("boom")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/heating/status", "sess-9", ""))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHeatingHandlers_BadBody(t *testing.T) {
	heating := &mockHeating{}
	s := &service.Service{Authorization: &mockAuth{parseUser: "admin"}, Heating: heating}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPost, "/api/v1/heating/start", "s", `{"timeInSeconds":"ninety"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(heating.calls) != 0 {
		t.Fatalf("service must not be called on a bad body")
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestStatusForResult(t *testing.T) {
	cases := map[models.ErrorCode]int{
		models.CodeValidationFailed:   http.StatusBadRequest,
		models.CodeNoPauseData:        http.StatusBadRequest,
		models.CodePredefinedProgram:  http.StatusBadRequest,
		models.CodeCreationFailed:     http.StatusInternalServerError,
		models.CodeUpdateFailed:       http.StatusInternalServerError,
		models.CodeDeleteFailed:       http.StatusInternalServerError,
		models.CodeInvalidCredentials: http.StatusUnauthorized,
	}
	for code, want := range cases {
		if got := statusForResult(models.Failed(code, "")); got != want {
			t.Fatalf("%s: got %d want %d", code, got, want)
		}
	}
	if got := statusForResult(models.Succeeded("ok")); got != http.StatusOK {
		t.Fatalf("success: got %d", got)
	}
}
