package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"microwave/internal/models"
	"microwave/internal/service"
)

func newProgramsRouter(cat *mockCatalog, cp *mockCustomPrograms, heating *mockHeating) (*service.Service, http.Handler) {
	s := &service.Service{
		Authorization:  &mockAuth{parseUser: "admin"},
		Catalog:        cat,
		CustomPrograms: cp,
		Heating:        heating,
	}
	return s, newTestRouter(s)
}

func TestProgramHandlers_Lists(t *testing.T) {
	cat := &mockCatalog{
		all: []models.ProgramDisplayInfo{
			{ID: "pipoca", Name: "Pipoca", Character: "∩"},
			{ID: "c1", Name: "Pizza", Character: "P", IsCustom: true},
		},
		predefined: []models.ProgramDisplayInfo{{ID: "pipoca", Name: "Pipoca"}},
		custom:     []models.ProgramDisplayInfo{{ID: "c1", Name: "Pizza", IsCustom: true}},
	}
	_, r := newProgramsRouter(cat, &mockCustomPrograms{}, &mockHeating{})

	cases := []struct {
		path string
		want int
	}{
		{"/api/v1/programs", 2},
		{"/api/v1/programs/predefined", 1},
		{"/api/v1/programs/custom", 1},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, apiRequest(http.MethodGet, tc.path, "s", ""))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", tc.path, w.Code)
		}
		var out []models.ProgramDisplayInfo
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || len(out) != tc.want {
			t.Fatalf("%s: got %d programs (err=%v)", tc.path, len(out), err)
		}
	}

	cat.err = errors.New("db")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/programs", "s", ""))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestProgramHandlers_CustomCRUD(t *testing.T) {
	created := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	prog := &models.CustomProgram{ID: "abc", Name: "Pizza", Food: "Pizza", PowerLevel: 8, TimeInSeconds: 420, Character: "P", CreatedAt: created}
	cp := &mockCustomPrograms{
		program: prog,
		result:  models.CustomProgramResult{OperationResult: models.Succeeded("ok"), Program: prog},
	}
	_, r := newProgramsRouter(&mockCatalog{}, cp, &mockHeating{})

	body := `{"name":"Pizza","food":"Pizza","powerLevel":8,"timeInSeconds":420,"character":"P"}`

	// create → 201 with program
	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPost, "/api/v1/programs/custom", "s", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	var got models.CustomProgram
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID != "abc" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected program: %+v", got)
	}
	if cp.lastInput.Name != "Pizza" || cp.lastInput.PowerLevel != 8 || cp.lastInput.Character != "P" {
		t.Fatalf("input not forwarded: %+v", cp.lastInput)
	}

	// get
	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/programs/custom/abc", "s", ""))
	if w.Code != http.StatusOK || cp.lastID != "abc" {
		t.Fatalf("get status=%d id=%q", w.Code, cp.lastID)
	}

	// update → 200 with program
	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPut, "/api/v1/programs/custom/abc", "s", body))
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", w.Code, w.Body.String())
	}

	// delete
	cp.deleteRes = models.Succeeded("Programa customizado deletado com sucesso.")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodDelete, "/api/v1/programs/custom/abc", "s", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d", w.Code)
	}
	if res := decodeResult(t, w); !res.Success {
		t.Fatalf("unexpected delete result: %+v", res)
	}
}

func TestProgramHandlers_CustomFailures(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		path     string
		cp       *mockCustomPrograms
		wantCode int
	}{
		{
			name: "get missing", method: http.MethodGet, path: "/api/v1/programs/custom/nope",
			cp: &mockCustomPrograms{}, wantCode: http.StatusNotFound,
		},
		{
			name: "create validation", method: http.MethodPost, path: "/api/v1/programs/custom",
			cp:       &mockCustomPrograms{result: models.CustomProgramResult{OperationResult: models.Failed(models.CodeValidationFailed, "Nome é obrigatório, Alimento é obrigatório")}},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "create storage", method: http.MethodPost, path: "/api/v1/programs/custom",
			cp:       &mockCustomPrograms{result: models.CustomProgramResult{OperationResult: models.Failed(models.CodeCreationFailed, "x")}},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "update missing", method: http.MethodPut, path: "/api/v1/programs/custom/nope",
			cp:       &mockCustomPrograms{result: models.CustomProgramResult{OperationResult: models.Failed(models.CodeProgramNotFound, msgProgramNotFound)}},
			wantCode: http.StatusNotFound,
		},
		{
			name: "delete missing", method: http.MethodDelete, path: "/api/v1/programs/custom/nope",
			cp:       &mockCustomPrograms{deleteRes: models.Failed(models.CodeProgramNotFound, msgProgramNotFound)},
			wantCode: http.StatusNotFound,
		},
		{
			name: "get error", method: http.MethodGet, path: "/api/v1/programs/custom/x",
			cp: &mockCustomPrograms{err: errors.New("db")}, wantCode: http.StatusInternalServerError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, r := newProgramsRouter(&mockCatalog{}, tc.cp, &mockHeating{})
			body := ""
			if tc.method != http.MethodGet && tc.method != http.MethodDelete {
				body = `{"name":""}`
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, apiRequest(tc.method, tc.path, "s", body))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if res := decodeResult(t, w); res.Success || res.ErrorCode == "" {
				t.Fatalf("expected failure result, got %+v", res)
			}
		})
	}
}

func TestProgramHandlers_StartCustom(t *testing.T) {
	heating := &mockHeating{result: models.Failed(models.CodeCustomProgramNotFound, "Programa customizado não encontrado")}
	_, r := newProgramsRouter(&mockCatalog{}, &mockCustomPrograms{}, heating)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodPost, "/api/v1/programs/custom/abc/start", "sess-2", ""))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if heating.lastProgram != "abc" || heating.sessions[0] != "sess-2" {
		t.Fatalf("forwarded %q in %v", heating.lastProgram, heating.sessions)
	}
}

func TestCharacterHandlers(t *testing.T) {
	cat := &mockCatalog{used: []string{"∩", "∿", "≡", "∴", "◊", "P", "."}, unique: true, available: false}
	_, r := newProgramsRouter(cat, &mockCustomPrograms{}, &mockHeating{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/characters/used", "s", ""))
	var used struct {
		UsedCharacters []string `json:"usedCharacters"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &used)
	if w.Code != http.StatusOK || len(used.UsedCharacters) != 7 {
		t.Fatalf("used: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/characters/Z/unique?excludeId=abc", "s", ""))
	var uq struct {
		Character string `json:"character"`
		IsUnique  bool   `json:"isUnique"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &uq)
	if w.Code != http.StatusOK || uq.Character != "Z" || !uq.IsUnique {
		t.Fatalf("unique: %d %s", w.Code, w.Body.String())
	}
	if cat.lastChar != "Z" || cat.lastExclude != "abc" {
		t.Fatalf("args: %q %q", cat.lastChar, cat.lastExclude)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, apiRequest(http.MethodGet, "/api/v1/programs/custom/names/Pizza/available", "s", ""))
	var na struct {
		Name        string `json:"name"`
		IsAvailable bool   `json:"isAvailable"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &na)
	if w.Code != http.StatusOK || na.Name != "Pizza" || na.IsAvailable {
		t.Fatalf("name available: %d %s", w.Code, w.Body.String())
	}
	if cat.lastName != "Pizza" {
		t.Fatalf("name arg %q", cat.lastName)
	}
}
