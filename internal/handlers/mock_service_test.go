package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"microwave/internal/models"
	"microwave/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	configured    bool
	configuredErr error
	configureErr  error
	token         models.AuthToken
	genTokenErr   error
	parseUser     string
	parseErr      error
	status        models.AuthStatus
	statusErr     error

	configureCalls  int
	lastConfigure   [3]string
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
}

func (m *mockAuth) Configure(ctx context.Context, username, password, connectionString string) error {
	m.configureCalls++
	m.lastConfigure = [3]string{username, password, connectionString}
	return m.configureErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (models.AuthToken, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.token, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}
func (m *mockAuth) IsConfigured(ctx context.Context) (bool, error) {
	return m.configured, m.configuredErr
}
func (m *mockAuth) Status(ctx context.Context) (models.AuthStatus, error) {
	return m.status, m.statusErr
}

// mockHeating records the session and arguments of every call. It is shared
// with the websocket goroutine, hence the lock.
type mockHeating struct {
	mu     sync.Mutex
	result models.OperationResult
	status models.HeatingStatus
	err    error

	calls        []string
	sessions     []string
	lastDuration int
	lastPower    int
	lastAdd      int
	lastProgram  string
}

func (m *mockHeating) record(op, sessionID string) (models.OperationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
	m.sessions = append(m.sessions, sessionID)
	return m.result, m.err
}

func (m *mockHeating) StartHeating(ctx context.Context, sessionID string, durationSeconds, powerLevel int) (models.OperationResult, error) {
	m.mu.Lock()
	m.lastDuration, m.lastPower = durationSeconds, powerLevel
	m.mu.Unlock()
	return m.record("start", sessionID)
}
func (m *mockHeating) QuickStart(ctx context.Context, sessionID string) (models.OperationResult, error) {
	return m.record("quick", sessionID)
}
func (m *mockHeating) StartPredefinedProgram(ctx context.Context, sessionID, name string) (models.OperationResult, error) {
	m.mu.Lock()
	m.lastProgram = name
	m.mu.Unlock()
	return m.record("predefined", sessionID)
}
func (m *mockHeating) StartCustomProgram(ctx context.Context, sessionID, id string) (models.OperationResult, error) {
	m.mu.Lock()
	m.lastProgram = id
	m.mu.Unlock()
	return m.record("custom", sessionID)
}
func (m *mockHeating) IncreaseTime(ctx context.Context, sessionID string, additionalSeconds int) (models.OperationResult, error) {
	m.mu.Lock()
	m.lastAdd = additionalSeconds
	m.mu.Unlock()
	return m.record("add-time", sessionID)
}
func (m *mockHeating) PauseOrCancel(ctx context.Context, sessionID string) (models.OperationResult, error) {
	return m.record("pause-or-cancel", sessionID)
}
func (m *mockHeating) GetHeatingProgress(ctx context.Context, sessionID string) (models.HeatingStatus, error) {
	_, err := m.record("status", sessionID)
	return m.status, err
}

func (m *mockHeating) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == op {
			n++
		}
	}
	return n
}

type mockCatalog struct {
	all         []models.ProgramDisplayInfo
	predefined  []models.ProgramDisplayInfo
	custom      []models.ProgramDisplayInfo
	byID        *models.ProgramDisplayInfo
	used        []string
	unique      bool
	available   bool
	err         error
	lastChar    string
	lastName    string
	lastExclude string
}

func (m *mockCatalog) GetAllPrograms(ctx context.Context) ([]models.ProgramDisplayInfo, error) {
	return m.all, m.err
}
func (m *mockCatalog) GetPredefinedPrograms() []models.ProgramDisplayInfo {
	return m.predefined
}
func (m *mockCatalog) GetCustomPrograms(ctx context.Context) ([]models.ProgramDisplayInfo, error) {
	return m.custom, m.err
}
func (m *mockCatalog) GetProgramByID(ctx context.Context, id string) (*models.ProgramDisplayInfo, error) {
	return m.byID, m.err
}
func (m *mockCatalog) IsCharacterUnique(ctx context.Context, char, excludeID string) (bool, error) {
	m.lastChar, m.lastExclude = char, excludeID
	return m.unique, m.err
}
func (m *mockCatalog) GetUsedCharacters(ctx context.Context) ([]string, error) {
	return m.used, m.err
}
func (m *mockCatalog) IsNameAvailable(ctx context.Context, name, excludeID string) (bool, error) {
	m.lastName, m.lastExclude = name, excludeID
	return m.available, m.err
}

type mockCustomPrograms struct {
	program   *models.CustomProgram
	result    models.CustomProgramResult
	deleteRes models.OperationResult
	err       error

	lastID    string
	lastInput models.CustomProgramInput
}

func (m *mockCustomPrograms) GetCustomProgram(ctx context.Context, id string) (*models.CustomProgram, error) {
	m.lastID = id
	return m.program, m.err
}
func (m *mockCustomPrograms) CreateProgram(ctx context.Context, in models.CustomProgramInput) (models.CustomProgramResult, error) {
	m.lastInput = in
	return m.result, m.err
}
func (m *mockCustomPrograms) UpdateProgram(ctx context.Context, id string, in models.CustomProgramInput) (models.CustomProgramResult, error) {
	m.lastID, m.lastInput = id, in
	return m.result, m.err
}
func (m *mockCustomPrograms) DeleteProgram(ctx context.Context, id string) (models.OperationResult, error) {
	m.lastID = id
	return m.deleteRes, m.err
}

type mockEventLog struct {
	resp       []models.HeatingEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.HeatingEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// apiRequest builds an authenticated request bound to the given session.
func apiRequest(method, target, session, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	return req
}
