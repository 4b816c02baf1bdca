package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/service"
	"github.com/sthanna/UsTaxesFree/internal/storage/postgres"
)

// In-memory stores backing the router under test.

type memUsers struct{ users map[string]postgres.User }

func (m *memUsers) Create(_ context.Context, u *postgres.User) error {
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*postgres.User, error) {
	if u, ok := m.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*postgres.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

type memReturns struct{ returns map[string]postgres.TaxReturn }

func (m *memReturns) Save(_ context.Context, r *postgres.TaxReturn) error {
	m.returns[r.ID] = *r
	return nil
}

func (m *memReturns) Get(_ context.Context, id string) (*postgres.TaxReturn, error) {
	if r, ok := m.returns[id]; ok {
		out := r
		return &out, nil
	}
	return nil, nil
}

func (m *memReturns) ListByUser(_ context.Context, userID string) ([]postgres.TaxReturn, error) {
	var out []postgres.TaxReturn
	for _, r := range m.returns {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReturns) Delete(_ context.Context, id string) error {
	delete(m.returns, id)
	return nil
}

type memW2s struct{ records map[string]postgres.W2Record }

func (m *memW2s) Save(_ context.Context, r *postgres.W2Record) error {
	m.records[r.ID] = *r
	return nil
}

func (m *memW2s) ListByReturn(_ context.Context, returnID string) ([]postgres.W2Record, error) {
	var out []postgres.W2Record
	for _, r := range m.records {
		if r.ReturnID == returnID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memW2s) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

type mem1099s struct{ records map[string]postgres.Form1099Record }

func (m *mem1099s) Save(_ context.Context, r *postgres.Form1099Record) error {
	m.records[r.ID] = *r
	return nil
}

func (m *mem1099s) ListByReturn(_ context.Context, returnID string) ([]postgres.Form1099Record, error) {
	var out []postgres.Form1099Record
	for _, r := range m.records {
		if r.ReturnID == returnID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mem1099s) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

type memTxs struct{ records map[string]postgres.TransactionRecord }

func (m *memTxs) Add(_ context.Context, r *postgres.TransactionRecord) error {
	m.records[r.ID] = *r
	return nil
}

func (m *memTxs) ListByReturn(_ context.Context, returnID string) ([]postgres.TransactionRecord, error) {
	var out []postgres.TransactionRecord
	for _, r := range m.records {
		if r.ReturnID == returnID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memTxs) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

type memDeps struct{ records map[string]postgres.DependentRecord }

func (m *memDeps) Add(_ context.Context, r *postgres.DependentRecord) error {
	m.records[r.ID] = *r
	return nil
}

func (m *memDeps) ListByReturn(_ context.Context, returnID string) ([]postgres.DependentRecord, error) {
	var out []postgres.DependentRecord
	for _, r := range m.records {
		if r.ReturnID == returnID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memDeps) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

type memItemized struct{ records map[string]postgres.ItemizedRecord }

func (m *memItemized) Save(_ context.Context, r *postgres.ItemizedRecord) error {
	m.records[r.ReturnID] = *r
	return nil
}

func (m *memItemized) Get(_ context.Context, returnID string) (*postgres.ItemizedRecord, error) {
	if r, ok := m.records[returnID]; ok {
		out := r
		return &out, nil
	}
	return nil, nil
}

func (m *memItemized) Delete(_ context.Context, returnID string) error {
	delete(m.records, returnID)
	return nil
}

var apiTestSecret = []byte("api-test-secret-0123456789")

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := &memUsers{users: map[string]postgres.User{}}
	authSvc := service.NewAuthService(users, apiTestSecret, time.Hour, nil)
	returnSvc := service.NewReturnService(
		&memReturns{returns: map[string]postgres.TaxReturn{}},
		&memW2s{records: map[string]postgres.W2Record{}},
		&mem1099s{records: map[string]postgres.Form1099Record{}},
		&memTxs{records: map[string]postgres.TransactionRecord{}},
		&memDeps{records: map[string]postgres.DependentRecord{}},
		&memItemized{records: map[string]postgres.ItemizedRecord{}},
		nil, nil,
	)

	return NewRouter(NewHandler(authSvc, returnSvc, users, apiTestSecret))
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "hunter2hunter2", "firstName": "Jane", "lastName": "Filer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createReturn(t *testing.T, router *gin.Engine, token string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/returns", token, gin.H{
		"taxYear": 2025, "filingStatus": "SINGLE", "residentState": "NY",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ret postgres.TaxReturn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ret))
	require.NotEmpty(t, ret.ID)
	return ret.ID
}

func TestHealth(t *testing.T) {
	router := newTestRouter()
	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter()

	token := registerAndLogin(t, router, "jane@example.com")
	assert.NotEmpty(t, token)

	// Duplicate registration conflicts.
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "jane@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password is unauthorized.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReturnsRequireAuth(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/returns", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReturnLifecycle(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "jane@example.com")

	returnID := createReturn(t, router, token)

	w := doJSON(t, router, http.MethodGet, "/api/v1/returns", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []postgres.TaxReturn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/returns/"+returnID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/returns/"+returnID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReturnOwnershipHidden(t *testing.T) {
	router := newTestRouter()
	ownerToken := registerAndLogin(t, router, "owner@example.com")
	intruderToken := registerAndLogin(t, router, "intruder@example.com")

	returnID := createReturn(t, router, ownerToken)

	// A non-owner sees 404, not 403.
	w := doJSON(t, router, http.MethodGet, "/api/v1/returns/"+returnID, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalculateFlow(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "jane@example.com")
	returnID := createReturn(t, router, token)

	w := doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/w2s", token, gin.H{
		"employer": "Acme Corp", "wages": 50000.0, "federalTaxWithheld": 6000.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/calculate", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2025, result.TaxYear)
	assert.Equal(t, 5250.0, domain.LineValue(result.Lines, "1040", "16"))
	assert.Equal(t, 750.0, result.Refund)
	require.NotNil(t, result.StateResult)
	assert.Equal(t, "NY", result.StateResult.State)
}

func TestDocumentEndpoints(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "jane@example.com")
	returnID := createReturn(t, router, token)

	w := doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/form1099s", token, gin.H{
		"payer": "Big Bank", "kind": "INT", "amount": 120.25,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/transactions", token, gin.H{
		"description": "10 VTI", "proceeds": 2500.0, "costBasis": 2000.0, "isLongTerm": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/dependents", token, gin.H{
		"firstName": "Jamie", "lastName": "Filer", "dateOfBirth": "2015-04-12", "relationship": "Child",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPut, "/api/v1/returns/"+returnID+"/schedule1", token, gin.H{
		"additionalIncome": 1000.0, "adjustments": 200.0,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/returns/"+returnID+"/payments", token, gin.H{
		"taxPayments": 500.0,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/returns/"+returnID+"/schedule-a", token, gin.H{
		"mortgageInterest": 9000.0,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	// Bad dependent date is a 400, not a 500.
	w = doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/dependents", token, gin.H{
		"firstName": "Bad", "lastName": "Date", "dateOfBirth": "12/04/2015", "relationship": "Child",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The calculation reflects the stored documents.
	w = doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/calculate", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 120.25, domain.LineValue(result.Lines, "1040", "2b"))
	assert.Equal(t, 2000.0, domain.LineValue(result.Lines, "1040", "19"))
}

func TestExportEndpoints(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "jane@example.com")
	returnID := createReturn(t, router, token)

	w := doJSON(t, router, http.MethodPost, "/api/v1/returns/"+returnID+"/w2s", token, gin.H{
		"employer": "Acme Corp", "wages": 50000.0, "federalTaxWithheld": 6000.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/returns/"+returnID+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doJSON(t, router, http.MethodGet, "/api/v1/returns/"+returnID+"/xlsx", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	w = doJSON(t, router, http.MethodGet, "/api/v1/returns/"+returnID+"/efile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Return")
	assert.Contains(t, w.Body.String(), "Jane Filer")
}
