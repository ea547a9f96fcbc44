package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmdelacruz/sis-backend/internal/app/controllers"
	"github.com/jmdelacruz/sis-backend/internal/app/repositories"
	"github.com/jmdelacruz/sis-backend/internal/app/routes"
	"github.com/jmdelacruz/sis-backend/internal/app/services"
	"github.com/jmdelacruz/sis-backend/internal/middleware"
	"github.com/jmdelacruz/sis-backend/internal/pkg/auth"
)

// newTestRouter wires the full HTTP stack against in-memory stores, so these
// tests exercise routing, auth middleware, controllers and services together.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lgr := zerolog.Nop()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "sis.test",
	})

	userService := services.NewUserService(repositories.NewInMemoryUserRepository(), jwtService, lgr)
	studentService := services.NewStudentService(repositories.NewInMemoryStudentRepository(), lgr)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewUserController(userService, lgr),
		controllers.NewStudentController(studentService, lgr),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"userId":    "u-100",
		"firstName": "Maria",
		"lastName":  "Reyes",
		"email":     "maria@example.com",
		"password":  "s3cret-pass",
		"role":      "admin",
	}
}

// registerAndLogin creates an account and returns a valid session token.
func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "maria@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u-100", user["userId"])
	assert.Equal(t, "maria@example.com", user["email"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "response must never carry a password field")
}

func TestRegisterMissingFieldsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"userId": "u-100",
		"email":  "maria@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Missing required fields", body["message"])

	required, ok := body["requiredFields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, required["userId"])
	assert.Equal(t, false, required["firstName"])
	assert.Equal(t, false, required["lastName"])
	assert.Equal(t, true, required["email"])
	assert.Equal(t, false, required["password"])
}

func TestRegisterDuplicateEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same email, different userId.
	dup := registerPayload()
	dup["userId"] = "u-200"
	rec = doJSON(t, router, http.MethodPost, "/api/users/register", "", dup)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use", decodeBody(t, rec)["message"])

	// Same userId, different email.
	dup = registerPayload()
	dup["email"] = "other@example.com"
	rec = doJSON(t, router, http.MethodPost, "/api/users/register", "", dup)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User ID already exists", decodeBody(t, rec)["message"])
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "maria@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
	assert.EqualValues(t, 3600, body["expiresIn"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
}

func TestLoginFailures(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	// Unknown account.
	rec = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["message"])

	// Wrong password.
	rec = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email":    "maria@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])

	// Missing credentials are rejected at binding.
	rec = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"email": "maria@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/u-100"},
		{http.MethodDelete, "/api/users/u-100"},
		{http.MethodGet, "/api/students"},
		{http.MethodPost, "/api/students/profile"},
	} {
		rec := doJSON(t, router, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Authentication required", decodeBody(t, rec)["message"])
	}

	// A syntactically valid but forged token is also rejected.
	rec := doJSON(t, router, http.MethodGet, "/api/users", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeBody(t, rec)["message"])
}

func TestUserCRUDEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router)

	// List.
	rec := doJSON(t, router, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "u-100", users[0]["userId"])

	// Get by natural key.
	rec = doJSON(t, router, http.MethodGet, "/api/users/u-100", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "maria@example.com", decodeBody(t, rec)["email"])

	// Get by storage id.
	rec = doJSON(t, router, http.MethodGet, "/api/users/id/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-100", decodeBody(t, rec)["userId"])

	rec = doJSON(t, router, http.MethodGet, "/api/users/id/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid id parameter", decodeBody(t, rec)["message"])

	// Partial update by natural key.
	rec = doJSON(t, router, http.MethodPut, "/api/users/u-100", token, map[string]interface{}{
		"firstName": "Mariana",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User updated successfully", body["message"])
	updated, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Mariana", updated["firstName"])
	assert.Equal(t, "Reyes", updated["lastName"])

	// Unknown user.
	rec = doJSON(t, router, http.MethodGet, "/api/users/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeBody(t, rec)["message"])

	// Delete.
	rec = doJSON(t, router, http.MethodDelete, "/api/users/u-100", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decodeBody(t, rec)["message"])

	rec = doJSON(t, router, http.MethodDelete, "/api/users/u-100", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func studentPayload() map[string]interface{} {
	return map[string]interface{}{
		"studentId": "2024-0001",
		"firstName": "Ana",
		"lastName":  "Santos",
		"program":   "BS Computer Science",
		"year":      2,
		"section":   "B",
	}
}

func TestStudentCRUDEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router)

	// Create.
	rec := doJSON(t, router, http.MethodPost, "/api/students/profile", token, studentPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Student profile created successfully", body["message"])
	created, ok := body["student"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2024-0001", created["studentId"])

	// Duplicate natural key.
	rec = doJSON(t, router, http.MethodPost, "/api/students/profile", token, studentPayload())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Student profile already exists", decodeBody(t, rec)["message"])

	// List.
	rec = doJSON(t, router, http.MethodGet, "/api/students", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	assert.Len(t, students, 1)

	// Get by natural key.
	rec = doJSON(t, router, http.MethodGet, "/api/students/profile/2024-0001", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", decodeBody(t, rec)["firstName"])

	// Get by storage id.
	rec = doJSON(t, router, http.MethodGet, "/api/students/id/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-0001", decodeBody(t, rec)["studentId"])

	// Partial update; a studentId in the body is ignored.
	rec = doJSON(t, router, http.MethodPut, "/api/students/profile/2024-0001", token, map[string]interface{}{
		"studentId": "9999-9999",
		"year":      3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "Student profile updated successfully", body["message"])
	updated, ok := body["student"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, updated["year"])
	assert.Equal(t, "2024-0001", updated["studentId"])

	// Unknown student.
	rec = doJSON(t, router, http.MethodGet, "/api/students/profile/0000-0000", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Student profile not found", decodeBody(t, rec)["message"])

	// Delete.
	rec = doJSON(t, router, http.MethodDelete, "/api/students/profile/2024-0001", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Student profile deleted successfully", decodeBody(t, rec)["message"])

	rec = doJSON(t, router, http.MethodDelete, "/api/students/profile/2024-0001", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentValidateEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/students/validate", token, studentPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["isValid"])

	rec = doJSON(t, router, http.MethodPost, "/api/students/validate", token, map[string]interface{}{
		"studentId": "2024-0002",
		"firstName": "Bea",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, false, body["isValid"])

	required, ok := body["requiredFields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, required["studentId"])
	assert.Equal(t, true, required["firstName"])
	assert.Equal(t, false, required["lastName"])
	assert.Equal(t, false, required["program"])
	assert.Equal(t, false, required["year"])
	assert.Equal(t, false, required["section"])

	// The dry run never persists.
	rec = doJSON(t, router, http.MethodGet, "/api/students", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	assert.Empty(t, students)
}

func TestPublicAndFallbackRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student Information System")

	rec = doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])

	rec = doJSON(t, router, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rec)["message"])
}
