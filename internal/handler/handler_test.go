package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/voltpoint/charge-station-api/internal/config"
	"github.com/voltpoint/charge-station-api/internal/handler"
	"github.com/voltpoint/charge-station-api/internal/repository"
	"github.com/voltpoint/charge-station-api/internal/usecase"
	"github.com/voltpoint/charge-station-api/shared/auth"
	"github.com/voltpoint/charge-station-api/shared/validation"
)

type capturingMailer struct {
	htmlBody string
	sent     int
}

func (m *capturingMailer) SendHTML(_ []string, _, htmlBody string) error {
	m.htmlBody = htmlBody
	m.sent++
	return nil
}

type testApp struct {
	router   http.Handler
	userRepo repository.UserRepository
	mailer   *capturingMailer
	jwtAuth  auth.JWTAuthenticator
	cfg      *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		AppPasswordResetURL: "https://app.example.com/reset-password",
		Token: config.TokenConfig{
			Secret:               "test-secret",
			ExpiresIn:            time.Hour,
			Issuer:               "charge-station-api-test",
			PasswordResetExpires: time.Hour,
		},
	}

	logger := zerolog.Nop()
	userRepo := repository.NewUserMemoryRepository()
	stationRepo := repository.NewStationMemoryRepository()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	mailer := &capturingMailer{}

	validator, err := validation.New()
	require.NoError(t, err)

	authUsecase := usecase.NewAuthUsecase(userRepo, stationRepo, jwtAuth, cfg)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, mailer, cfg)
	stationUsecase := usecase.NewStationUsecase(stationRepo)

	router := handler.NewRouter(
		handler.NewAuthHandler(authUsecase, validator, &logger),
		handler.NewPasswordResetHandler(resetUsecase, validator, &logger),
		handler.NewStationHandler(stationUsecase, validator, &logger),
		handler.Authenticator(jwtAuth, cfg.Token.Secret),
		&logger,
	)

	return &testApp{
		router:   router,
		userRepo: userRepo,
		mailer:   mailer,
		jwtAuth:  jwtAuth,
		cfg:      cfg,
	}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (a *testApp) register(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok)
	return token
}

func TestRootAndHealth(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "API is running", decodeBody(t, rec)["message"])

	rec = app.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_ValidationErrors(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs, ok := decodeBody(t, rec)["errors"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Impostor", "email": "a@x.com", "password": "secret2",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "Alice", body["name"])
	require.Equal(t, "a@x.com", body["email"])
	// The password hash never leaves the server.
	require.NotContains(t, rec.Body.String(), "password")

	rec = app.do(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_ExpiredToken(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.register(t, "Alice", "a@x.com", "secret1")

	user, err := app.userRepo.GetUserByEmail(t.Context(), "a@x.com")
	require.NoError(t, err)

	expired, err := app.jwtAuth.GenerateToken(user.ID.Hex(), app.cfg.Token.Secret, -time.Minute)
	require.NoError(t, err)

	rec := app.do(t, http.MethodGet, "/api/auth/me", expired, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decodeBody(t, rec)["token"])

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodPut, "/api/auth/update", token, map[string]string{"name": "Alice B."})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Alice B.", body["name"])
	require.Equal(t, "a@x.com", body["email"])

	rec = app.do(t, http.MethodPut, "/api/auth/update", token, map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodDelete, "/api/auth/delete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The token still verifies, but the account is gone.
	rec = app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodPut, "/api/auth/update-password", token, map[string]string{
		"currentPassword": "wrong-password", "newPassword": "newsecret",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/auth/update-password", token, map[string]string{
		"currentPassword": "secret1", "newPassword": "newsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "newsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "nobody@x.com",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, app.mailer.sent)

	user, err := app.userRepo.GetUserByEmail(t.Context(), "a@x.com")
	require.NoError(t, err)
	resetToken := user.ResetToken
	require.NotEmpty(t, resetToken)

	rec = app.do(t, http.MethodPut, "/api/auth/reset-password/"+resetToken, "", map[string]string{
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/auth/reset-password/"+resetToken, "", map[string]string{
		"password": "newsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/auth/reset-password/"+resetToken, "", map[string]string{
		"password": "anothersecret",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "newsecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStationCreate_Validation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodPost, "/api/stations", token, map[string]any{
		"name":     "Downtown Charger",
		"location": map[string]any{"longitude": 13.405},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs, ok := decodeBody(t, rec)["errors"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, errs, "latitude")
	require.Contains(t, errs, "powerOutput")
	require.Contains(t, errs, "connectorType")
}

func TestStations_RequireAuth(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/stations", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStationLifecycle(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	aliceToken := app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodPost, "/api/stations", aliceToken, map[string]any{
		"name":          "Downtown Charger",
		"location":      map[string]any{"latitude": 52.52, "longitude": 13.405},
		"powerOutput":   50,
		"connectorType": "CCS",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody(t, rec)
	require.Equal(t, "Active", created["status"])
	stationID, ok := created["id"].(string)
	require.True(t, ok)

	rec = app.do(t, http.MethodGet, "/api/stations", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stations []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stations))
	require.Len(t, stations, 1)
	require.Equal(t, "Downtown Charger", stations[0]["name"])

	// A different authenticated user may read but not mutate.
	bobToken := app.register(t, "Bob", "b@x.com", "secret2")

	rec = app.do(t, http.MethodGet, "/api/stations/"+stationID, bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/stations/"+stationID, bobToken, map[string]any{
		"status": "Inactive",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodDelete, "/api/stations/"+stationID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPut, "/api/stations/"+stationID, aliceToken, map[string]any{
		"status": "Inactive",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody(t, rec)
	require.Equal(t, "Inactive", updated["status"])
	require.Equal(t, "Downtown Charger", updated["name"])

	rec = app.do(t, http.MethodDelete, "/api/stations/"+stationID, aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/stations/"+stationID, aliceToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStationGet_UnknownID(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := app.register(t, "Alice", "a@x.com", "secret1")

	rec := app.do(t, http.MethodGet, "/api/stations/not-an-object-id", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
