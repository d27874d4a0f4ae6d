package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/campus-placement-api/internal/application/auth"
	"github.com/jhoicas/campus-placement-api/internal/application/lifecycle"
	"github.com/jhoicas/campus-placement-api/internal/application/usecase"
	"github.com/jhoicas/campus-placement-api/internal/application/views"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/infrastructure/memory"
	"github.com/jhoicas/campus-placement-api/internal/infrastructure/ratelimit"
	apphttp "github.com/jhoicas/campus-placement-api/internal/interfaces/http"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T, limiter *ratelimit.RedisLimiter) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	admin, err := auth.NewUser("root", entity.RoleAdmin, "root-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), admin))

	engine := lifecycle.NewEngine(store.Profiles(), store.Applications(), lifecycle.Options{}, nil)
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test"}, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil),
		ProfileUC:    usecase.NewProfileUseCase(store.Profiles()),
		Engine:       engine,
		Composer:     views.NewComposer(store.Profiles(), store.Applications()),
		LoginLimiter: limiter,
		JWTSecret:    testJWTSecret,
		Cookie:       apphttp.CookieConfig{Secure: true, MaxAge: 24 * time.Hour},
	})
	return &apiFixture{app: app, store: store}
}

type result struct {
	status  int
	body    map[string]any
	cookies []*http.Cookie
}

func (f *apiFixture) call(t *testing.T, method, path, token string, payload any) result {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.TokenCookie, Value: token})
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := result{status: resp.StatusCode, cookies: resp.Cookies()}
	_ = json.NewDecoder(resp.Body).Decode(&out.body)
	return out
}

// login devuelve el token que quedó en la cookie.
func (f *apiFixture) login(t *testing.T, userID, password string) string {
	t.Helper()
	res := f.call(t, http.MethodPost, "/api/login", "", map[string]string{"userid": userID, "password": password})
	require.Equal(t, http.StatusOK, res.status, res.body)
	for _, c := range res.cookies {
		if c.Name == apphttp.TokenCookie {
			assert.True(t, c.HttpOnly)
			assert.True(t, c.Secure)
			assert.Equal(t, 24*60*60, c.MaxAge)
			return c.Value
		}
	}
	t.Fatal("login sin cookie token")
	return ""
}

func (f *apiFixture) register(t *testing.T, adminToken, userID, role string) {
	t.Helper()
	res := f.call(t, http.MethodPost, "/api/register", adminToken, map[string]string{"userid": userID, "role": role, "password": "pass-" + userID})
	require.Equal(t, http.StatusCreated, res.status, res.body)
}

func data(t *testing.T, res result) map[string]any {
	t.Helper()
	d, ok := res.body["data"].(map[string]any)
	require.True(t, ok, res.body)
	return d
}

func TestAPI_FlujoCompleto(t *testing.T) {
	f := newAPI(t, nil)
	admin := f.login(t, "root", "root-pass")
	f.register(t, admin, "r@co.com", "recruiter")
	f.register(t, admin, "otro@co.com", "recruiter")
	f.register(t, admin, "2021cs101", "student")

	recruiter := f.login(t, "r@co.com", "pass-r@co.com")
	other := f.login(t, "otro@co.com", "pass-otro@co.com")
	student := f.login(t, "2021cs101", "pass-2021cs101")

	// Perfil del reclutador; el admin debe indicar dueño.
	res := f.call(t, http.MethodPost, "/api/create-profile", recruiter, map[string]string{"profile_code": "X1", "company_name": "Acme", "designation": "SDE"})
	require.Equal(t, http.StatusCreated, res.status, res.body)
	assert.Equal(t, "r@co.com", data(t, res)["recruiter_email"])

	res = f.call(t, http.MethodPost, "/api/create-profile", admin, map[string]string{"profile_code": "Y2", "company_name": "Beta", "designation": "PM"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	res = f.call(t, http.MethodPost, "/api/create-profile", admin, map[string]string{"profile_code": "Y2", "company_name": "Beta", "designation": "PM", "recruiter_email": "otro@co.com"})
	require.Equal(t, http.StatusCreated, res.status, res.body)
	res = f.call(t, http.MethodPost, "/api/create-profile", recruiter, map[string]string{"profile_code": "X1", "company_name": "Acme", "designation": "SDE"})
	assert.Equal(t, http.StatusConflict, res.status)
	res = f.call(t, http.MethodPost, "/api/create-profile", student, map[string]string{"profile_code": "Z3", "company_name": "C", "designation": "D"})
	assert.Equal(t, http.StatusForbidden, res.status)

	// Catálogo inicial.
	res = f.call(t, http.MethodGet, "/api/profiles", student, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "All", res.body["status"])
	assert.Len(t, res.body["data"], 2)

	// Postulación y duplicado.
	res = f.call(t, http.MethodPost, "/api/profile/X1", student, nil)
	require.Equal(t, http.StatusCreated, res.status, res.body)
	assert.Equal(t, "Applied", data(t, res)["status"])
	res = f.call(t, http.MethodPost, "/api/profile/X1", student, nil)
	assert.Equal(t, http.StatusConflict, res.status)
	res = f.call(t, http.MethodPost, "/api/profile/NOPE", student, nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	// Aceptar antes de ser seleccionado.
	res = f.call(t, http.MethodPost, "/api/profile/application/accept", student, map[string]string{"profile_code": "X1", "status": "Accepted"})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "INVALID_STATE", res.body["code"])

	// Reclutador ajeno y Accepted prohibidos.
	change := map[string]string{"profile_code": "X1", "entry_number": "2021cs101", "status": "Selected"}
	res = f.call(t, http.MethodPost, "/api/profile/application/change-status", other, change)
	assert.Equal(t, http.StatusForbidden, res.status)
	res = f.call(t, http.MethodPost, "/api/profile/application/change-status", recruiter, map[string]string{"profile_code": "X1", "entry_number": "2021cs101", "status": "Accepted"})
	assert.Equal(t, http.StatusForbidden, res.status)
	res = f.call(t, http.MethodPost, "/api/profile/application/change-status", student, change)
	assert.Equal(t, http.StatusForbidden, res.status)

	res = f.call(t, http.MethodPost, "/api/profile/application/change-status", recruiter, change)
	require.Equal(t, http.StatusOK, res.status, res.body)
	assert.Equal(t, "Selected", data(t, res)["status"])

	res = f.call(t, http.MethodGet, "/api/profiles", student, nil)
	assert.Equal(t, "Selected", res.body["status"])

	res = f.call(t, http.MethodPost, "/api/profile/application/accept", student, map[string]string{"profile_code": "X1", "status": "Accepted"})
	require.Equal(t, http.StatusOK, res.status, res.body)
	res = f.call(t, http.MethodPost, "/api/profile/application/accept", student, map[string]string{"profile_code": "X1", "status": "Accepted"})
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = f.call(t, http.MethodGet, "/api/profiles", student, nil)
	assert.Equal(t, "Accepted", res.body["status"])
	assert.Len(t, res.body["data"], 1)

	// Paneles.
	res = f.call(t, http.MethodPost, "/api/user/me", student, nil)
	require.Equal(t, http.StatusOK, res.status)
	rows := res.body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "Accepted", rows[0].(map[string]any)["status"])
	assert.Equal(t, "Acme", rows[0].(map[string]any)["company_name"])

	res = f.call(t, http.MethodPost, "/api/user/me", recruiter, nil)
	require.Equal(t, http.StatusOK, res.status)
	rows = res.body["data"].([]any)
	require.Len(t, rows, 1)
	applicants := rows[0].(map[string]any)["applicants"].([]any)
	require.Len(t, applicants, 1)
	assert.Equal(t, map[string]any{"entry_number": "2021cs101", "status": "Accepted"}, applicants[0])

	res = f.call(t, http.MethodPost, "/api/user/me", admin, nil)
	rows = res.body["data"].([]any)
	assert.Len(t, rows, 2)
	assert.Equal(t, []any{}, rows[1].(map[string]any)["applicants"])
}

func TestAPI_PostulacionSobreviveOtrosRequests(t *testing.T) {
	f := newAPI(t, nil)
	admin := f.login(t, "root", "root-pass")
	f.register(t, admin, "r@co.com", "recruiter")
	f.register(t, admin, "2021CS101", "student")
	recruiter := f.login(t, "r@co.com", "pass-r@co.com")
	student := f.login(t, "2021CS101", "pass-2021CS101")

	res := f.call(t, http.MethodPost, "/api/create-profile", recruiter, map[string]string{"profile_code": "X1", "company_name": "Acme", "designation": "SDE"})
	require.Equal(t, http.StatusCreated, res.status, res.body)
	res = f.call(t, http.MethodPost, "/api/profile/X1", student, nil)
	require.Equal(t, http.StatusCreated, res.status, res.body)
	assert.Equal(t, "2021cs101", data(t, res)["entry_number"])

	// Otro request con parámetro de ruta no altera la postulación guardada.
	res = f.call(t, http.MethodPost, "/api/profile/NOPE", student, nil)
	require.Equal(t, http.StatusNotFound, res.status)
	apps, err := f.store.Applications().ListByApplicant(context.Background(), "2021cs101")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "X1", apps[0].ProfileCode)

	// El reclutador escribe el entry_number tal como se registró.
	res = f.call(t, http.MethodPost, "/api/profile/application/change-status", recruiter, map[string]string{"profile_code": "X1", "entry_number": "2021CS101", "status": "Selected"})
	require.Equal(t, http.StatusOK, res.status, res.body)
	assert.Equal(t, "Selected", data(t, res)["status"])

	res = f.call(t, http.MethodPost, "/api/profile/application/accept", student, map[string]string{"profile_code": " X1 ", "status": "Accepted"})
	require.Equal(t, http.StatusOK, res.status, res.body)
	assert.Equal(t, "Accepted", data(t, res)["status"])
}

func TestAPI_Errores(t *testing.T) {
	f := newAPI(t, nil)
	admin := f.login(t, "root", "root-pass")

	t.Run("sin token", func(t *testing.T) {
		res := f.call(t, http.MethodGet, "/api/profiles", "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.status)
	})

	t.Run("credenciales inválidas", func(t *testing.T) {
		res := f.call(t, http.MethodPost, "/api/login", "", map[string]string{"userid": "root", "password": "mal"})
		assert.Equal(t, http.StatusUnauthorized, res.status)
		res = f.call(t, http.MethodPost, "/api/login", "", map[string]string{"userid": "nadie", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, res.status)
	})

	t.Run("validación con campos", func(t *testing.T) {
		res := f.call(t, http.MethodPost, "/api/profile/application/change-status", admin, map[string]string{"profile_code": "X1", "status": "Hired"})
		require.Equal(t, http.StatusBadRequest, res.status)
		assert.Equal(t, "VALIDATION", res.body["code"])
		assert.ElementsMatch(t, []any{"entry_number", "status"}, res.body["fields"])

		res = f.call(t, http.MethodPost, "/api/register", admin, map[string]string{"userid": "x", "role": "guest", "password": "p"})
		assert.Equal(t, http.StatusBadRequest, res.status)
	})

	t.Run("postulación inexistente", func(t *testing.T) {
		res := f.call(t, http.MethodPost, "/api/create-profile", admin, map[string]string{"profile_code": "X1", "company_name": "A", "designation": "B", "recruiter_email": "r@co.com"})
		require.Equal(t, http.StatusCreated, res.status)
		res = f.call(t, http.MethodPost, "/api/profile/application/change-status", admin, map[string]string{"profile_code": "X1", "entry_number": "nadie", "status": "Selected"})
		assert.Equal(t, http.StatusNotFound, res.status)
	})

	t.Run("usuario duplicado", func(t *testing.T) {
		f.register(t, admin, "dup", "student")
		res := f.call(t, http.MethodPost, "/api/register", admin, map[string]string{"userid": "dup", "role": "student", "password": "p"})
		assert.Equal(t, http.StatusConflict, res.status)
	})

	t.Run("logout expira la cookie", func(t *testing.T) {
		res := f.call(t, http.MethodPost, "/api/logout", "", nil)
		require.Equal(t, http.StatusOK, res.status)
		require.NotEmpty(t, res.cookies)
		assert.Equal(t, apphttp.TokenCookie, res.cookies[0].Name)
		assert.Empty(t, res.cookies[0].Value)
		assert.True(t, res.cookies[0].Expires.Before(time.Now()))
	})

	t.Run("health", func(t *testing.T) {
		res := f.call(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, res.status)
		assert.Equal(t, "ok", res.body["status"])
	})
}

func TestAPI_LoginRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newAPI(t, ratelimit.NewRedisLimiter(client, 2, time.Minute, "login", nil))
	creds := map[string]string{"userid": "root", "password": "mal"}
	for range 2 {
		res := f.call(t, http.MethodPost, "/api/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, res.status)
	}
	res := f.call(t, http.MethodPost, "/api/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, res.status)
	assert.Equal(t, "TOO_MANY_REQUESTS", res.body["code"])
}
