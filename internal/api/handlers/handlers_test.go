package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"dre-service/internal/api/responses"
	"dre-service/internal/core/auth"
	"dre-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDRE struct {
	err     error
	lastDay *time.Time
}

func (f *fakeDRE) Report(ctx context.Context, fund domain.Fund) (domain.Report, error) {
	if f.err != nil {
		return domain.Report{}, f.err
	}
	return domain.Report{
		Fund: fund,
		History: domain.History{
			Columns: []string{"Ativos"},
			Rows: []domain.NormalizedRow{
				{Line: 2, Date: time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"Ativos": 10}},
			},
		},
		Original: domain.OriginalTable{Header: []string{"", "jan/25"}},
	}, nil
}

func (f *fakeDRE) Dashboard(ctx context.Context, fund domain.Fund, day *time.Time) (domain.Dashboard, error) {
	f.lastDay = day
	if fund != domain.FundApuama && fund != domain.FundBristol {
		return domain.Dashboard{}, domain.ErrUnknownFund
	}
	if f.err != nil {
		return domain.Dashboard{}, f.err
	}
	d := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	return domain.Dashboard{
		Fund: fund, Date: d, MinDate: d, MaxDate: d,
		Cards: []domain.Card{{Column: "Ativos", Value: 10, Display: "R$ 10,00", Class: domain.CardNormal}},
	}, nil
}

type testEnv struct {
	router *gin.Engine
	dre    *fakeDRE
}

func newEnv(t *testing.T) testEnv {
	t.Helper()
	return newEnvWithCookie(t, "")
}

func newEnvWithCookie(t *testing.T, cookieName string) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	responses.InitLogger(zap.NewNop())

	sessions, err := auth.NewSessionManager([]byte("segredo"))
	require.NoError(t, err)
	authService := auth.NewService(auth.NewStaticStore(map[string]string{"Joao": "LibraJP"}), sessions, zap.NewNop())

	fake := &fakeDRE{}
	router, err := NewRouter(RouterConfig{Auth: authService, DRE: fake, CookieName: cookieName, CardsPerRow: 3})
	require.NoError(t, err)
	return testEnv{router: router, dre: fake}
}

func (e testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	form := url.Values{"usuario": {"Joao"}, "senha": {"LibraJP"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := e.do(req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dre", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	return cookies[0]
}

func (e testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

func TestDashboardRequiresSession(t *testing.T) {
	env := newEnv(t)

	w := env.get("/dre", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = env.get("/api/v1/dre", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailureRendersFormAgain(t *testing.T) {
	env := newEnv(t)
	form := url.Values{"usuario": {"Joao"}, "senha": {"errada"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := env.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Usuário ou senha inválidos.")
	assert.Contains(t, w.Body.String(), `name="senha"`)
	assert.Empty(t, w.Result().Cookies())
}

func TestDashboardPage(t *testing.T) {
	env := newEnv(t)
	cookie := env.login(t)

	w := env.get("/dre?fundo=Bristol&data=02/01/2025", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "DRE - Fundo Bristol")
	assert.Contains(t, body, "R$ 10,00")
	assert.Contains(t, body, "Joao")
	require.NotNil(t, env.dre.lastDay)
	assert.Equal(t, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC), *env.dre.lastDay)
}

func TestDashboardAcceptsISODate(t *testing.T) {
	env := newEnv(t)

	w := env.get("/dre?data=2025-01-02", env.login(t))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.dre.lastDay)
}

func TestDashboardErrors(t *testing.T) {
	env := newEnv(t)
	cookie := env.login(t)

	assert.Equal(t, http.StatusBadRequest, env.get("/dre?fundo=Outro", cookie).Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/dre?data=ontem", cookie).Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/dre?data=45000", cookie).Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/api/v1/dre?data=45000", cookie).Code)

	env.dre.err = &domain.SourceUnavailableError{Sheet: "Dre_Apuama", Err: errors.New("timeout")}
	w := env.get("/dre", cookie)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Não foi possível carregar a planilha")
}

func TestCustomCookieName(t *testing.T) {
	env := newEnvWithCookie(t, "painel")
	form := url.Values{"usuario": {"Joao"}, "senha": {"LibraJP"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := env.do(req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "painel", cookies[0].Name)
	assert.Equal(t, http.StatusOK, env.get("/dre", cookies[0]).Code)

	stale := &http.Cookie{Name: auth.DefaultCookieName, Value: cookies[0].Value}
	assert.Equal(t, http.StatusSeeOther, env.get("/dre", stale).Code)
}

func TestAPIDashboard(t *testing.T) {
	env := newEnv(t)

	w := env.get("/api/v1/dre?fundo=Apuama", env.login(t))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status string           `json:"status"`
		Data   domain.Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, domain.FundApuama, resp.Data.Fund)
	require.Len(t, resp.Data.Cards, 1)
	assert.Equal(t, "R$ 10,00", resp.Data.Cards[0].Display)
}

func TestAPILoginAndBearerToken(t *testing.T) {
	env := newEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(`{"username":"Joao","password":"LibraJP"}`))
	req.Header.Set("Content-Type", "application/json")

	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dre", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	assert.Equal(t, http.StatusOK, env.do(req).Code)
}

func TestExports(t *testing.T) {
	env := newEnv(t)
	cookie := env.login(t)

	w := env.get("/dre/export.csv?fundo=Apuama", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "DRE_Apuama_")
	assert.Contains(t, w.Body.String(), "02/01/2025;10,00")

	w = env.get("/dre/export.xlsx?fundo=Apuama", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(env.login(t))

	w := env.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestHealth(t *testing.T) {
	w := newEnv(t).get("/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "UP")
}
