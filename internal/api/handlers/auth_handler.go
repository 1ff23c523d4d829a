// internal/api/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"

	"dre-service/internal/api/responses"
	"dre-service/internal/core/auth"

	"github.com/gin-gonic/gin"
)

const loginTitle = "DRE - Área Restrita"

type AuthHandler struct {
	service    auth.Service
	cookieName string
	secure     bool
}

func NewAuthHandler(service auth.Service, cookieName string, secure bool) *AuthHandler {
	if cookieName == "" {
		cookieName = auth.DefaultCookieName
	}
	return &AuthHandler{service: service, cookieName: cookieName, secure: secure}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginPage mostra o formulário. Quem já tem sessão segue para o painel.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.service.Session(sessionToken(c, h.cookieName)).Authenticated {
		c.Redirect(http.StatusSeeOther, "/dre")
		return
	}
	responses.Page(c, http.StatusOK, "login.html", gin.H{"Title": loginTitle})
}

// LoginForm trata o envio do formulário de login.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	username := c.PostForm("usuario")
	password := c.PostForm("senha")

	token, err := h.service.Login(c.Request.Context(), username, password)
	if err != nil {
		code, message := loginFailure(err)
		responses.Page(c, code, "login.html", gin.H{"Title": loginTitle, "Message": message, "Username": username})
		return
	}

	h.setCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/dre")
}

// Login é a versão JSON do login; devolve o token e também grava o cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		code, message := loginFailure(err)
		responses.Error(c, code, message)
		return
	}

	h.setCookie(c, token)
	responses.Success(c, gin.H{"token": token}, "Login realizado com sucesso!")
}

// Logout apaga o cookie de sessão.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	// sem validade: cookie de sessão do navegador
	c.SetCookie(h.cookieName, token, 0, "/", "", h.secure, true)
}

func loginFailure(err error) (int, string) {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return http.StatusUnauthorized, "Usuário ou senha inválidos."
	}
	return http.StatusInternalServerError, "Erro ao verificar credenciais. Tente novamente."
}
