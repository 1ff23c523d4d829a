// internal/api/responses/responses.go
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// APIResponse define o envelope padrão das respostas JSON.
type APIResponse struct {
	Status  string      `json:"status"` // "success" ou "error"
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// InitLogger define o logger usado pelas respostas.
func InitLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Success envia uma resposta de sucesso com os dados e a mensagem.
func Success(c *gin.Context, data interface{}, message string) {
	resp := APIResponse{Status: "success", Data: data, Message: message}
	c.JSON(http.StatusOK, resp)
	logger.Info("API success", zap.String("path", c.Request.URL.Path), zap.Int("status", http.StatusOK))
}

// Error envia uma resposta de erro com o código, a mensagem e os detalhes opcionais.
func Error(c *gin.Context, code int, message string, errs ...string) {
	resp := APIResponse{Status: "error", Message: message, Errors: errs}
	c.JSON(code, resp)
	logger.Error("API error", zap.String("path", c.Request.URL.Path), zap.Int("status", code), zap.Strings("errors", errs))
}

// Page renderiza um template HTML e registra o status.
func Page(c *gin.Context, code int, name string, data gin.H) {
	c.HTML(code, name, data)
	if code >= http.StatusBadRequest {
		logger.Warn("page error", zap.String("path", c.Request.URL.Path), zap.Int("status", code), zap.String("template", name))
	}
}
