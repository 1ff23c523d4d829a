// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dre-service/internal/api/responses"
	"dre-service/internal/core/dre"
	"dre-service/internal/core/export"
	"dre-service/internal/core/sheets"
	"dre-service/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler atende o painel da DRE, a API JSON e as exportações.
type DashboardHandler struct {
	service     dre.Service
	cardsPerRow int
}

// NewDashboardHandler cria o handler do painel.
func NewDashboardHandler(service dre.Service, cardsPerRow int) *DashboardHandler {
	if cardsPerRow <= 0 {
		cardsPerRow = 3
	}
	return &DashboardHandler{service: service, cardsPerRow: cardsPerRow}
}

type dashboardQuery struct {
	Fund domain.Fund
	Day  *time.Time
}

// parseQuery lê ?fundo= e ?data=. Sem fundo, usa o primeiro da lista.
func parseQuery(c *gin.Context) (dashboardQuery, error) {
	q := dashboardQuery{Fund: domain.Funds[0]}
	if fund := strings.TrimSpace(c.Query("fundo")); fund != "" {
		q.Fund = domain.Fund(fund)
	}
	if raw := strings.TrimSpace(c.Query("data")); raw != "" {
		day, ok := sheets.ParseDayFirst(raw)
		if !ok {
			return q, fmt.Errorf("data inválida: %q", raw)
		}
		q.Day = &day
	}
	return q, nil
}

// Page renderiza o painel.
func (h *DashboardHandler) Page(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.errorPage(c, http.StatusBadRequest, err.Error())
		return
	}

	dash, err := h.service.Dashboard(c.Request.Context(), q.Fund, q.Day)
	if err != nil {
		code, message := dashboardFailure(err)
		h.errorPage(c, code, message)
		return
	}

	responses.Page(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":       fmt.Sprintf("DRE - Fundo %s", dash.Fund),
		"Dashboard":   dash,
		"Funds":       domain.Funds,
		"User":        currentSession(c).Username,
		"CardsPerRow": h.cardsPerRow,
	})
}

// API devolve o mesmo modelo do painel em JSON.
func (h *DashboardHandler) API(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Parâmetros inválidos", err.Error())
		return
	}

	dash, err := h.service.Dashboard(c.Request.Context(), q.Fund, q.Day)
	if err != nil {
		code, message := dashboardFailure(err)
		responses.Error(c, code, message, err.Error())
		return
	}

	message := ""
	if dash.NoData {
		message = "Nenhum dado encontrado para a data selecionada."
	}
	responses.Success(c, dash, message)
}

// ExportXLSX baixa o histórico e a DRE original em uma planilha Excel.
func (h *DashboardHandler) ExportXLSX(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	out, err := export.XLSX(report.History, report.Original, dre.ColumnKindOf)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar a planilha", err.Error())
		return
	}
	h.attachment(c, report.Fund, "xlsx", xlsxContentType, out)
}

// ExportCSV baixa o histórico em CSV.
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	report, ok := h.report(c)
	if !ok {
		return
	}

	out, err := export.CSV(report.History)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o CSV", err.Error())
		return
	}
	h.attachment(c, report.Fund, "csv", "text/csv; charset=windows-1252", out)
}

func (h *DashboardHandler) report(c *gin.Context) (domain.Report, bool) {
	q, err := parseQuery(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Parâmetros inválidos", err.Error())
		return domain.Report{}, false
	}
	report, err := h.service.Report(c.Request.Context(), q.Fund)
	if err != nil {
		code, message := dashboardFailure(err)
		responses.Error(c, code, message, err.Error())
		return domain.Report{}, false
	}
	return report, true
}

func (h *DashboardHandler) attachment(c *gin.Context, fund domain.Fund, ext, contentType string, data []byte) {
	fileName := fmt.Sprintf("DRE_%s_%s.%s", fund, time.Now().Format("20060102_150405"), ext)
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, contentType, data)
}

func (h *DashboardHandler) errorPage(c *gin.Context, code int, message string) {
	responses.Page(c, code, "error.html", gin.H{"Title": "DRE - Erro", "Message": message})
}

func dashboardFailure(err error) (int, string) {
	var unavailable *domain.SourceUnavailableError
	switch {
	case errors.Is(err, domain.ErrUnknownFund):
		return http.StatusBadRequest, "Fundo desconhecido."
	case errors.As(err, &unavailable):
		return http.StatusBadGateway, "Não foi possível carregar a planilha. Tente novamente em instantes."
	case errors.Is(err, domain.ErrNoHistory):
		return http.StatusBadGateway, "A planilha não tem nenhuma linha com data válida."
	}
	return http.StatusInternalServerError, "Erro inesperado ao montar o painel."
}
