package http

import (
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/csvchat/csvchat-go/internal/adapters/tabular"
	"github.com/csvchat/csvchat-go/internal/app"
	"github.com/csvchat/csvchat-go/internal/domain"
	"github.com/csvchat/csvchat-go/internal/ports"
	"github.com/csvchat/csvchat-go/internal/render"
)

//go:embed web/index.html
var indexPage []byte

const (
	sessionCookie = "csvchat_session"
	previewRows   = 5

	msgUploadFirst = "Please upload a CSV file."
)

type Handler struct {
	svc       *app.AskService
	sessions  ports.SessionStore
	maxUpload int64
}

func NewHandler(svc *app.AskService, sessions ports.SessionStore, maxUpload int64) *Handler {
	return &Handler{
		svc:       svc,
		sessions:  sessions,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/healthz", h.Healthz)
	e.POST("/v1/upload", h.Upload)
	e.POST("/v1/ask", h.Ask)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexPage)
}

func (h *Handler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file field is required"})
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		return mapError(c, domain.ErrFileTooLarge)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read uploaded file"})
	}
	defer src.Close()

	table, err := tabular.Load(fileHeader.Filename, src)
	if err != nil {
		return mapError(c, err)
	}

	session := domain.Session{
		ID:         h.sessionID(c),
		Filename:   fileHeader.Filename,
		Table:      table,
		UploadedAt: time.Now(),
	}
	if err := h.sessions.Put(c.Request().Context(), session); err != nil {
		return mapError(c, err)
	}
	h.setSessionCookie(c, session.ID)

	return c.JSON(http.StatusOK, toUploadResponse(session))
}

func (h *Handler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	// Without an uploaded table there is no pipeline run at all, only the
	// upload reminder.
	session, err := h.currentSession(c)
	if err != nil {
		return mapError(c, err)
	}

	result := h.svc.Ask(c.Request().Context(), app.AskRequest{
		Session: session,
		Query:   req.Query,
	})

	requestID, _ := c.Get("request_id").(string)
	return c.JSON(http.StatusOK, toAskResponse(result, requestID))
}

func (h *Handler) currentSession(c echo.Context) (domain.Session, error) {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return h.sessions.Get(c.Request().Context(), cookie.Value)
}

// sessionID reuses the caller's session so a re-upload replaces the table
// instead of stranding the old one.
func (h *Handler) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return uuid.NewString()
}

func (h *Handler) setSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func toUploadResponse(s domain.Session) UploadResponse {
	numeric := make([]string, 0, len(s.Table.NumericCols))
	for _, col := range s.Table.NumericCols {
		numeric = append(numeric, s.Table.Columns[col])
	}

	preview := s.Table.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	return UploadResponse{
		Filename:       s.Filename,
		Columns:        s.Table.Columns,
		RowCount:       len(s.Table.Rows),
		NumericColumns: numeric,
		Preview:        preview,
	}
}

func toAskResponse(r app.AskResult, requestID string) AskResponse {
	blocks := make([]BlockResp, len(r.Blocks))
	for i, b := range r.Blocks {
		blocks[i] = toBlockResp(b)
	}
	return AskResponse{
		Blocks: blocks,
		Meta: MetaResp{
			Model:     r.Model,
			RequestID: requestID,
			LatencyMS: r.LatencyMS,
		},
	}
}

func toBlockResp(b render.Block) BlockResp {
	resp := BlockResp{Type: string(b.Kind), Text: b.Text}
	if b.Table != nil {
		resp.Table = &TableResp{Columns: b.Table.Columns, Rows: b.Table.Rows}
	}
	if b.Chart != nil {
		series := make([]SeriesResp, len(b.Chart.Series))
		for i, s := range b.Chart.Series {
			series[i] = SeriesResp{Name: s.Name, Values: s.Values}
		}
		resp.Chart = &ChartResp{
			Kind:       string(b.Chart.Kind),
			Categories: b.Chart.Categories,
			Series:     series,
		}
	}
	return resp
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgUploadFirst})
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrMalformedFile):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
