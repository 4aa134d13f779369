package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dossier-ai/dossier/internal/extract"
	"github.com/dossier-ai/dossier/models"
)

// Researcher is the pipeline surface the HTTP handlers need.
type Researcher interface {
	Company(ctx context.Context, name string) (models.CompanyProfile, error)
	Person(ctx context.Context, linkedinURL string) (models.PersonProfile, error)
	News(ctx context.Context, topic, mode string, days int, source string) (models.NewsDigest, error)
	GenerateImages(ctx context.Context, prompt, marketingPreset string, n int) (models.ImageResponse, error)
	EditImage(ctx context.Context, prompt string, image []byte, mime string, n int) (models.ImageResponse, error)
}

type ResearchHandler struct {
	Service Researcher
}

func (h *ResearchHandler) Register(g *echo.Group) {
	g.POST("/company", h.company)
	g.POST("/person", h.person)
	g.POST("/news", h.news)
	g.POST("/image", h.image)
	g.POST("/image/edit", h.imageEdit)
}

// researchError maps pipeline failures to HTTP status codes. Bad input is the
// caller's fault; extraction failures mean the upstream model misbehaved.
func researchError(err error) error {
	if errors.Is(err, models.ErrInvalidProfileURL) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var exErr *extract.ExtractionError
	if errors.As(err, &exErr) {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (h *ResearchHandler) company(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name required")
	}
	profile, err := h.Service.Company(c.Request().Context(), strings.TrimSpace(req.Name))
	if err != nil {
		return researchError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ResearchHandler) person(c echo.Context) error {
	var req struct {
		LinkedinURL string `json:"linkedin_url"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.LinkedinURL) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "linkedin_url required")
	}
	profile, err := h.Service.Person(c.Request().Context(), strings.TrimSpace(req.LinkedinURL))
	if err != nil {
		return researchError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ResearchHandler) news(c echo.Context) error {
	var req struct {
		Topic  string `json:"topic"`
		Mode   string `json:"mode"`
		Days   int    `json:"days"`
		Source string `json:"source"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Topic) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic required")
	}
	digest, err := h.Service.News(c.Request().Context(), strings.TrimSpace(req.Topic), req.Mode, req.Days, req.Source)
	if err != nil {
		return researchError(err)
	}
	return c.JSON(http.StatusOK, digest)
}

func (h *ResearchHandler) image(c echo.Context) error {
	var req struct {
		Prompt          string `json:"prompt"`
		N               int    `json:"n"`
		MarketingPreset string `json:"marketing_preset"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt required")
	}
	resp, err := h.Service.GenerateImages(c.Request().Context(), req.Prompt, req.MarketingPreset, req.N)
	if err != nil {
		return researchError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// imageEdit takes a multipart form: an "image" file part plus a "prompt"
// field and an optional "n".
func (h *ResearchHandler) imageEdit(c echo.Context) error {
	prompt := strings.TrimSpace(c.FormValue("prompt"))
	if prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt required")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file required")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	n := 1
	if v := c.FormValue("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "n must be a positive integer")
		}
		n = parsed
	}

	resp, err := h.Service.EditImage(c.Request().Context(), prompt, data, mime, n)
	if err != nil {
		return researchError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
