package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecolehub/ecole-api/internal/media"
	"github.com/ecolehub/ecole-api/internal/service"
	"github.com/ecolehub/ecole-api/internal/util"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

type ProfileUpdateRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	LastName  *string `json:"last_name"`
	FirstName *string `json:"first_name"`
	BirthDate *string `json:"birth_date"`
	ClassName *string `json:"class_name"`
	City      *string `json:"city"`
	Subject   *string `json:"subject"`
	Function  *string `json:"function"`
}

func RegisterProfile(e *echo.Echo, auth *service.AuthService, profiles *service.ProfileService) {
	handler := &ProfileHandler{profiles: profiles}

	group := e.Group("/api/v1/profile", RequireAuth(auth))
	group.GET("", handler.getProfile)
	group.PUT("", handler.updateProfile)
	group.POST("/photo", handler.uploadPhoto)
}

func (h *ProfileHandler) getProfile(c echo.Context) error {
	account, ok := CurrentAccount(c)
	if !ok || account == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	view, err := h.profiles.GetProfile(c.Request().Context(), account)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("profile", view))
}

func (h *ProfileHandler) updateProfile(c echo.Context) error {
	account, ok := CurrentAccount(c)
	if !ok || account == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("birth_date must be YYYY-MM-DD"))
	}

	view, err := h.profiles.UpdateProfile(c.Request().Context(), account, service.ProfileUpdateInput{
		Name:      req.Name,
		Email:     req.Email,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		BirthDate: birthDate,
		ClassName: req.ClassName,
		City:      req.City,
		Subject:   req.Subject,
		Function:  req.Function,
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("profile", view))
}

func (h *ProfileHandler) uploadPhoto(c echo.Context) error {
	account, ok := CurrentAccount(c)
	if !ok || account == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("photo file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read photo"))
	}
	defer file.Close()

	url, err := h.profiles.UploadPhoto(c.Request().Context(), account, media.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("photo_url", url))
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
