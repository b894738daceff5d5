package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecolehub/ecole-api/internal/repository/ports"
	"github.com/ecolehub/ecole-api/internal/service"
	"github.com/ecolehub/ecole-api/internal/util"
)

type TeacherHandler struct {
	teachers *service.TeacherService
}

type TeacherCreateRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	LastName  string  `json:"last_name"`
	FirstName string  `json:"first_name"`
	BirthDate *string `json:"birth_date"`
	Subject   string  `json:"subject"`
}

type TeacherUpdateRequest struct {
	LastName  *string `json:"last_name"`
	FirstName *string `json:"first_name"`
	BirthDate *string `json:"birth_date"`
	Subject   *string `json:"subject"`
	Email     *string `json:"email"`
}

func RegisterTeachers(e *echo.Echo, auth *service.AuthService, teachers *service.TeacherService) {
	handler := &TeacherHandler{teachers: teachers}

	group := e.Group("/api/v1/teachers", RequireAuth(auth), RequireAdmin())
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.PUT("/:id", handler.update)
	group.DELETE("/:id", handler.delete)
}

func (h *TeacherHandler) create(c echo.Context) error {
	var req TeacherCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("birth_date must be YYYY-MM-DD"))
	}

	profile, err := h.teachers.Create(c.Request().Context(), service.CreateTeacherInput{
		Email:     req.Email,
		Password:  req.Password,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		BirthDate: birthDate,
		Subject:   req.Subject,
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("teacher", profile))
}

func (h *TeacherHandler) list(c echo.Context) error {
	profiles, err := h.teachers.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("teachers", profiles))
}

func (h *TeacherHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	profile, err := h.teachers.Get(c.Request().Context(), id)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("teacher", profile))
}

func (h *TeacherHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req TeacherUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("birth_date must be YYYY-MM-DD"))
	}

	profile, err := h.teachers.Update(c.Request().Context(), id, ports.TeacherUpdate{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		BirthDate: birthDate,
		Subject:   req.Subject,
		Email:     req.Email,
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("teacher", profile))
}

func (h *TeacherHandler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.teachers.Delete(c.Request().Context(), id); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("teacher deleted"))
}
