package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecolehub/ecole-api/internal/repository/ports"
	"github.com/ecolehub/ecole-api/internal/service"
	"github.com/ecolehub/ecole-api/internal/util"
)

type StudentHandler struct {
	students *service.StudentService
}

type StudentCreateRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	LastName  string  `json:"last_name"`
	FirstName string  `json:"first_name"`
	BirthDate *string `json:"birth_date"`
	ClassName string  `json:"class_name"`
	City      *string `json:"city"`
}

type StudentUpdateRequest struct {
	LastName  *string `json:"last_name"`
	FirstName *string `json:"first_name"`
	BirthDate *string `json:"birth_date"`
	ClassName *string `json:"class_name"`
	City      *string `json:"city"`
	Email     *string `json:"email"`
}

// RegisterStudents mounts the administrator-only student CRUD screens.
func RegisterStudents(e *echo.Echo, auth *service.AuthService, students *service.StudentService) {
	handler := &StudentHandler{students: students}

	group := e.Group("/api/v1/students", RequireAuth(auth), RequireAdmin())
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.PUT("/:id", handler.update)
	group.DELETE("/:id", handler.delete)
}

func (h *StudentHandler) create(c echo.Context) error {
	var req StudentCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("birth_date must be YYYY-MM-DD"))
	}

	profile, err := h.students.Create(c.Request().Context(), service.CreateStudentInput{
		Email:     req.Email,
		Password:  req.Password,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		BirthDate: birthDate,
		ClassName: req.ClassName,
		City:      req.City,
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("student", profile))
}

func (h *StudentHandler) list(c echo.Context) error {
	profiles, err := h.students.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("students", profiles))
}

func (h *StudentHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	profile, err := h.students.Get(c.Request().Context(), id)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("student", profile))
}

func (h *StudentHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req StudentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("birth_date must be YYYY-MM-DD"))
	}

	profile, err := h.students.Update(c.Request().Context(), id, ports.StudentUpdate{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		BirthDate: birthDate,
		ClassName: req.ClassName,
		City:      req.City,
		Email:     req.Email,
	})
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("student", profile))
}

func (h *StudentHandler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.students.Delete(c.Request().Context(), id); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("student deleted"))
}
