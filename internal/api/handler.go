package api

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/barre/internal/sec"
	"github.com/stolasapp/barre/internal/storage"
	"github.com/stolasapp/barre/internal/storage/db"
)

type handler struct {
	store  storage.Store
	tokens *sec.TokenIssuer
	logger *slog.Logger
}

func (h handler) register(e *echo.Echo) {
	e.GET("/healthz", h.health)

	api := e.Group("/api")
	requireAuth := sec.RequireAuth(h.tokens)
	requireAdmin := sec.RequireAdmin()

	auth := api.Group("/auth")
	auth.POST("/register", h.registerUser)
	auth.POST("/login", h.login)
	auth.GET("/me", h.me, requireAuth)

	api.GET("/ballets", h.listBallets)
	api.POST("/ballets", h.createBallet, requireAuth)
	api.GET("/ballets/:id", h.getBallet)
	api.DELETE("/ballets/:id", h.deleteBallet, requireAuth, requireAdmin)
	api.GET("/ballets/:id/steps", h.listBalletSteps)
	api.GET("/ballets-with-steps", h.listBalletsWithSteps)

	api.GET("/steps", h.listSteps)
	api.POST("/steps", h.createStep, requireAuth)
	api.GET("/steps/:id", h.getStep)
	api.DELETE("/steps/:id", h.deleteStep, requireAuth, requireAdmin)
	api.GET("/steps/:id/equipment", h.listStepEquipment)
	api.GET("/steps-with-equipment", h.listStepsWithEquipment)

	api.GET("/equipment", h.listEquipment)
	api.POST("/equipment", h.createEquipment, requireAuth)
	api.GET("/equipment/:id", h.getEquipment)
	api.DELETE("/equipment/:id", h.deleteEquipment, requireAuth, requireAdmin)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// authResponse is the success body for register and login.
type authResponse struct {
	Message string  `json:"message"`
	User    db.User `json:"user"`
	Token   string  `json:"token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h handler) registerUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return badRequest("Username, email, and password are required")
	}

	hash, err := sec.HashPassword(req.Password)
	if err != nil {
		return badRequest("Password must be at most 72 bytes")
	}

	user, err := h.store.CreateUser(c.Request().Context(), db.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return alreadyExists()
	} else if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    user,
		Token:   token,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	user, err := h.store.GetUserByName(c.Request().Context(), req.Username)
	if errors.Is(err, storage.ErrNotFound) {
		return invalidCredentials()
	} else if err != nil {
		return err
	}
	if err := sec.ComparePassword(req.Password, user.PasswordHash); err != nil {
		return invalidCredentials()
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

type meResponse struct {
	User sec.Claims `json:"user"`
}

func (h handler) me(c echo.Context) error {
	return c.JSON(http.StatusOK, meResponse{User: sec.GetAuthenticatedClaims(c.Request().Context())})
}

// entityID parses the :id route parameter. A non-numeric ID cannot reference
// any row, so it reports the same not-found as a missing row.
func entityID(c echo.Context, entity string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, notFound(entity)
	}
	return id, nil
}

func validDifficulty(level *string) bool {
	return level == nil || slices.Contains(db.DifficultyLevels, *level)
}

type balletResponse struct {
	Message string    `json:"message"`
	Ballet  db.Ballet `json:"ballet"`
}

type createBalletRequest struct {
	Title           string  `json:"title"`
	Composer        string  `json:"composer"`
	Choreographer   string  `json:"choreographer"`
	YearPremiered   *int64  `json:"year_premiered"`
	DifficultyLevel *string `json:"difficulty_level"`
	DurationMinutes *int64  `json:"duration_minutes"`
	Description     *string `json:"description"`
}

func (h handler) listBallets(c echo.Context) error {
	ballets, err := h.store.ListBallets(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ballets)
}

func (h handler) getBallet(c echo.Context) error {
	id, err := entityID(c, "Ballet")
	if err != nil {
		return err
	}
	ballet, err := h.store.GetBallet(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("Ballet")
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ballet)
}

func (h handler) createBallet(c echo.Context) error {
	var req createBalletRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.Title == "" || req.Composer == "" || req.Choreographer == "" {
		return badRequest("Title, composer, and choreographer are required")
	}
	if !validDifficulty(req.DifficultyLevel) {
		return badRequest("difficulty_level must be one of Beginner, Intermediate, Advanced")
	}

	claims := sec.GetAuthenticatedClaims(c.Request().Context())
	ballet, err := h.store.CreateBallet(c.Request().Context(), db.Ballet{
		Title:           req.Title,
		Composer:        req.Composer,
		Choreographer:   req.Choreographer,
		YearPremiered:   req.YearPremiered,
		DifficultyLevel: req.DifficultyLevel,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		SubmittedBy:     &claims.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, balletResponse{Message: "Ballet submitted successfully", Ballet: ballet})
}

func (h handler) deleteBallet(c echo.Context) error {
	id, err := entityID(c, "Ballet")
	if err != nil {
		return err
	}
	ballet, err := h.store.DeleteBallet(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("Ballet")
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balletResponse{Message: "Ballet deleted successfully", Ballet: ballet})
}

func (h handler) listBalletSteps(c echo.Context) error {
	id, err := entityID(c, "Ballet")
	if err != nil {
		return err
	}
	steps, err := h.store.ListBalletSteps(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, steps)
}

func (h handler) listBalletsWithSteps(c echo.Context) error {
	merged, err := h.store.ListBalletsWithSteps(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, merged)
}

type stepResponse struct {
	Message string  `json:"message"`
	Step    db.Step `json:"step"`
}

type createStepRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
}

func (h handler) listSteps(c echo.Context) error {
	steps, err := h.store.ListSteps(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, steps)
}

func (h handler) getStep(c echo.Context) error {
	id, err := entityID(c, "Step")
	if err != nil {
		return err
	}
	step, err := h.store.GetStep(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("Step")
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, step)
}

func (h handler) createStep(c echo.Context) error {
	var req createStepRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.Name == "" || req.Description == "" || req.Difficulty == "" {
		return badRequest("Name, description, and difficulty are required")
	}
	if !validDifficulty(&req.Difficulty) {
		return badRequest("difficulty must be one of Beginner, Intermediate, Advanced")
	}

	claims := sec.GetAuthenticatedClaims(c.Request().Context())
	step, err := h.store.CreateStep(c.Request().Context(), db.Step{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		SubmittedBy: &claims.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stepResponse{Message: "Step submitted successfully", Step: step})
}

func (h handler) deleteStep(c echo.Context) error {
	id, err := entityID(c, "Step")
	if err != nil {
		return err
	}
	step, err := h.store.DeleteStep(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("Step")
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stepResponse{Message: "Step deleted successfully", Step: step})
}

func (h handler) listStepEquipment(c echo.Context) error {
	id, err := entityID(c, "Step")
	if err != nil {
		return err
	}
	equipment, err := h.store.ListStepEquipment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, equipment)
}

func (h handler) listStepsWithEquipment(c echo.Context) error {
	merged, err := h.store.ListStepsWithEquipment(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, merged)
}

type equipmentResponse struct {
	Message   string       `json:"message"`
	Equipment db.Equipment `json:"equipment"`
}

type createEquipmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h handler) listEquipment(c echo.Context) error {
	equipment, err := h.store.ListEquipment(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, equipment)
}

func (h handler) getEquipment(c echo.Context) error {
	id, err := entityID(c, "Equipment")
	if err != nil {
		return err
	}
	equipment, err := h.store.GetEquipment(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("Equipment")
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, equipment)
}

func (h handler) createEquipment(c echo.Context) error {
	var req createEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.Name == "" || req.Description == "" || req.Category == "" {
		return badRequest("Name, description, and category are required")
	}
	if !slices.Contains(db.EquipmentCategories, req.Category) {
		return badRequest("category must be one of Footwear, Attire, Training Equipment, Facility, Accessories")
	}

	claims := sec.GetAuthenticatedClaims(c.Request().Context())
	equipment, err := h.store.CreateEquipment(c.Request().Context(), db.Equipment{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SubmittedBy: &claims.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, equipmentResponse{Message: "Equipment submitted successfully", Equipment: equipment})
}

func (h handler) deleteEquipment(c echo.Context) error {
	id, err := entityID(c, "Equipment")
	if err != nil {
		return err
	}
	equipment, err := h.store.DeleteEquipment(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("Equipment")
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, equipmentResponse{Message: "Equipment deleted successfully", Equipment: equipment})
}
