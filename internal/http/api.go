package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cinevault/internal/auth"
	"cinevault/internal/domain"
	"cinevault/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	authSvc service.AuthService
	users   service.UserService
	catalog service.CatalogService
	tokens  *auth.TokenManager
	logger  *logrus.Logger
}

func NewHandler(authSvc service.AuthService, users service.UserService, catalog service.CatalogService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		authSvc: authSvc,
		users:   users,
		catalog: catalog,
		tokens:  tokens,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/login", h.login)
	router.POST("/users", h.register)

	protected := router.Group("")
	protected.Use(authGuard(h.tokens))
	{
		protected.GET("/movies", h.listMovies)
		protected.GET("/movies/:title", h.getMovieDescription)
		protected.GET("/movies/genres/:name", h.getGenreDescription)
		protected.GET("/movies/directors/:name", h.getDirector)

		protected.GET("/users", h.listUsers)
		protected.PUT("/users/:username", h.updateUser)
		protected.DELETE("/users/:username", h.deregisterUser)
		protected.POST("/users/:username/movies/:movieId", h.addFavorite)
		protected.DELETE("/users/:username/movies/:movieId", h.removeFavorite)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.authSvc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userToResponse(user),
		"token": token,
	})
}

func (h *Handler) register(c *gin.Context) {
	var req service.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) listMovies(c *gin.Context) {
	movies, err := h.catalog.ListMovies(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]MovieResponse, len(movies))
	for i := range movies {
		resp[i] = movieToResponse(movies[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getMovieDescription(c *gin.Context) {
	movie, err := h.catalog.GetMovieByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie.Description)
}

func (h *Handler) getGenreDescription(c *gin.Context) {
	genre, err := h.catalog.GetGenre(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre.Description)
}

func (h *Handler) getDirector(c *gin.Context) {
	director, err := h.catalog.GetDirector(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, directorToResponse(*director))
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req service.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) deregisterUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.users.Deregister(c.Request.Context(), username); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("user %s was deregistered", username)})
}

func (h *Handler) addFavorite(c *gin.Context) {
	username := c.Param("username")
	movieID := c.Param("movieId")

	user, err := h.users.AddFavorite(c.Request.Context(), username, movieID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("movie %s was added to favorites of %s", movieID, username),
		"user":    userToResponse(user),
	})
}

func (h *Handler) removeFavorite(c *gin.Context) {
	username := c.Param("username")
	movieID := c.Param("movieId")

	user, err := h.users.RemoveFavorite(c.Request.Context(), username, movieID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("movie %s was removed from favorites of %s", movieID, username),
		"user":    userToResponse(user),
	})
}

// renderError maps domain errors onto HTTP statuses. Store failures are
// logged and surfaced as opaque 500s.
func (h *Handler) renderError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  verr.Fields,
		})
	case errors.Is(err, domain.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMovieNotFound),
		errors.Is(err, domain.ErrGenreNotFound),
		errors.Is(err, domain.ErrDirectorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrMalformedToken),
		errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		h.logger.WithField("request_id", c.GetString("request_id")).Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// UserResponse is the outward representation of a user. The password hash is
// never part of it.
type UserResponse struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Birthday       *string  `json:"birthday,omitempty"`
	FavoriteMovies []string `json:"favorite_movies"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type MovieResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Genre       GenreResponse    `json:"genre"`
	Director    DirectorResponse `json:"director"`
	ImageURL    string           `json:"image_url"`
	Featured    bool             `json:"featured"`
}

type GenreResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DirectorResponse struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthYear int    `json:"birth_year"`
	DeathYear *int   `json:"death_year,omitempty"`
}

func userToResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FavoriteMovies: user.FavoriteMovies,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      user.UpdatedAt.Format(time.RFC3339),
	}
	if resp.FavoriteMovies == nil {
		resp.FavoriteMovies = []string{}
	}
	if user.Birthday != nil {
		v := user.Birthday.Format("2006-01-02")
		resp.Birthday = &v
	}
	return resp
}

func movieToResponse(movie domain.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       GenreResponse(movie.Genre),
		Director:    directorToResponse(movie.Director),
		ImageURL:    movie.ImagePath,
		Featured:    movie.Featured,
	}
}

func directorToResponse(d domain.Director) DirectorResponse {
	return DirectorResponse{
		Name:      d.Name,
		Bio:       d.Bio,
		BirthYear: d.BirthYear,
		DeathYear: d.DeathYear,
	}
}
