package handlers

import (
	"net/http"
	"strconv"

	"github.com/geocoder89/userhub/internal/cache"
	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/gin-gonic/gin"
)

const usersListCacheKey = "users:list"

type UsersService interface {
	CreateUser(name, email string, age int) (user.User, error)
	GetUser(id int64) (user.User, error)
	UpdateUser(id int64, p user.Patch) (user.User, error)
	DeleteUser(id int64) (bool, error)
	ListUsers() []user.User
	ExportJSON() ([]byte, error)
	ExportYAML() ([]byte, error)
}

type UsersListResponse struct {
	Items []user.User `json:"items"`
	Count int         `json:"count"`
}

type UsersHandler struct {
	svc   UsersService
	cache *cache.Cache[UsersListResponse]
	prom  *observability.Prom
}

type UsersHandlerOption func(*UsersHandler)

func WithListCache(c *cache.Cache[UsersListResponse]) UsersHandlerOption {
	return func(h *UsersHandler) { h.cache = c }
}

func WithMetrics(p *observability.Prom) UsersHandlerOption {
	return func(h *UsersHandler) { h.prom = p }
}

func NewUsersHandler(svc UsersService, opts ...UsersHandlerOption) *UsersHandler {
	h := &UsersHandler{svc: svc}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req user.CreateUserRequest
	if !BindJSON(ctx, &req) {
		return
	}

	var created user.User
	err := h.prom.ObserveStore("create", func() (err error) {
		created, err = h.svc.CreateUser(req.Name, req.Email, *req.Age)
		return err
	})
	if err != nil {
		RespondServiceError(ctx, err, "Could not create user")
		return
	}

	h.invalidateList()
	ctx.Header("Location", "/users/"+strconv.FormatInt(created.ID, 10))
	ctx.JSON(http.StatusCreated, created)
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	if h.cache != nil {
		if cached, ok := h.cache.Get(usersListCacheKey); ok {
			RespondJSONWithETag(ctx, http.StatusOK, cached)
			return
		}
	}

	var resp UsersListResponse
	_ = h.prom.ObserveStore("list", func() error {
		items := h.svc.ListUsers()
		resp = UsersListResponse{Items: items, Count: len(items)}
		return nil
	})

	if h.cache != nil {
		h.cache.Set(usersListCacheKey, resp)
	}

	RespondJSONWithETag(ctx, http.StatusOK, resp)
}

func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var u user.User
	err := h.prom.ObserveStore("get", func() (err error) {
		u, err = h.svc.GetUser(id)
		return err
	})
	if err != nil {
		RespondServiceError(ctx, err, "Could not fetch user")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, u)
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var patch user.Patch
	if !BindJSON(ctx, &patch) {
		return
	}

	var updated user.User
	err := h.prom.ObserveStore("update", func() (err error) {
		updated, err = h.svc.UpdateUser(id, patch)
		return err
	})
	if err != nil {
		RespondServiceError(ctx, err, "Could not update user")
		return
	}

	h.invalidateList()
	ctx.JSON(http.StatusOK, updated)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	err := h.prom.ObserveStore("delete", func() error {
		_, err := h.svc.DeleteUser(id)
		return err
	})
	if err != nil {
		RespondServiceError(ctx, err, "Could not delete user")
		return
	}

	h.invalidateList()
	ctx.Status(http.StatusNoContent)
}

// ExportUsers dumps every user in the snake_case export shape.
// ?format=yaml switches from the default JSON.
func (h *UsersHandler) ExportUsers(ctx *gin.Context) {
	export, contentType := h.svc.ExportJSON, "application/json; charset=utf-8"

	switch ctx.DefaultQuery("format", "json") {
	case "json":
	case "yaml":
		export, contentType = h.svc.ExportYAML, "application/yaml; charset=utf-8"
	default:
		RespondBadRequest(ctx, "Unsupported export format", gin.H{"format": ctx.Query("format")})
		return
	}

	body, err := export()
	if err != nil {
		RespondServiceError(ctx, err, "Could not export users")
		return
	}

	ctx.Data(http.StatusOK, contentType, body)
}

func (h *UsersHandler) invalidateList() {
	if h.cache != nil {
		h.cache.Delete(usersListCacheKey)
	}
}

func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondInvalidID(ctx)
		return 0, false
	}

	return id, true
}
