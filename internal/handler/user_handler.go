package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/hogoken/internal/dog"
	"github.com/hitoshi/hogoken/internal/middleware"
	"github.com/hitoshi/hogoken/internal/repository"
)

// UserHandler は認証済みユーザー自身に関するHTTPハンドラー。
// 自分が登録した犬・自分が里親になった犬の一覧を提供する。
type UserHandler struct {
	service DogServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service DogServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// ListMyDogs は自分が登録した犬の一覧を取得する。
// GET /users/me/dogs?p=N
func (h *UserHandler) ListMyDogs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	page := dog.NormalizePage(r.URL.Query().Get("p"))

	result, err := h.service.List(r.Context(), repository.DogFilter{RegisteredBy: userID}, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDogListResponse(result))
}

// ListMyAdoptedDogs は自分が里親になった犬の一覧を取得する。
// GET /users/me/adoptedDogs?p=N
func (h *UserHandler) ListMyAdoptedDogs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	page := dog.NormalizePage(r.URL.Query().Get("p"))

	result, err := h.service.List(r.Context(), repository.DogFilter{AdoptedBy: userID}, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDogListResponse(result))
}
