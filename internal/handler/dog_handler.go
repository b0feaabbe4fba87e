package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/hogoken/internal/dog"
	"github.com/hitoshi/hogoken/internal/middleware"
	"github.com/hitoshi/hogoken/internal/model"
	"github.com/hitoshi/hogoken/internal/repository"
)

// DogServiceInterface は犬の記録ハンドラーが必要とするサービスインターフェース。
type DogServiceInterface interface {
	// Register は認証済みユーザーの犬の記録を作成する。
	Register(ctx context.Context, userID string, in dog.RegisterInput) (*model.Dog, error)
	// List はフィルタに一致する記録の指定ページを総件数付きで返す。
	List(ctx context.Context, filter repository.DogFilter, page int) (*dog.Page, error)
	// Adopt は available → adopted の遷移を実行する。
	Adopt(ctx context.Context, userID, dogID, message string) (*model.Dog, error)
	// Remove は記録を removed へ遷移させる。登録者本人のみが実行できる。
	Remove(ctx context.Context, userID, dogID string) (*model.Dog, error)
}

// DogHandler は犬の記録管理のHTTPハンドラー。
type DogHandler struct {
	service DogServiceInterface
}

// NewDogHandler はDogHandlerを生成する。
func NewDogHandler(service DogServiceInterface) *DogHandler {
	return &DogHandler{
		service: service,
	}
}

// registerDogRequest は犬の登録リクエストのボディ。
type registerDogRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// adoptDogRequest は里親申し込みリクエストのボディ。
// メッセージは任意。
type adoptDogRequest struct {
	Message string `json:"message"`
}

// dogResponse は犬の記録のAPIレスポンス。
type dogResponse struct {
	ID              string     `json:"id"`
	RegisteredBy    string     `json:"registered_by"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	AdoptedBy       *string    `json:"adopted_by,omitempty"`
	AdoptionMessage *string    `json:"adoption_message,omitempty"`
	AdoptionDate    *time.Time `json:"adoption_date,omitempty"`
	RemovedAt       *time.Time `json:"removed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// dogListResponse は一覧のページレスポンス。
type dogListResponse struct {
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
	Dogs       []dogResponse `json:"dogs"`
}

// toDogResponse はmodel.DogをAPIレスポンスに変換する。
func toDogResponse(d *model.Dog) dogResponse {
	return dogResponse{
		ID:              d.ID,
		RegisteredBy:    d.RegisteredBy,
		Name:            d.Name,
		Description:     d.Description,
		Status:          string(d.Status),
		AdoptedBy:       d.AdoptedBy,
		AdoptionMessage: d.AdoptionMessage,
		AdoptionDate:    d.AdoptionDate,
		RemovedAt:       d.RemovedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// toDogListResponse はdog.PageをAPIレスポンスに変換する。
func toDogListResponse(page *dog.Page) dogListResponse {
	dogs := make([]dogResponse, len(page.Dogs))
	for i, d := range page.Dogs {
		dogs[i] = toDogResponse(d)
	}
	return dogListResponse{
		Page:       page.Page,
		PerPage:    page.PerPage,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Dogs:       dogs,
	}
}

// ListDogs は全件の公開一覧を取得する。認証不要。
// GET /dogs?p=N
func (h *DogHandler) ListDogs(w http.ResponseWriter, r *http.Request) {
	page := dog.NormalizePage(r.URL.Query().Get("p"))

	result, err := h.service.List(r.Context(), repository.DogFilter{}, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDogListResponse(result))
}

// RegisterDog は犬の記録を登録する。
// POST /dogs
func (h *DogHandler) RegisterDog(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req registerDogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	created, err := h.service.Register(r.Context(), userID, dog.RegisterInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toDogResponse(created))
}

// AdoptDog は里親申し込みを処理する。
// PATCH /dogs/:id/adopt
func (h *DogHandler) AdoptDog(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	dogID := chi.URLParam(r, "id")

	// ボディは任意（メッセージなしの申し込みを許容する）
	var req adoptDogRequest
	if r.Body != nil {
		// 空ボディはゼロ値のまま進める
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	updated, err := h.service.Adopt(r.Context(), userID, dogID, req.Message)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDogResponse(updated))
}

// RemoveDog は犬の記録を取り下げる。
// PATCH /dogs/:id/remove
func (h *DogHandler) RemoveDog(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	dogID := chi.URLParam(r, "id")

	updated, err := h.service.Remove(r.Context(), userID, dogID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDogResponse(updated))
}
