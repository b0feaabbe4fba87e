// Package dog は犬の記録のライフサイクル管理を提供する。
//
// 記録は available で作成され、adopted もしくは removed へ一度だけ遷移する。
// 各遷移は呼び出し元の認証済みユーザーIDと現在の状態の両方で保護される。
package dog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/hogoken/internal/model"
	"github.com/hitoshi/hogoken/internal/repository"
	"github.com/hitoshi/hogoken/internal/security"
)

// dogsPerPage は一覧の1ページあたりの件数。
// APIの互換契約として固定値とする。
const dogsPerPage = 3

// Metrics はドメインイベントのメトリクス記録インターフェース。
// nilの場合は記録しない。
type Metrics interface {
	RecordDogRegistered()
	RecordAdoption()
	RecordRemoval()
}

// Service は犬の記録のライフサイクルを管理するサービス層。
// 登録、スコープ付き一覧、里親決定、取り下げを提供する。
type Service struct {
	repo      repository.DogRepository
	sanitizer security.InputSanitizerService
	metrics   Metrics
	now       func() time.Time
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(repo repository.DogRepository, sanitizer security.InputSanitizerService, metrics Metrics) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		metrics:   metrics,
		now:       time.Now,
	}
}

// RegisterInput は犬の記録の登録入力。
type RegisterInput struct {
	Name        string
	Description string
}

// Page は一覧のページ結果。
type Page struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	Dogs       []*model.Dog
}

// Register は認証済みユーザーの犬の記録を作成する。
// nameは必須で、サニタイズ後に空となる場合もバリデーションエラーになる。
func (s *Service) Register(ctx context.Context, userID string, in RegisterInput) (*model.Dog, error) {
	name := s.sanitizer.Sanitize(in.Name)
	if name == "" {
		return nil, model.NewValidationError("name", "犬の名前は必須です")
	}

	now := s.now()
	dog := &model.Dog{
		ID:           uuid.New().String(),
		RegisteredBy: userID,
		Name:         name,
		Description:  s.sanitizer.Sanitize(in.Description),
		Status:       model.DogStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, dog); err != nil {
		return nil, fmt.Errorf("犬の記録の作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordDogRegistered()
	}

	slog.Info("dog registered",
		slog.String("dog_id", dog.ID),
		slog.String("registered_by", userID),
	)

	return dog, nil
}

// List はフィルタに一致する記録の指定ページを総件数付きで返す。
// pageは0以上に正規化済みであること。最終ページを超えるpageは
// エラーではなく空のページを返す。
func (s *Service) List(ctx context.Context, filter repository.DogFilter, page int) (*Page, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("犬の記録の集計に失敗しました: %w", err)
	}

	window := paginate(total, page, dogsPerPage)

	dogs, err := s.repo.List(ctx, filter, window.Offset, window.Limit)
	if err != nil {
		return nil, fmt.Errorf("犬の記録の一覧取得に失敗しました: %w", err)
	}
	if dogs == nil {
		dogs = []*model.Dog{}
	}

	return &Page{
		Page:       page,
		PerPage:    dogsPerPage,
		Total:      total,
		TotalPages: window.TotalPages,
		Dogs:       dogs,
	}, nil
}

// Adopt は available → adopted の遷移を実行する。
//
// ガードの評価順は応答の正確さのために固定する:
// 記録の存在 → 状態 → 自己申し込みの禁止。
// 状態条件そのものはストアの条件付きUPDATEで原子的に再評価され、
// 並行する申し込みに敗れた場合はAdoptionConflictになる。
func (s *Service) Adopt(ctx context.Context, userID, dogID, message string) (*model.Dog, error) {
	current, err := s.repo.FindByID(ctx, dogID)
	if err != nil {
		return nil, fmt.Errorf("犬の記録の取得に失敗しました: %w", err)
	}
	if current == nil {
		return nil, model.NewDogNotFoundError(dogID)
	}
	if current.Status != model.DogStatusAvailable {
		return nil, model.NewDogNotAvailableError(current.Status)
	}
	if current.RegisteredBy == userID {
		return nil, model.NewSelfAdoptionError()
	}

	updated, err := s.repo.MarkAdopted(ctx, dogID, userID, s.sanitizer.Sanitize(message), s.now())
	if err != nil {
		return nil, fmt.Errorf("里親決定の保存に失敗しました: %w", err)
	}
	if updated == nil {
		// 存在確認の後に別の遷移が成立した
		return nil, model.NewAdoptionConflictError()
	}

	if s.metrics != nil {
		s.metrics.RecordAdoption()
	}

	slog.Info("dog adopted",
		slog.String("dog_id", dogID),
		slog.String("adopted_by", userID),
	)

	return updated, nil
}

// Remove は記録を removed へ遷移させる。登録者本人のみが実行できる。
// 現在の状態は条件としない（成立済みの記録も取り下げられる）。
func (s *Service) Remove(ctx context.Context, userID, dogID string) (*model.Dog, error) {
	current, err := s.repo.FindByID(ctx, dogID)
	if err != nil {
		return nil, fmt.Errorf("犬の記録の取得に失敗しました: %w", err)
	}
	if current == nil {
		return nil, model.NewDogNotFoundError(dogID)
	}
	if current.RegisteredBy != userID {
		return nil, model.NewNotRegistrantError()
	}

	updated, err := s.repo.MarkRemoved(ctx, dogID, s.now())
	if err != nil {
		return nil, fmt.Errorf("取り下げの保存に失敗しました: %w", err)
	}
	if updated == nil {
		return nil, model.NewDogNotFoundError(dogID)
	}

	if s.metrics != nil {
		s.metrics.RecordRemoval()
	}

	slog.Info("dog removed",
		slog.String("dog_id", dogID),
		slog.String("registered_by", userID),
	)

	return updated, nil
}

// NormalizePage はクエリ文字列のページ番号を0以上の整数に正規化する。
// 数値でない・負の値は0になる。
func NormalizePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
