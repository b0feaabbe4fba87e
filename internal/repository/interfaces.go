// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/hogoken/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスが重複している場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// DogFilter は犬の記録一覧のスコープを表す。
// ゼロ値は全件（フィルタなし）を意味する。
// RegisteredByとAdoptedByは同時に指定しない。
type DogFilter struct {
	RegisteredBy string
	AdoptedBy    string
}

// DogRepository は犬の記録の永続化インターフェース。
type DogRepository interface {
	// Create は犬の記録を作成する。
	Create(ctx context.Context, dog *model.Dog) error

	// FindByID は指定IDの記録を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Dog, error)

	// List はフィルタに一致する記録を作成日時降順（同時刻はID降順）で
	// offset/limit指定のページとして返す。
	List(ctx context.Context, filter DogFilter, offset, limit int) ([]*model.Dog, error)

	// Count はフィルタに一致する記録の総数を返す。
	Count(ctx context.Context, filter DogFilter) (int, error)

	// MarkAdopted は status = 'available' の場合に限り adopted へ遷移させる
	// 条件付きUPDATEを実行し、更新後の記録を返す。
	// 条件を満たす行がなかった場合（競合や状態変化）はnilを返す。
	MarkAdopted(ctx context.Context, dogID, adopterID, message string, at time.Time) (*model.Dog, error)

	// MarkRemoved は記録を removed へ遷移させ、更新後の記録を返す。
	// 現在の状態は条件としない（登録者は成立済みの記録も取り下げられる）。
	// 記録が存在しない場合はnilを返す。
	MarkRemoved(ctx context.Context, dogID string, at time.Time) (*model.Dog, error)
}
