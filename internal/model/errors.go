// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, dog, system
	Action   string // ユーザー向け対処方法
	Field    string // バリデーションエラーの対象フィールド名（任意）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDogNotFound        = "DOG_NOT_FOUND"
	ErrCodeDogNotAvailable    = "DOG_NOT_AVAILABLE"
	ErrCodeSelfAdoption       = "SELF_ADOPTION_FORBIDDEN"
	ErrCodeNotRegistrant      = "NOT_REGISTRANT"
	ErrCodeAdoptionConflict   = "ADOPTION_CONFLICT"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
)

// NewDogNotFoundError は犬の記録が見つからない場合のエラーを生成する。
func NewDogNotFoundError(dogID string) *APIError {
	return &APIError{
		Code:     ErrCodeDogNotFound,
		Message:  fmt.Sprintf("指定された犬の記録が見つかりません: %s", dogID),
		Category: "dog",
		Action:   "犬のIDを確認してください。",
	}
}

// NewDogNotAvailableError は募集中でない犬に対する遷移エラーを生成する。
// 既にadoptedまたはremovedの記録への里親申し込みで返される。
func NewDogNotAvailableError(status DogStatus) *APIError {
	return &APIError{
		Code:     ErrCodeDogNotAvailable,
		Message:  fmt.Sprintf("この犬は現在募集中ではありません（状態: %s）。", status),
		Category: "dog",
		Action:   "募集中（available）の犬を選んでください。",
	}
}

// NewSelfAdoptionError は登録者自身による里親申し込みエラーを生成する。
func NewSelfAdoptionError() *APIError {
	return &APIError{
		Code:     ErrCodeSelfAdoption,
		Message:  "自分が登録した犬の里親になることはできません。",
		Category: "dog",
		Action:   "他のユーザーが登録した犬を選んでください。",
	}
}

// NewNotRegistrantError は登録者以外による取り下げエラーを生成する。
func NewNotRegistrantError() *APIError {
	return &APIError{
		Code:     ErrCodeNotRegistrant,
		Message:  "犬の記録を取り下げられるのは登録者本人のみです。",
		Category: "dog",
		Action:   "自分が登録した犬の記録か確認してください。",
	}
}

// NewAdoptionConflictError は同時の里親申し込みが競合した場合のエラーを生成する。
// 条件付きUPDATEが0行だった場合に返される。
func NewAdoptionConflictError() *APIError {
	return &APIError{
		Code:     ErrCodeAdoptionConflict,
		Message:  "別の申し込みが先に成立したため、この犬の里親にはなれませんでした。",
		Category: "dog",
		Action:   "最新の募集状況を確認してください。",
	}
}

// NewValidationError は入力値のバリデーションエラーを生成する。
// fieldには対象フィールド名を指定する。
func NewValidationError(field, reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("入力値が不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
		Field:    field,
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// メールアドレスの存在有無を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "認証情報を確認して再度お試しください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
