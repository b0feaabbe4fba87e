// Package model はドメインモデルを定義する。
package model

import "time"

// Dog は里親募集に出された犬の記録を表す。
// statusは available から adopted もしくは removed へ一度だけ遷移する。
// adopted と removed は終端状態であり、以降の遷移は存在しない。
type Dog struct {
	ID           string
	RegisteredBy string
	Name         string
	Description  string
	Status       DogStatus

	// 以下は adopted への遷移時に一度だけ設定される。
	AdoptedBy       *string
	AdoptionMessage *string
	AdoptionDate    *time.Time

	// removed への遷移時に一度だけ設定される。
	RemovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DogStatus は犬の記録の状態を表す。
type DogStatus string

const (
	// DogStatusAvailable は里親募集中の状態。
	DogStatusAvailable DogStatus = "available"
	// DogStatusAdopted は里親が決定した状態（終端）。
	DogStatusAdopted DogStatus = "adopted"
	// DogStatusRemoved は登録者により取り下げられた状態（終端）。
	DogStatusRemoved DogStatus = "removed"
)
