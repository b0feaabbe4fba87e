package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/hogoken/internal/model"
)

// dogColumns は犬の記録のSELECT対象カラム。
const dogColumns = `id, registered_by, name, description, status,
	adopted_by, adoption_message, adoption_date, removed_at,
	created_at, updated_at`

// PostgresDogRepo はPostgreSQLを使用した犬の記録リポジトリ。
type PostgresDogRepo struct {
	db *sql.DB
}

// NewPostgresDogRepo はPostgresDogRepoを生成する。
func NewPostgresDogRepo(db *sql.DB) *PostgresDogRepo {
	return &PostgresDogRepo{db: db}
}

// Create は犬の記録を作成する。
func (r *PostgresDogRepo) Create(ctx context.Context, dog *model.Dog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dogs (id, registered_by, name, description, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		dog.ID, dog.RegisteredBy, dog.Name, dog.Description, string(dog.Status),
		dog.CreatedAt, dog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dog: %w", err)
	}
	return nil
}

// FindByID は指定IDの記録を取得する。見つからない場合はnilを返す。
func (r *PostgresDogRepo) FindByID(ctx context.Context, id string) (*model.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+dogColumns+` FROM dogs WHERE id = $1`,
		id,
	)

	dog, err := scanDog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find dog by ID: %w", err)
	}

	return dog, nil
}

// List はフィルタに一致する記録を作成日時降順（同時刻はID降順）で返す。
// 並び順を決定的にすることで、挿入と並行してもページングが安定する。
func (r *PostgresDogRepo) List(ctx context.Context, filter DogFilter, offset, limit int) ([]*model.Dog, error) {
	where, args := buildDogFilter(filter)

	query := fmt.Sprintf(
		`SELECT `+dogColumns+` FROM dogs %s
		 ORDER BY created_at DESC, id DESC
		 OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, offset, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}
	defer rows.Close()

	var dogs []*model.Dog
	for rows.Next() {
		dog, err := scanDog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dog: %w", err)
		}
		dogs = append(dogs, dog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dogs: %w", err)
	}

	return dogs, nil
}

// Count はフィルタに一致する記録の総数を返す。
func (r *PostgresDogRepo) Count(ctx context.Context, filter DogFilter) (int, error) {
	where, args := buildDogFilter(filter)

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM dogs `+where,
		args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count dogs: %w", err)
	}

	return count, nil
}

// MarkAdopted は status = 'available' の場合に限り adopted へ遷移させる。
// 状態条件をUPDATE自体に含めることで、並行する申し込み同士の
// read-modify-write競合を排除する。条件を満たす行がなければnilを返す。
func (r *PostgresDogRepo) MarkAdopted(ctx context.Context, dogID, adopterID, message string, at time.Time) (*model.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE dogs
		 SET status = 'adopted',
		     adopted_by = $2,
		     adoption_message = $3,
		     adoption_date = $4,
		     updated_at = $4
		 WHERE id = $1 AND status = 'available'
		 RETURNING `+dogColumns,
		dogID, adopterID, message, at,
	)

	dog, err := scanDog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark dog adopted: %w", err)
	}

	return dog, nil
}

// MarkRemoved は記録を removed へ遷移させる。
// 現在の状態は条件としない。記録が存在しない場合はnilを返す。
func (r *PostgresDogRepo) MarkRemoved(ctx context.Context, dogID string, at time.Time) (*model.Dog, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE dogs
		 SET status = 'removed',
		     removed_at = $2,
		     updated_at = $2
		 WHERE id = $1
		 RETURNING `+dogColumns,
		dogID, at,
	)

	dog, err := scanDog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark dog removed: %w", err)
	}

	return dog, nil
}

// buildDogFilter はDogFilterからWHERE句とバインド引数を構築する。
// ゼロ値のフィルタは空のWHERE句（全件）になる。
func buildDogFilter(filter DogFilter) (string, []interface{}) {
	switch {
	case filter.RegisteredBy != "":
		return "WHERE registered_by = $1", []interface{}{filter.RegisteredBy}
	case filter.AdoptedBy != "":
		return "WHERE adopted_by = $1", []interface{}{filter.AdoptedBy}
	default:
		return "", nil
	}
}

// rowScanner は*sql.Rowと*sql.Rowsの双方を受け付けるためのインターフェース。
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDog は1行をmodel.Dogにスキャンする。
// NULL許容カラムはsql.Null系を経由してポインタへ変換する。
func scanDog(row rowScanner) (*model.Dog, error) {
	dog := &model.Dog{}
	var status string
	var adoptedBy, adoptionMessage sql.NullString
	var adoptionDate, removedAt sql.NullTime

	err := row.Scan(
		&dog.ID, &dog.RegisteredBy, &dog.Name, &dog.Description, &status,
		&adoptedBy, &adoptionMessage, &adoptionDate, &removedAt,
		&dog.CreatedAt, &dog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	dog.Status = model.DogStatus(status)
	if adoptedBy.Valid {
		dog.AdoptedBy = &adoptedBy.String
	}
	if adoptionMessage.Valid {
		dog.AdoptionMessage = &adoptionMessage.String
	}
	if adoptionDate.Valid {
		t := adoptionDate.Time
		dog.AdoptionDate = &t
	}
	if removedAt.Valid {
		t := removedAt.Time
		dog.RemovedAt = &t
	}

	return dog, nil
}

// compile-time interface check
var _ DogRepository = (*PostgresDogRepo)(nil)
