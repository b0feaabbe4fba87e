package dog

// pageWindow はページ番号とページサイズから導出したクエリ範囲とページ数。
type pageWindow struct {
	Offset     int
	Limit      int
	TotalPages int
}

// paginate は総件数・ページ番号・ページサイズからクエリ範囲を導出する純粋関数。
// totalPagesは ceil(total / perPage)、total = 0 のときは0になる。
// pageは呼び出し側で0以上に正規化されていることを前提とする。
func paginate(total, page, perPage int) pageWindow {
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	return pageWindow{
		Offset:     page * perPage,
		Limit:      perPage,
		TotalPages: totalPages,
	}
}
