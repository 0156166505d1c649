package ui

import (
	"fmt"
	"strings"
)

// DefaultPageSize はリスト画面のページサイズ。
const DefaultPageSize = 50

// Listing はリスト画面の表示対象を管理する。
// 読み込んだ全件に対して部分一致フィルタとページ送りを適用する。
// ページ番号は0始まりで、表示上は1始まりとする。
type Listing[T any] struct {
	all      []T
	matched  []T
	keys     func(T) []string // フィルタ対象の文字列
	query    string
	page     int
	pageSize int
}

// NewListing は新しいListingを生成する。
func NewListing[T any](pageSize int, keys func(T) []string) *Listing[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Listing[T]{keys: keys, pageSize: pageSize}
}

// SetItems は全件を差し替える。フィルタは維持し、ページは範囲内に収める。
func (l *Listing[T]) SetItems(items []T) {
	l.all = items
	l.apply()
}

// SetQuery はフィルタを設定して先頭ページに戻る。空白のみはフィルタ解除。
// 大文字小文字は区別しない。
func (l *Listing[T]) SetQuery(query string) {
	l.query = strings.TrimSpace(query)
	l.page = 0
	l.apply()
}

// Query は現在のフィルタ文字列を返す。
func (l *Listing[T]) Query() string {
	return l.query
}

// Filtered はフィルタが有効かどうかを返す。
func (l *Listing[T]) Filtered() bool {
	return l.query != ""
}

// Len はフィルタ後の件数を返す。
func (l *Listing[T]) Len() int {
	return len(l.matched)
}

// Page は現在ページの要素を返す。
func (l *Listing[T]) Page() []T {
	start := l.page * l.pageSize
	if start >= len(l.matched) {
		return nil
	}
	return l.matched[start:min(start+l.pageSize, len(l.matched))]
}

// At は現在ページのi番目の要素を返す。
func (l *Listing[T]) At(i int) (T, bool) {
	page := l.Page()
	if i < 0 || i >= len(page) {
		var zero T
		return zero, false
	}
	return page[i], true
}

// Next は次のページに進む。最終ページではfalse。
func (l *Listing[T]) Next() bool {
	if l.page+1 >= l.pages() {
		return false
	}
	l.page++
	return true
}

// Prev は前のページに戻る。先頭ページではfalse。
func (l *Listing[T]) Prev() bool {
	if l.page == 0 {
		return false
	}
	l.page--
	return true
}

// Summary は "101-120 of 120 (Page 3/3)" 形式の表示範囲を返す。
func (l *Listing[T]) Summary() string {
	n := len(l.matched)
	if n == 0 {
		return "No items"
	}
	start := l.page * l.pageSize
	return fmt.Sprintf("%d-%d of %d (Page %d/%d)",
		start+1, min(start+l.pageSize, n), n, l.page+1, l.pages())
}

// FilterLabel はフィルタの表示文字列を返す。フィルタが無ければ空。
func (l *Listing[T]) FilterLabel() string {
	if !l.Filtered() {
		return ""
	}
	return fmt.Sprintf("Filter: %q", l.query)
}

func (l *Listing[T]) pages() int {
	return max(1, (len(l.matched)+l.pageSize-1)/l.pageSize)
}

func (l *Listing[T]) apply() {
	l.matched = l.all
	if l.Filtered() {
		l.matched = nil
		needle := strings.ToLower(l.query)
		for _, item := range l.all {
			if containsFold(l.keys(item), needle) {
				l.matched = append(l.matched, item)
			}
		}
	}
	l.page = min(l.page, l.pages()-1)
}

func containsFold(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
