package ui

import (
	"sync"
	"time"

	"github.com/rivo/tview"
)

// statusHold はメッセージを表示してから既定表示に戻すまでの時間。
const statusHold = 5 * time.Second

type statusLevel int

const (
	levelSuccess statusLevel = iota
	levelWarning
	levelError
)

// 各レベルの前置きと後置きのカラータグ
var statusDecor = map[statusLevel][2]string{
	levelSuccess: {"[green::b] ✓ ", " [-::-]"},
	levelWarning: {"[yellow::b] ⚠ ", " [-::-]"},
	levelError:   {"[red::b] ✗ ", " [-::-]"},
}

// StatusBar は画面下部の1行のステータス表示。
// メッセージは一定時間後に既定表示へ戻る。新しいメッセージが出ていれば戻さない。
type StatusBar struct {
	view  *tview.TextView
	queue func(func()) // 再描画付きでイベントループに処理を渡す。nilならタイマーを使わない
	hold  time.Duration

	mu          sync.Mutex
	seq         uint64
	defaultText string
}

// NewStatusBar は新しいStatusBarを生成する。
func NewStatusBar(queue func(func())) *StatusBar {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	view.SetBackgroundColor(ColorStatusBg)

	s := &StatusBar{
		view:        view,
		queue:       queue,
		hold:        statusHold,
		defaultText: " F1:Help | q:Back | Ctrl+Q:Exit",
	}
	s.ShowDefault()
	return s
}

// SetDefaultText は既定表示のテキストを設定する。
func (s *StatusBar) SetDefaultText(text string) {
	s.mu.Lock()
	s.defaultText = text
	s.mu.Unlock()
}

// ShowDefault は既定表示に戻す。
func (s *StatusBar) ShowDefault() {
	s.mu.Lock()
	s.seq++
	text := s.defaultText
	s.mu.Unlock()
	s.view.SetText(text)
}

// ShowSuccess は成功メッセージを表示する。
func (s *StatusBar) ShowSuccess(message string) {
	s.show(levelSuccess, message)
}

// ShowWarning は警告メッセージを表示する。
func (s *StatusBar) ShowWarning(message string) {
	s.show(levelWarning, message)
}

// ShowError はエラーメッセージを表示する。
func (s *StatusBar) ShowError(message string) {
	s.show(levelError, message)
}

// Text は現在の表示テキストをカラータグを除いて返す。
func (s *StatusBar) Text() string {
	return s.view.GetText(true)
}

func (s *StatusBar) show(level statusLevel, message string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	decor := statusDecor[level]
	s.view.SetText(decor[0] + tview.Escape(message) + decor[1])

	if s.queue == nil || s.hold <= 0 {
		return
	}
	time.AfterFunc(s.hold, func() {
		s.queue(func() { s.expire(seq) })
	})
}

// expire はseqのメッセージがまだ表示中であれば既定表示に戻す。
func (s *StatusBar) expire(seq uint64) {
	s.mu.Lock()
	current := s.seq == seq
	s.mu.Unlock()
	if current {
		s.ShowDefault()
	}
}
