package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/layer"
)

// TokenSeparator はトークンの区切り文字
const TokenSeparator = ";"

// Tokenizer は区切り文字で区切られたトークンを入力する欄。
// 入力中の語に前方一致する候補を入力欄の下（収まらなければ上）に表示する。
type Tokenizer struct {
	*tview.InputField
	host        LayerHost
	name        string
	candidates  []string
	suggestions *tview.List
	layer       *ContextualLayer
	shown       bool
	onChange    func(tokens []string)
}

// NewTokenizer は新しいTokenizerを生成する。
func NewTokenizer(host LayerHost, label string, candidates []string) *Tokenizer {
	field := tview.NewInputField().
		SetLabel(label).
		SetFieldWidth(30)

	suggestions := tview.NewList().ShowSecondaryText(false)
	suggestions.SetBorder(true).SetBorderColor(ColorLayerBorder)

	t := &Tokenizer{
		InputField:  field,
		host:        host,
		name:        "tokenizer:" + label,
		candidates:  candidates,
		suggestions: suggestions,
	}
	t.layer = NewContextualLayer(PrimitiveNode(field), suggestions, 30, 0,
		layer.Options{Placement: layer.Below, Alignment: layer.AlignStretch})

	suggestions.SetSelectedFunc(func(_ int, main, _ string, _ rune) {
		t.Complete(main)
		t.hideSuggestions()
		if t.host != nil {
			t.host.SetFocus(t.InputField)
		}
	})
	suggestions.SetDoneFunc(func() {
		t.hideSuggestions()
		if t.host != nil {
			t.host.SetFocus(t.InputField)
		}
	})

	field.SetChangedFunc(func(string) {
		t.refreshSuggestions()
		if t.onChange != nil {
			t.onChange(t.Tokens())
		}
	})

	field.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyDown:
			if t.shown && t.host != nil {
				t.host.SetFocus(t.suggestions)
				return nil
			}
		case tcell.KeyEsc:
			if t.shown {
				t.hideSuggestions()
				return nil
			}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if t.Pending() == "" && len(t.Tokens()) > 0 {
				t.RemoveLast()
				return nil
			}
		}
		return event
	})

	return t
}

// SetOnChange はトークンが変わったときのハンドラを設定する。
func (t *Tokenizer) SetOnChange(handler func(tokens []string)) *Tokenizer {
	t.onChange = handler
	return t
}

// SetCandidates は候補一覧を設定する。
func (t *Tokenizer) SetCandidates(candidates []string) *Tokenizer {
	t.candidates = candidates
	return t
}

// Tokens は入力済みのトークンを返す。空要素と重複は除外する。
func (t *Tokenizer) Tokens() []string {
	return SplitTokens(t.GetText())
}

// SetTokens はトークンを設定する。
func (t *Tokenizer) SetTokens(tokens []string) *Tokenizer {
	t.SetText(joinTokens(SplitTokens(strings.Join(tokens, TokenSeparator))))
	return t
}

// SuggestionsShown は候補を表示中かどうかを返す。
func (t *Tokenizer) SuggestionsShown() bool {
	return t.shown
}

// Pending は最後の区切り文字以降の入力中の語を返す。
func (t *Tokenizer) Pending() string {
	text := t.GetText()
	if i := strings.LastIndex(text, TokenSeparator); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(text)
}

// Complete は入力中の語を値で置き換えてトークンとして確定する。
func (t *Tokenizer) Complete(value string) {
	text := t.GetText()
	prefix := ""
	if i := strings.LastIndex(text, TokenSeparator); i >= 0 {
		prefix = text[:i+1]
	}
	t.SetText(joinTokens(SplitTokens(prefix + TokenSeparator + value)))
}

// RemoveLast は最後のトークンを削除する。
func (t *Tokenizer) RemoveLast() {
	tokens := t.Tokens()
	if len(tokens) == 0 {
		return
	}
	t.SetText(joinTokens(tokens[:len(tokens)-1]))
}

// Suggestions は入力中の語に前方一致し、未入力の候補を返す。
// 大文字小文字は区別しない。
func (t *Tokenizer) Suggestions() []string {
	pending := strings.ToLower(t.Pending())
	if pending == "" {
		return nil
	}
	used := make(map[string]bool)
	for _, tok := range t.committed() {
		used[tok] = true
	}
	var out []string
	for _, c := range t.candidates {
		if used[c] {
			continue
		}
		if strings.HasPrefix(strings.ToLower(c), pending) {
			out = append(out, c)
		}
	}
	return out
}

// committed は入力中の語を除いた確定済みトークンを返す。
func (t *Tokenizer) committed() []string {
	text := t.GetText()
	i := strings.LastIndex(text, TokenSeparator)
	if i < 0 {
		return nil
	}
	return SplitTokens(text[:i])
}

// Layer は候補を表示するレイヤーを返す。
func (t *Tokenizer) Layer() *ContextualLayer {
	return t.layer
}

func (t *Tokenizer) refreshSuggestions() {
	matches := t.Suggestions()
	t.suggestions.Clear()
	for _, m := range matches {
		t.suggestions.AddItem(m, "", 0, nil)
	}
	if len(matches) == 0 {
		t.hideSuggestions()
		return
	}
	t.layer.SetSize(30, menuHeight(len(matches)))
	if t.host != nil {
		t.host.ShowLayer(t.name, t.layer)
	}
	t.shown = true
}

func (t *Tokenizer) hideSuggestions() {
	if t.shown && t.host != nil {
		t.host.HideLayer(t.name)
	}
	t.shown = false
}

// SplitTokens は区切り文字で分割し、空要素と重複を除外する。
func SplitTokens(s string) []string {
	tokens := []string{}
	seen := make(map[string]bool)
	for _, tok := range strings.Split(s, TokenSeparator) {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

// joinTokens は確定済みトークンを末尾に区切り文字を付けて連結する。
func joinTokens(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, TokenSeparator+" ") + TokenSeparator + " "
}
