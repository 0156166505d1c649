package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/oyaguma3/lte-nms/apps/admin-tui/internal/layer"
)

// LayerHost は浮動レイヤーの表示先を提供する。
type LayerHost interface {
	ShowLayer(name string, l *ContextualLayer)
	HideLayer(name string)
	SetFocus(p tview.Primitive)
}

// PrimitiveNode はtviewのPrimitiveをlayer.Nodeとして扱う。
// 幅または高さが0のPrimitiveは未配置とみなす。
func PrimitiveNode(p tview.Primitive) layer.Node {
	return layer.NodeFunc(func() (layer.Rect, bool) {
		if p == nil {
			return layer.Rect{}, false
		}
		x, y, w, h := p.GetRect()
		if w <= 0 || h <= 0 {
			return layer.Rect{}, false
		}
		return layer.Rect{X: x, Y: y, Width: w, Height: h}, true
	})
}

// ContextualLayer はアンカーの上下に浮かぶレイヤー。
// 描画のたびに配置を再計算するため、内容の再描画やアンカーの移動に追従する。
// Pagesにresize=falseで追加して使う。
type ContextualLayer struct {
	*tview.Box
	content    tview.Primitive
	width      int
	height     int
	screen     layer.Rect
	hasScreen  bool
	positioner *layer.Positioner
}

// NewContextualLayer は新しいContextualLayerを生成する。
func NewContextualLayer(anchor layer.Node, content tview.Primitive, width, height int, opts layer.Options) *ContextualLayer {
	c := &ContextualLayer{
		Box:     tview.NewBox(),
		content: content,
		width:   width,
		height:  height,
	}
	size := layer.NodeFunc(func() (layer.Rect, bool) {
		if c.content == nil || c.height <= 0 {
			return layer.Rect{}, false
		}
		return layer.Rect{Width: c.width, Height: c.height}, true
	})
	document := layer.NodeFunc(func() (layer.Rect, bool) {
		return c.screen, c.hasScreen
	})
	c.positioner = layer.New(anchor, size, document, opts)
	return c
}

// SetSize はレイヤーの希望サイズを変更し、配置を再計算する。
func (c *ContextualLayer) SetSize(width, height int) *ContextualLayer {
	c.width = width
	c.height = height
	c.Reposition()
	return c
}

// Reposition は配置を再計算し、結果を内容のPrimitiveに反映する。
// アンカー・内容・画面のいずれかが未配置の場合は何もせずfalseを返す。
func (c *ContextualLayer) Reposition() bool {
	style, ok := c.positioner.Reposition()
	if !ok {
		return false
	}
	r := style.Rect(c.height)
	c.Box.SetRect(r.X, r.Y, r.Width, r.Height)
	c.content.SetRect(r.X, r.Y, r.Width, r.Height)
	return true
}

// Placement は現在の配置方向を返す。
func (c *ContextualLayer) Placement() layer.Placement {
	return c.positioner.Placement()
}

// Content は内容のPrimitiveを返す。
func (c *ContextualLayer) Content() tview.Primitive {
	return c.content
}

// Draw は配置を再計算してから内容を描画する。
func (c *ContextualLayer) Draw(screen tcell.Screen) {
	w, h := screen.Size()
	c.screen = layer.Rect{Width: w, Height: h}
	c.hasScreen = w > 0 && h > 0

	if !c.Reposition() {
		return
	}
	c.content.Draw(screen)
}

// Focus は内容にフォーカスを委譲する。
func (c *ContextualLayer) Focus(delegate func(p tview.Primitive)) {
	if c.content != nil {
		delegate(c.content)
	}
}

// HasFocus は内容がフォーカスを持つかどうかを返す。
func (c *ContextualLayer) HasFocus() bool {
	return c.content != nil && c.content.HasFocus()
}

// InputHandler は内容の入力ハンドラを返す。
func (c *ContextualLayer) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	if c.content == nil {
		return nil
	}
	return c.content.InputHandler()
}

// MouseHandler は内容のマウスハンドラを返す。
func (c *ContextualLayer) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
	if c.content == nil {
		return nil
	}
	return c.content.MouseHandler()
}
