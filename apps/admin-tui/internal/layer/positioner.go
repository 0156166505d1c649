// Package layer はアンカー要素に対する浮動レイヤーの配置を計算する。
package layer

// Rect は画面上の矩形を表す。
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right は右端（排他的）を返す。
func (r Rect) Right() int { return r.X + r.Width }

// Bottom は下端（排他的）を返す。
func (r Rect) Bottom() int { return r.Y + r.Height }

// Placement はアンカーに対するレイヤーの配置方向を表す。
type Placement int

const (
	// Below はアンカーの下に配置する
	Below Placement = iota
	// Above はアンカーの上に配置する
	Above
)

func (p Placement) String() string {
	if p == Above {
		return "above"
	}
	return "below"
}

func (p Placement) opposite() Placement {
	if p == Above {
		return Below
	}
	return Above
}

// Alignment はアンカーに対する水平方向の揃え方を表す。
type Alignment int

const (
	// AlignLeft はアンカーの左端に揃える
	AlignLeft Alignment = iota
	// AlignRight はアンカーの右端に揃える
	AlignRight
	// AlignStretch はアンカーの幅に合わせて伸縮する
	AlignStretch
)

// Node は配置計算に使う要素の矩形を提供する。
// まだマウントされていない要素はfalseを返す。
type Node interface {
	Bounds() (Rect, bool)
}

// NodeFunc は関数をNodeとして扱うアダプタ。
type NodeFunc func() (Rect, bool)

// Bounds はfを呼び出す。
func (f NodeFunc) Bounds() (Rect, bool) { return f() }

// Options は配置オプション
type Options struct {
	Placement Placement
	Alignment Alignment
}

// Style はレイヤーに適用する位置とサイズ。
// TranslateYはレイヤー高さに対する百分率で、-100のとき
// レイヤーの下端がTopに一致する。
type Style struct {
	Left       int
	Top        int
	Width      int
	TranslateY int
}

// Rect は高さheightのレイヤーが実際に占める矩形を返す。
func (s Style) Rect(height int) Rect {
	return Rect{
		X:      s.Left,
		Y:      s.Top + s.TranslateY*height/100,
		Width:  s.Width,
		Height: height,
	}
}

// Positioner はアンカー・レイヤー・文書全体の矩形から配置を決定する。
type Positioner struct {
	anchor    Node
	layer     Node
	document  Node
	opts      Options
	placement Placement
	style     Style
}

// New は新しいPositionerを生成する。
func New(anchor, layer, document Node, opts Options) *Positioner {
	return &Positioner{
		anchor:    anchor,
		layer:     layer,
		document:  document,
		opts:      opts,
		placement: opts.Placement,
	}
}

// Placement は直近の計算で決定した配置方向を返す。
// 両方向ともはみ出す場合、反対方向のはみ出しが小さくなければ優先方向のまま返す。
func (p *Positioner) Placement() Placement {
	return p.placement
}

// Style は直近の計算結果を返す。
func (p *Positioner) Style() Style {
	return p.style
}

// SetOptions は配置オプションを変更する。次のRepositionから反映される。
func (p *Positioner) SetOptions(opts Options) {
	p.opts = opts
}

// Reposition は配置を再計算する。
// いずれかの要素が未マウントの場合は何もせず、前回の結果とfalseを返す。
func (p *Positioner) Reposition() (Style, bool) {
	anchor, ok := p.anchor.Bounds()
	if !ok {
		return p.style, false
	}
	layer, ok := p.layer.Bounds()
	if !ok {
		return p.style, false
	}
	doc, ok := p.document.Bounds()
	if !ok {
		return p.style, false
	}

	p.placement = choosePlacement(p.opts.Placement, anchor, layer.Height, doc)

	width := layer.Width
	left := anchor.X
	switch p.opts.Alignment {
	case AlignStretch:
		width = anchor.Width
	case AlignRight:
		left = anchor.Right() - width
	}
	left = clamp(left, doc.X, doc.Right()-width)

	style := Style{Left: left, Width: width}
	if p.placement == Above {
		style.Top = anchor.Y
		style.TranslateY = -100
	} else {
		style.Top = anchor.Bottom()
	}

	p.style = style
	return style, true
}

// choosePlacement は優先方向から開始し、優先方向がはみ出し、
// かつ反対方向のはみ出しがより小さい場合のみ反転する。
func choosePlacement(preferred Placement, anchor Rect, height int, doc Rect) Placement {
	pref := overflow(preferred, anchor, height, doc)
	if pref == 0 {
		return preferred
	}
	if overflow(preferred.opposite(), anchor, height, doc) < pref {
		return preferred.opposite()
	}
	return preferred
}

// overflow は指定方向に配置した場合に文書境界からはみ出す行数を返す。
func overflow(placement Placement, anchor Rect, height int, doc Rect) int {
	if placement == Above {
		return max(0, doc.Y-(anchor.Y-height))
	}
	return max(0, anchor.Bottom()+height-doc.Bottom())
}

// clamp はvを[lo, hi]に収める。hi < loの場合はloを優先する。
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
