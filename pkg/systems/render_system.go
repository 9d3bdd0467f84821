package systems

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/ecs"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/types"
)

// 覆盖层与文字颜色（预乘 alpha）
var (
	gridColor      = color.RGBA{R: 13, G: 13, B: 13, A: 13}     // rgba(255,255,255,0.05)
	shadowColor    = color.RGBA{A: 77}                          // rgba(0,0,0,0.3)
	glintColor     = color.RGBA{R: 204, G: 204, B: 204, A: 204} // rgba(255,255,255,0.8)
	labelColor     = color.RGBA{R: 128, G: 128, B: 128, A: 128} // rgba(255,255,255,0.5)
	flashbackTint  = color.RGBA{R: 30, G: 30, B: 30, A: 77}     // rgba(100,100,100,0.3)
	scanlineColor  = color.RGBA{A: 26}                          // rgba(0,0,0,0.1)
	endedDim       = color.RGBA{A: 179}                         // rgba(0,0,0,0.7)
	black          = color.RGBA{A: 255}
	white          = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	leafColor      = color.RGBA{R: 85, G: 239, B: 196, A: 255}
	tissueCoreTint = color.RGBA{R: 178, G: 190, B: 195, A: 255}
)

// 画面文字
const (
	textFailTimeline = "FAIL TIMELINE"
	textTitle        = "AWESOME CAT!"
	textPlayAgain    = "Click to Play Again"
)

// targetMargin 终点图标距画面边缘的最小距离
const targetMargin = 24

// RenderSystem 绘制整个场景
//
// 渲染只读取 SceneState，从不修改它。待机时骨牌的随机高光使用
// 渲染系统自己的随机源。所有场景几何体都加上镜头抖动偏移，
// 全屏覆盖层不抖动。
type RenderSystem struct {
	state *game.SceneState
	cfg   *config.SceneConfig

	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource

	// pixel 1x1 白色纹理，所有矩形都由它缩放旋转而来
	pixel *ebiten.Image

	glint *rand.Rand

	particleVertices []ebiten.Vertex // 粒子顶点数组（复用，避免每帧分配）
	particleIndices  []uint16        // 粒子索引数组（复用，避免每帧分配）
}

// NewRenderSystem 创建渲染系统并解析字体
func NewRenderSystem(state *game.SceneState, cfg *config.SceneConfig) (*RenderSystem, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	return &RenderSystem{
		state:            state,
		cfg:              cfg,
		regular:          regular,
		bold:             bold,
		glint:            rand.New(rand.NewSource(1)),
		particleVertices: make([]ebiten.Vertex, 0, 400),
		particleIndices:  make([]uint16, 0, 600),
	}, nil
}

// Face 返回指定字号的常规字体
func (r *RenderSystem) Face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: r.regular, Size: size}
}

// BoldFace 返回指定字号的粗体字体
func (r *RenderSystem) BoldFace(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: r.bold, Size: size}
}

// whitePixel 延迟创建 1x1 白色纹理
// 取 3x3 图片的中心像素，避免采样时边缘渗色
func (r *RenderSystem) whitePixel() *ebiten.Image {
	if r.pixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(white)
		r.pixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.pixel
}

// Draw 绘制一帧
func (r *RenderSystem) Draw(screen *ebiten.Image) {
	s := r.state
	gs := s.GameState()

	screen.Fill(r.cfg.Colors.Background)
	r.drawGrid(screen)

	r.drawTarget(screen, s.LeftPath, s.Placement.Left)
	r.drawTarget(screen, s.RightPath, s.Placement.Right)

	r.drawDominos(screen, s.LeftPath, gs)
	r.drawDominos(screen, s.RightPath, gs)

	r.drawCat(screen)
	r.drawParticles(screen)

	if s.Cat.BubbleAlpha > 0 {
		r.drawBubble(screen)
	}

	switch gs {
	case types.GameStateFlashback:
		r.drawFlashbackOverlay(screen)
	case types.GameStateEnded:
		r.drawEndedOverlay(screen)
	}
}

// fillRect 在 parent 变换下填充局部坐标矩形
func (r *RenderSystem) fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color, parent ebiten.GeoM) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(parent)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(r.whitePixel(), op)
}

// fillScreenRect 无变换填充
func (r *RenderSystem) fillScreenRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	r.fillRect(dst, x, y, w, h, clr, ebiten.GeoM{})
}

// drawText 以 (x, y) 为中心绘制文字
func (r *RenderSystem) drawText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(alpha)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, str, face, op)
}

// drawGrid 背景网格
func (r *RenderSystem) drawGrid(dst *ebiten.Image) {
	b := r.state.Bounds
	size := r.cfg.GridSpacing
	for x := 0.0; x < b.Width; x += size {
		vector.StrokeLine(dst, float32(x), 0, float32(x), float32(b.Height), 1, gridColor, false)
	}
	for y := 0.0; y < b.Height; y += size {
		vector.StrokeLine(dst, 0, float32(y), float32(b.Width), float32(y), 1, gridColor, false)
	}
}

// TargetPosition 终点图标位置：最后一块骨牌外侧，限制在画面内
func TargetPosition(last *components.DominoComponent, b game.Bounds, offsetX float64) (float64, float64) {
	rawX := last.X + offsetX
	if last.X < b.CenterX {
		rawX = last.X - offsetX
	}
	x := math.Max(targetMargin, math.Min(b.Width-targetMargin, rawX))
	y := math.Max(targetMargin, math.Min(b.Height-targetMargin, last.Y))
	return x, y
}

// drawTarget 终点奖品图标和标签
func (r *RenderSystem) drawTarget(dst *ebiten.Image, path []*components.DominoComponent, prize types.Prize) {
	if len(path) == 0 {
		return
	}
	x, y := TargetPosition(path[len(path)-1], r.state.Bounds, r.cfg.Domino.PrizeOffsetX)
	x += r.state.ShakeX

	var g ebiten.GeoM
	g.Translate(x, y)
	p := 3.0

	switch prize {
	case types.PrizeRadish:
		// 叶子
		r.fillRect(dst, -2*p, -6*p, p, 3*p, leafColor, g)
		r.fillRect(dst, 0, -7*p, p, 4*p, leafColor, g)
		r.fillRect(dst, 2*p, -6*p, p, 3*p, leafColor, g)
		// 萝卜身
		r.fillRect(dst, -3*p, -3*p, 7*p, 3*p, r.cfg.Colors.Radish, g)
		r.fillRect(dst, -2*p, 0, 5*p, 2*p, r.cfg.Colors.Radish, g)
		r.fillRect(dst, -p, 2*p, 3*p, 2*p, r.cfg.Colors.Radish, g)
		r.fillRect(dst, 0, 4*p, p, p, r.cfg.Colors.Radish, g)
	case types.PrizeTissue:
		// 纸巾卷
		r.fillRect(dst, -4*p, -4*p, 8*p, 8*p, white, g)
		r.fillRect(dst, -p, -p, 2*p, 2*p, tissueCoreTint, g)
		r.fillRect(dst, -4*p, 4*p, 3*p, 3*p, white, g)
		r.fillRect(dst, -4*p, -4*p, 8*p, p, r.cfg.Colors.Tissue, g)
	}

	r.drawText(dst, labelFor(prize), r.Face(10), x, y+25, labelColor, 1)
}

// labelFor 奖品标签
func labelFor(p types.Prize) string {
	if p == types.PrizeRadish {
		return "Radish"
	}
	return "Tissue"
}

// drawDominos 一条骨牌路径
func (r *RenderSystem) drawDominos(dst *ebiten.Image, path []*components.DominoComponent, gs types.GameState) {
	for _, d := range path {
		var g ebiten.GeoM
		g.Rotate(d.Rotation)
		g.Translate(d.X+r.state.ShakeX, d.Y)

		r.fillRect(dst, -d.Width/2+2, -d.Height+2, d.Width, d.Height, shadowColor, g)
		r.fillRect(dst, -d.Width/2, -d.Height, d.Width, d.Height, d.Color, g)

		if gs == types.GameStateIdle && r.glint.Float64() > 0.95 {
			r.fillRect(dst, -d.Width/2, -d.Height, d.Width, 2, glintColor, g)
		}
	}
}

// CatFlip 朝右时水平翻转
func CatFlip(d types.Direction) float64 {
	if d == types.DirRight {
		return -1
	}
	return 1
}

// drawCat 像素猫
func (r *RenderSystem) drawCat(dst *ebiten.Image) {
	cat := r.state.Cat
	clock := r.state.Clock
	s := r.cfg.PixelSize
	body, dark := r.cfg.Colors.CatMain, r.cfg.Colors.CatDark

	scaleY := cat.Scale
	if cat.Pose == types.PoseIdle {
		// 呼吸
		scaleY *= 1 + math.Sin(clock*2)*0.02
	}

	var g ebiten.GeoM
	g.Scale(CatFlip(cat.Direction), 1)
	g.Scale(cat.Scale, scaleY)
	g.Translate(cat.X+r.state.ShakeX, cat.Y)

	// 身体和头
	r.fillRect(dst, -4*s, -6*s, 8*s, 6*s, body, g)
	r.fillRect(dst, -5*s, -10*s, 10*s, 6*s, body, g)

	// 耳朵
	r.fillRect(dst, -s, -2*s, 2*s, 2*s, dark, childGeoM(-3*s, -10*s, cat.EarAngle, g))
	r.fillRect(dst, -s, -2*s, 2*s, 2*s, dark, childGeoM(3*s, -10*s, -cat.EarAngle, g))

	// 眼睛
	switch cat.Pose {
	case types.PoseShock:
		r.fillRect(dst, -3*s, -8*s, 2*s, 2*s, black, g)
		r.fillRect(dst, s, -8*s, 2*s, 2*s, black, g)
	case types.PoseJump:
		// ^ ^
		r.fillRect(dst, -3*s, -8*s, 2*s, s, black, g)
		r.fillRect(dst, -4*s, -7*s, s, s, black, g)
		r.fillRect(dst, s, -8*s, 2*s, s, black, g)
		r.fillRect(dst, 3*s, -7*s, s, s, black, g)
	case types.PoseIdle, types.PosePush:
		if cat.Pose == types.PoseIdle && math.Sin(clock*5) > 0.98 {
			// 眨眼
			r.fillRect(dst, -3*s, -7*s, 2*s, 1, black, g)
			r.fillRect(dst, s, -7*s, 2*s, 1, black, g)
		} else {
			r.fillRect(dst, -3*s, -8*s, s, s, black, g)
			r.fillRect(dst, s, -8*s, s, s, black, g)
		}
	}

	// 爪子
	switch cat.Pose {
	case types.PosePush:
		r.fillRect(dst, 2*s, -4*s, 3*s, 2*s, white, g)
	case types.PoseJump:
		r.fillRect(dst, -5*s, -5*s, 2*s, 2*s, white, g)
		r.fillRect(dst, 3*s, -5*s, 2*s, 2*s, white, g)
	case types.PoseIdle, types.PoseShock:
		r.fillRect(dst, -2*s, 0, 2*s, s, white, g)
		r.fillRect(dst, 0, 0, 2*s, s, white, g)
	}

	// 尾巴
	r.fillRect(dst, -s, 0, 2*s, 4*s, dark, childGeoM(0, -s, cat.TailAngle, g))

	if cat.Item == types.ItemFish {
		r.drawFish(dst, g, s)
	}
}

// childGeoM 以 (tx, ty) 为轴点旋转的子变换
func childGeoM(tx, ty, angle float64, parent ebiten.GeoM) ebiten.GeoM {
	var g ebiten.GeoM
	g.Rotate(angle)
	g.Translate(tx, ty)
	g.Concat(parent)
	return g
}

// drawFish 猫头上的奖励小鱼
func (r *RenderSystem) drawFish(dst *ebiten.Image, g ebiten.GeoM, s float64) {
	gold := r.cfg.Colors.Gold
	r.fillRect(dst, -2*s, -14*s, 4*s, 2*s, gold, g)
	r.fillRect(dst, -s, -15*s, 2*s, s, gold, g)
	r.fillRect(dst, 2*s, -15*s, s, s, gold, g)
	r.fillRect(dst, 2*s, -12*s, s, s, gold, g)
	r.fillRect(dst, -s, -14*s, s/2, s/2, black, g)
}

// drawParticles 批量绘制所有粒子（一次 DrawTriangles）
func (r *RenderSystem) drawParticles(dst *ebiten.Image) {
	em := r.state.Particles
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.ParticleComponent](em)
	if len(ids) == 0 {
		return
	}

	r.particleVertices = r.particleVertices[:0]
	r.particleIndices = r.particleIndices[:0]
	half := r.cfg.Particles.Size / 2

	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)

		base := uint16(len(r.particleVertices))
		r.particleVertices = append(r.particleVertices,
			particleVertices(pos.X+r.state.ShakeX, pos.Y, half, p)...)
		// 两个三角形
		r.particleIndices = append(r.particleIndices,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}

	op := &ebiten.DrawTrianglesOptions{}
	dst.DrawTriangles(r.particleVertices, r.particleIndices, r.whitePixel(), op)
}

// particleVertices 旋转正方形的四个顶点
// 顶点颜色为非预乘 alpha，透明度等于剩余生命
func particleVertices(x, y, half float64, p *components.ParticleComponent) []ebiten.Vertex {
	cos, sin := math.Cos(p.Rotation), math.Sin(p.Rotation)
	corners := [4][2]float64{
		{-half, -half}, // 左上
		{half, -half},  // 右上
		{-half, half},  // 左下
		{half, half},   // 右下
	}

	cr := float32(p.Color.R) / 255
	cg := float32(p.Color.G) / 255
	cb := float32(p.Color.B) / 255
	ca := float32(math.Max(0, math.Min(1, p.Life)))

	vs := make([]ebiten.Vertex, 4)
	for i, c := range corners {
		vs[i] = ebiten.Vertex{
			DstX:   float32(x + c[0]*cos - c[1]*sin),
			DstY:   float32(y + c[0]*sin + c[1]*cos),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}
	return vs
}

// drawBubble 猫头顶的对话气泡
func (r *RenderSystem) drawBubble(dst *ebiten.Image) {
	cat := r.state.Cat
	alpha := float32(cat.BubbleAlpha)
	x := cat.X + r.state.ShakeX
	y := cat.Y - r.cfg.Cat.BubbleOffsetY

	var path vector.Path
	appendRoundRect(&path, float32(x-40), float32(y-20), 80, 30, 10)
	path.MoveTo(float32(x), float32(y+10))
	path.LineTo(float32(x-5), float32(y+15))
	path.LineTo(float32(x+5), float32(y+15))
	path.Close()
	r.fillPath(dst, &path, white, alpha)

	r.drawText(dst, cat.BubbleText, r.Face(14), x, y-5, black, alpha)
}

// appendRoundRect 圆角矩形路径
func appendRoundRect(p *vector.Path, x, y, w, h, radius float32) {
	p.MoveTo(x+radius, y)
	p.LineTo(x+w-radius, y)
	p.ArcTo(x+w, y, x+w, y+radius, radius)
	p.LineTo(x+w, y+h-radius)
	p.ArcTo(x+w, y+h, x+w-radius, y+h, radius)
	p.LineTo(x+radius, y+h)
	p.ArcTo(x, y+h, x, y+h-radius, radius)
	p.LineTo(x, y+radius)
	p.ArcTo(x, y, x+radius, y, radius)
	p.Close()
}

// fillPath 用纯色填充路径
func (r *RenderSystem) fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA, alpha float32) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = alpha
	}
	dst.DrawTriangles(vs, is, r.whitePixel(), &ebiten.DrawTrianglesOptions{})
}

// drawFlashbackOverlay 闪回：灰色滤镜、扫描线和标题
func (r *RenderSystem) drawFlashbackOverlay(dst *ebiten.Image) {
	b := r.state.Bounds
	r.fillScreenRect(dst, 0, 0, b.Width, b.Height, flashbackTint)
	for y := 0.0; y < b.Height; y += 4 {
		r.fillScreenRect(dst, 0, y, b.Width, 1, scanlineColor)
	}
	r.drawText(dst, textFailTimeline, r.Face(20), b.CenterX, 50, white, 1)
}

// drawEndedOverlay 结束画面
func (r *RenderSystem) drawEndedOverlay(dst *ebiten.Image) {
	b := r.state.Bounds
	r.fillScreenRect(dst, 0, 0, b.Width, b.Height, endedDim)

	var g ebiten.GeoM
	g.Rotate(-0.1)
	g.Translate(b.CenterX, b.CenterY)

	r.drawRotatedText(dst, textTitle, r.BoldFace(48), 3, 3, black, g)
	r.drawRotatedText(dst, textTitle, r.BoldFace(48), 0, 0, r.cfg.Colors.Title, g)
	r.drawRotatedText(dst, textPlayAgain, r.Face(20), 0, 40, white, g)
}

// drawRotatedText 在 parent 变换下以局部坐标 (x, y) 为中心绘制文字
func (r *RenderSystem) drawRotatedText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color, parent ebiten.GeoM) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(parent)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, str, face, op)
}

// DrawButton 绘制屏幕按钮（由场景调用）
// alpha 和 offsetY 用于"真棒"按钮的浮现动画
func (r *RenderSystem) DrawButton(dst *ebiten.Image, rect image.Rectangle, label string, fill color.RGBA, alpha, offsetY float64) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y) + offsetY
	w := float64(rect.Dx())
	h := float64(rect.Dy())

	var path vector.Path
	appendRoundRect(&path, float32(x), float32(y), float32(w), float32(h), 8)
	r.fillPath(dst, &path, fill, float32(alpha))

	r.drawText(dst, label, r.BoldFace(18), x+w/2, y+h/2, black, float32(alpha))
}
