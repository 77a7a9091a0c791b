package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/viewspan/internal/config"
	"github.com/dshills/viewspan/internal/document"
	"github.com/dshills/viewspan/internal/render"
	"github.com/dshills/viewspan/internal/textrange"
	"github.com/dshills/viewspan/internal/theme"
	"github.com/dshills/viewspan/internal/token"
	"github.com/dshills/viewspan/internal/viewlayout"
	"github.com/dshills/viewspan/internal/viewmodel"
)

// viewer owns the screen and the full projection pipeline: document model,
// view layout, decoration resolver, and compositor.
type viewer struct {
	screen tcell.Screen
	model  *document.Model
	layout *viewlayout.Layout
	dec    *viewmodel.Decorations
	comp   *render.Compositor

	fileName string
	top      int
	folds    map[int]bool
}

func newViewer(opts options, settings *config.Settings, th *theme.Theme) (*viewer, error) {
	data, err := os.ReadFile(opts.filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	model := document.NewModel(string(data), tokenizerFor(opts.filePath))
	layout := viewlayout.NewLayout(model, settings.View.WrapColumn)
	dec := viewmodel.NewDecorations(model, layout, 0, settings.FilterPolicy())
	model.OnDecorationsChanged(dec.OnModelDecorationsChanged)
	layout.OnLineMappingChanged(dec.OnLineMappingChanged)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	v := &viewer{
		screen:   screen,
		model:    model,
		layout:   layout,
		dec:      dec,
		comp:     render.NewCompositor(th),
		fileName: filepath.Base(opts.filePath),
		top:      1,
		folds:    make(map[int]bool),
	}
	v.addDecorations(opts)
	return v, nil
}

func (v *viewer) shutdown() {
	v.screen.Fini()
}

// applySettings is called from the config watcher goroutine. The layout
// and resolver take their own locks; the interrupt event forces a redraw.
func (v *viewer) applySettings(s *config.Settings) {
	v.layout.SetWrapColumn(s.View.WrapColumn)
	v.dec.SetFilterPolicy(s.FilterPolicy())
	_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// addDecorations seeds the model with decorations derived from the
// command line: search-term highlights and an optional whole-line mark.
func (v *viewer) addDecorations(opts options) {
	if opts.find != "" {
		for line := 1; line <= v.model.LineCount(); line++ {
			content := v.model.LineContent(line)
			from := 0
			for {
				idx := strings.Index(content[from:], opts.find)
				if idx < 0 {
					break
				}
				start := from + idx
				rng := textrange.NewRange(line, start+1, line, start+1+len(opts.find))
				v.model.AddDecoration(0, rng, &document.DecorationOptions{
					Category:            document.CategoryHighlight,
					ClassName:           "search-match",
					InlineClassName:     "inline-mark",
					HideInCommentTokens: opts.codeOnly,
					HideInStringTokens:  opts.codeOnly,
				})
				from = start + len(opts.find)
			}
		}
	}

	if opts.markLine >= 1 && opts.markLine <= v.model.LineCount() {
		rng := textrange.NewRange(opts.markLine, 1, opts.markLine, 1)
		v.model.AddDecoration(0, rng, &document.DecorationOptions{
			Category:               document.CategoryHighlight,
			ClassName:              "selection",
			IsWholeLine:            true,
			BeforeContentClassName: "injected-text",
		})
	}
}

func (v *viewer) runLoop() error {
	for {
		v.draw()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventInterrupt:
			// Config reload; redraw on the next pass.
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey reports true when the viewer should quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	_, h := v.screen.Size()
	page := h - 1
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.top--
	case tcell.KeyDown:
		v.top++
	case tcell.KeyPgUp:
		v.top -= page
	case tcell.KeyPgDn:
		v.top += page
	case tcell.KeyHome:
		v.top = 1
	case tcell.KeyEnd:
		v.top = v.layout.ViewLineCount()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'w':
			v.toggleWrap()
		case 'f':
			v.toggleFold()
		}
	}
	return false
}

func (v *viewer) toggleWrap() {
	if v.layout.WrapColumn() != 0 {
		v.layout.SetWrapColumn(0)
		return
	}
	w, _ := v.screen.Size()
	if w > 0 {
		v.layout.SetWrapColumn(w)
	}
}

// toggleFold folds the three lines after the top line, or reopens a fold
// started there.
func (v *viewer) toggleFold() {
	ml := v.layout.ViewPositionToModelPosition(textrange.Position{Line: v.clampTop(), Col: 1}).Line
	if v.folds[ml] {
		if err := v.layout.Unfold(ml); err == nil {
			delete(v.folds, ml)
		}
		return
	}
	end := ml + 3
	if end > v.model.LineCount() {
		end = v.model.LineCount()
	}
	if end <= ml {
		return
	}
	if err := v.layout.Fold(ml, end); err == nil {
		v.folds[ml] = true
	}
}

func (v *viewer) clampTop() int {
	total := v.layout.ViewLineCount()
	if v.top > total {
		v.top = total
	}
	if v.top < 1 {
		v.top = 1
	}
	return v.top
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w < 1 || h < 2 {
		v.screen.Show()
		return
	}

	top := v.clampTop()
	end := top + (h - 1) - 1
	if total := v.layout.ViewLineCount(); end > total {
		end = total
	}

	viewRange := textrange.NewRange(top, 1, end, v.layout.ViewLineMaxColumn(end))
	data := v.dec.DecorationsViewportData(viewRange)
	lines := v.comp.ComposeViewport(top, end, v.viewLineText, v.viewLineTokens, data)

	for row, cells := range lines {
		for x, cell := range cells {
			if x >= w {
				break
			}
			v.screen.SetContent(x, row, cell.Rune, nil, toTcellStyle(cell.Style))
		}
	}

	v.drawStatus(w, h-1, top, end, data)
	v.screen.Show()
}

func (v *viewer) drawStatus(w, row, top, end int, data *viewmodel.ViewportData) {
	wrap := "off"
	if col := v.layout.WrapColumn(); col != 0 {
		wrap = fmt.Sprintf("%d", col)
	}
	status := fmt.Sprintf(" %s | wrap:%s | view %d-%d/%d | %d decorations | q:quit w:wrap f:fold",
		v.fileName, wrap, top, end, v.layout.ViewLineCount(), len(data.Decorations))

	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}

// viewLineText returns the content of one view line by mapping its start
// back to the model and slicing the segment.
func (v *viewer) viewLineText(viewLine int) string {
	mp := v.layout.ViewPositionToModelPosition(textrange.Position{Line: viewLine, Col: 1})
	length := v.layout.ViewLineMaxColumn(viewLine) - 1
	line := v.model.LineContent(mp.Line)
	start := mp.Col - 1
	if start > len(line) {
		return ""
	}
	if start+length > len(line) {
		length = len(line) - start
	}
	return line[start : start+length]
}

// viewLineTokens rebases the model line's tokens onto the view segment.
func (v *viewer) viewLineTokens(viewLine int) token.LineTokens {
	mp := v.layout.ViewPositionToModelPosition(textrange.Position{Line: viewLine, Col: 1})
	length := v.layout.ViewLineMaxColumn(viewLine) - 1
	tokens := v.model.LineTokens(mp.Line)

	base := mp.Col - 1
	raw := make([]token.Token, 0, tokens.Count())
	for i := 0; i < tokens.Count(); i++ {
		start := tokens.StartOffset(i) - base
		end := tokens.EndOffset(i) - base
		if end <= 0 || start >= length {
			continue
		}
		if start < 0 {
			start = 0
		}
		if end > length {
			end = length
		}
		raw = append(raw, token.Token{Type: tokens.TokenType(i), StartOffset: start, EndOffset: end})
	}
	return token.NewLineTokens(length, raw)
}

func tokenizerFor(path string) *token.Tokenizer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return token.GoTokenizer()
	case ".md", ".markdown":
		return token.MarkdownTokenizer()
	default:
		return token.PlainTokenizer()
	}
}

func toTcellStyle(s theme.Style) tcell.Style {
	style := tcell.StyleDefault
	if s.Foreground.Set {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if s.Background.Set {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	return style
}
