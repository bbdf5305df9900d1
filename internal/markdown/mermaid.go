package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMermaid is the AST kind of a mermaid diagram block.
var KindMermaid = ast.NewNodeKind("Mermaid")

// mermaidBlock replaces a fenced code block tagged "mermaid" so the
// highlighter never sees it.
type mermaidBlock struct {
	ast.BaseBlock
	code []byte
}

func (b *mermaidBlock) Kind() ast.NodeKind { return KindMermaid }

func (b *mermaidBlock) IsRaw() bool { return true }

func (b *mermaidBlock) Dump(source []byte, level int) {
	ast.DumpHelper(b, source, level, map[string]string{"Code": string(b.code)}, nil)
}

type mermaidTransformer struct{}

func (mermaidTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fc, ok := n.(*ast.FencedCodeBlock); ok && string(fc.Language(source)) == "mermaid" {
			blocks = append(blocks, fc)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, fc := range blocks {
		var buf bytes.Buffer
		lines := fc.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		m := &mermaidBlock{code: buf.Bytes()}
		fc.Parent().ReplaceChild(fc.Parent(), fc, m)
	}
}

type mermaidRenderer struct{}

func (mermaidRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMermaid, renderMermaid)
}

func renderMermaid(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	b := n.(*mermaidBlock)
	_, _ = w.WriteString(`<div class="mermaid">`)
	_, _ = w.Write(util.EscapeHTML(b.code))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkContinue, nil
}

// mermaid turns ```mermaid fences into <div class="mermaid"> containers for
// the client-side diagram library.
type mermaid struct{}

func (mermaid) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(mermaidTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(mermaidRenderer{}, 100),
	))
}
