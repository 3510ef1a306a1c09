package pipeline

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMark is the node kind of ==highlighted== text.
var KindMark = gast.NewNodeKind("Mark")

// MarkNode is inline text wrapped in a pair of "==" delimiters.
type MarkNode struct {
	gast.BaseInline
}

func (n *MarkNode) Kind() gast.NodeKind { return KindMark }

func (n *MarkNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type markDelimiterProcessor struct{}

func (markDelimiterProcessor) IsDelimiter(b byte) bool { return b == '=' }

func (markDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (markDelimiterProcessor) OnMatch(int) gast.Node { return &MarkNode{} }

// markParser pushes "==" runs as delimiters. Longer runs of "=" stay text.
// It only sees text outside code spans, so "a == b" inside backticks is
// never touched.
type markParser struct{}

func (markParser) Trigger() []byte { return []byte{'='} }

func (markParser) Parse(_ gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	if before == '=' {
		return nil
	}
	line, segment := block.PeekLine()
	d := parser.ScanDelimiter(line, before, 2, markDelimiterProcessor{})
	if d == nil || d.OriginalLength != 2 {
		return nil
	}
	d.Segment = segment.WithStop(segment.Start + d.OriginalLength)
	block.Advance(d.OriginalLength)
	pc.PushDelimiter(d)
	return d
}

func (markParser) CloseBlock(gast.Node, parser.Context) {}

type markRenderer struct{}

func (markRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMark, func(w util.BufWriter, _ []byte, _ gast.Node, entering bool) (gast.WalkStatus, error) {
		if entering {
			_, _ = w.WriteString("<mark>")
		} else {
			_, _ = w.WriteString("</mark>")
		}
		return gast.WalkContinue, nil
	})
}

type markExtension struct{}

// Mark renders ==text== as <mark>text</mark>.
var Mark goldmark.Extender = markExtension{}

func (markExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(markParser{}, 500)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(markRenderer{}, 500)))
}
