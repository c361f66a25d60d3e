package fields

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/hrwtech/rich-tables/internal/render"
)

// mdToMarkup converts a markdown document to terminal markup: headings and
// strong text bold, emphasis italic, code cyan, list items bulleted.
func mdToMarkup(src string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(src))

	var b strings.Builder
	listDepth := 0
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Heading:
			if entering {
				b.WriteString("[b cyan]")
			} else {
				b.WriteString("[/]\n")
			}
		case *ast.Paragraph:
			if !entering {
				b.WriteString("\n")
			}
		case *ast.Emph:
			if entering {
				b.WriteString("[i]")
			} else {
				b.WriteString("[/]")
			}
		case *ast.Strong:
			if entering {
				b.WriteString("[b]")
			} else {
				b.WriteString("[/]")
			}
		case *ast.Del:
			if entering {
				b.WriteString("[s]")
			} else {
				b.WriteString("[/]")
			}
		case *ast.Link:
			if entering {
				b.WriteString("[u blue]")
			} else {
				b.WriteString("[/]")
			}
		case *ast.Code:
			b.WriteString("[cyan]" + render.Escape(string(n.Literal)) + "[/]")
		case *ast.CodeBlock:
			code := strings.TrimRight(string(n.Literal), "\n")
			for _, line := range strings.Split(code, "\n") {
				b.WriteString("[dim]" + render.Escape(line) + "[/]\n")
			}
		case *ast.List:
			if entering {
				listDepth++
			} else {
				listDepth--
			}
		case *ast.ListItem:
			if entering {
				b.WriteString(strings.Repeat("  ", listDepth-1) + "• ")
			}
		case *ast.Text:
			if entering {
				b.WriteString(render.Escape(string(n.Literal)))
			}
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteString("\n")
		case *ast.HorizontalRule:
			if entering {
				b.WriteString("[dim]" + strings.Repeat("─", 20) + "[/]\n")
			}
		}
		return ast.GoToNext
	})
	return strings.TrimRight(b.String(), "\n")
}

// mdPanel renders markdown content inside a bordered panel.
func mdPanel(v render.Value) (render.Node, error) {
	if v.Kind() != render.KindString {
		return nil, errNotApplicable
	}
	return &render.Panel{
		Border: true,
		Child:  &render.Text{Markup: mdToMarkup(v.Str())},
	}, nil
}
