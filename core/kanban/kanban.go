// Package kanban derives a board view from a markdown document. Level-1
// headings name the board, level-2 headings open columns, and GFM task-list
// items become cards with a done state. Task items appearing before any
// heading land in an implicit unnamed column.
package kanban

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Board is the parsed kanban view of a document.
type Board struct {
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
}

// Column holds the cards under one heading.
type Column struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Card is a single task item.
type Card struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// The parser configuration never changes and the goldmark parser is safe to
// share; parsing creates per-call state via Parse(reader).
var (
	parserOnce     sync.Once
	parserInstance goldmark.Markdown
)

func boardParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

// ParseBoard parses markdown source into a Board. Prose that is neither a
// heading nor a task-list item is skipped.
func ParseBoard(source []byte) (*Board, error) {
	doc := boardParser().Parser().Parse(text.NewReader(source))

	board := &Board{}
	current := -1

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			name := strings.TrimSpace(nodeText(n, source))
			if n.Level == 1 && board.Title == "" && len(board.Columns) == 0 {
				board.Title = name
				continue
			}
			board.Columns = append(board.Columns, Column{Name: name})
			current = len(board.Columns) - 1
		case *ast.List:
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				card, ok := cardFromItem(item, source)
				if !ok {
					continue
				}
				if current < 0 {
					board.Columns = append(board.Columns, Column{})
					current = len(board.Columns) - 1
				}
				board.Columns[current].Cards = append(board.Columns[current].Cards, card)
			}
		}
	}

	return board, nil
}

// cardFromItem extracts a task card from a list item. Items without a task
// checkbox are not cards.
func cardFromItem(item ast.Node, source []byte) (Card, bool) {
	block := item.FirstChild()
	if block == nil {
		return Card{}, false
	}
	checkbox, ok := block.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return Card{}, false
	}
	// The checkbox node carries no text, so collecting the block's text
	// yields just the card label.
	return Card{
		Text: strings.TrimSpace(nodeText(block, source)),
		Done: checkbox.IsChecked,
	}, true
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := node.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
