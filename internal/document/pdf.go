package document

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	pdfWrapWidth  = 95
	pdfLineHeight = 5.5
)

// RenderPDF renders the document as an A4 PDF.
func RenderPDF(doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(18).
		WithTopMargin(15).
		WithRightMargin(18).
		Build()

	m := maroto.New(cfg)
	m.AddRows(pdfRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func pdfRows(doc Document) []core.Row {
	body := props.Text{Size: 10}
	bold := props.Text{Size: 11, Style: fontstyle.Bold}

	var rows []core.Row
	for _, block := range doc.Blocks {
		switch block.Kind {
		case BlockHeader:
			rows = append(rows, text.NewRow(12, block.Title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
			for _, item := range block.Items {
				rows = append(rows, text.NewRow(pdfLineHeight, item, props.Text{Size: 10, Align: align.Center}))
			}
		default:
			if block.Title != "" {
				rows = append(rows, text.NewRow(8, block.Title, bold))
			}
			if block.Paragraph != "" {
				for _, line := range wrap(block.Paragraph, pdfWrapWidth) {
					rows = append(rows, text.NewRow(pdfLineHeight, line, body))
				}
			}
			for _, item := range block.Items {
				if block.Kind == BlockIncluded || block.Kind == BlockExcluded || block.Kind == BlockPlans {
					item = "- " + item
				}
				rows = append(rows, text.NewRow(pdfLineHeight, item, body))
			}
		}
		rows = append(rows, row.New(4))
	}
	return rows
}
