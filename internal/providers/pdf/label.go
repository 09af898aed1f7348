package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateLabel(ctx context.Context, format string, data LabelData) ([]byte, error) {
	builder := config.NewBuilder()
	switch format {
	case "10x15":
		// Thermal label stock, 100x150mm.
		builder = builder.WithDimensions(100, 150)
	case "A4":
		builder = builder.WithPageSize(pagesize.A4)
	default:
		return nil, fmt.Errorf("unsupported label format %q", format)
	}

	m := maroto.New(builder.Build())

	m.AddRow(10,
		text.NewCol(8, strings.ToUpper(data.Carrier), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.Platform, props.Text{
			Size:  8,
			Align: align.Right,
		}),
	)

	m.AddRow(2, line.NewCol(12))

	m.AddRow(6,
		text.NewCol(12, "Destinatário", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, data.RecipientName, props.Text{Size: 10}),
	)
	for _, addrLine := range data.AddressLines {
		m.AddRow(5,
			text.NewCol(12, addrLine, props.Text{Size: 9}),
		)
	}

	m.AddRow(2, line.NewCol(12))

	m.AddRow(5,
		text.NewCol(6, fmt.Sprintf("Pedido: %s", data.PlatformOrderID), props.Text{Size: 8}),
		text.NewCol(6, fmt.Sprintf("Rastreio: %s", data.TrackingCode), props.Text{
			Size:  8,
			Align: align.Right,
		}),
	)

	if len(data.Items) > 0 {
		m.AddRow(5,
			text.NewCol(12, "Itens", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
			}),
		)
		for _, item := range data.Items {
			m.AddRow(4,
				text.NewCol(9, item.Name, props.Text{Size: 8}),
				text.NewCol(3, fmt.Sprintf("x%d", item.Quantity), props.Text{
					Size:  8,
					Align: align.Right,
				}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render label: %w", err)
	}
	return doc.GetBytes(), nil
}
