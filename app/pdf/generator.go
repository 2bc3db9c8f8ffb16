package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"LavaderoApp/app/config"
	"LavaderoApp/app/models"

	"github.com/google/uuid"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoiceGenerator renders issued invoices as PDF documents
type InvoiceGenerator struct {
	business  config.BusinessConfig
	outputDir string
}

// NewInvoiceGenerator creates a generator writing under the data directory
func NewInvoiceGenerator(business config.BusinessConfig, dataPath string) *InvoiceGenerator {
	return &InvoiceGenerator{
		business:  business,
		outputDir: filepath.Join(dataPath, "facturas"),
	}
}

// Generate renders the invoice and returns the path of the saved PDF
func (g *InvoiceGenerator) Generate(invoice *models.Invoice) (string, error) {
	if invoice.Client == nil {
		return "", fmt.Errorf("invoice client must be loaded before rendering")
	}
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("could not create invoice output directory: %w", err)
	}

	m := maroto.New(marotoconfig.NewBuilder().Build())

	// Business header
	m.AddRow(10,
		col.New(8).Add(
			text.New(g.business.Name, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
			}),
		),
		col.New(4).Add(
			text.New("FACTURA", props.Text{
				Size:  20,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5,
		col.New(8).Add(
			text.New(g.business.TaxID, props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Nº: %s", invoice.FullNumber()), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5,
		col.New(8).Add(
			text.New(g.business.Address, props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Fecha: %s", invoice.IssueDate.Format("02/01/2006")), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)
	if invoice.DueDate != nil {
		m.AddRow(5,
			col.New(8).Add(
				text.New(g.business.Phone, props.Text{Size: 9}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Vencimiento: %s", invoice.DueDate.Format("02/01/2006")), props.Text{
					Size:  9,
					Align: align.Right,
				}),
			),
		)
	}

	// Client block
	m.AddRow(8)
	m.AddRow(6,
		col.New(12).Add(
			text.New("Cliente", props.Text{Size: 10, Style: fontstyle.Bold}),
		),
	)
	m.AddRow(5,
		col.New(12).Add(
			text.New(invoice.Client.FullName(), props.Text{Size: 9}),
		),
	)
	if invoice.Client.Phone != "" {
		m.AddRow(5,
			col.New(12).Add(
				text.New(invoice.Client.Phone, props.Text{Size: 9}),
			),
		)
	}

	// Line table header
	m.AddRow(8)
	m.AddRow(7,
		col.New(5).Add(text.New("Concepto", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(1).Add(text.New("Cant.", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Precio", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(1).Add(text.New("Dto.", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(1).Add(text.New("IVA", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Importe", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	)

	for _, line := range invoice.Lines {
		m.AddRow(6,
			col.New(5).Add(text.New(line.Concept, props.Text{Size: 9})),
			col.New(1).Add(text.New(fmt.Sprintf("%.0f", line.Quantity), props.Text{Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f €", line.UnitPrice), props.Text{Size: 9, Align: align.Right})),
			col.New(1).Add(text.New(fmt.Sprintf("%.0f%%", line.DiscountPct), props.Text{Size: 9, Align: align.Right})),
			col.New(1).Add(text.New(fmt.Sprintf("%.0f%%", line.VATRate), props.Text{Size: 9, Align: align.Right})),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f €", line.Total()), props.Text{Size: 9, Align: align.Right})),
		)
	}

	// Totals box
	m.AddRow(8)
	m.AddRow(6,
		col.New(8),
		col.New(2).Add(text.New("Base imponible", props.Text{Size: 9, Align: align.Right})),
		col.New(2).Add(text.New(fmt.Sprintf("%.2f €", invoice.TaxableBase), props.Text{Size: 9, Align: align.Right})),
	)
	m.AddRow(6,
		col.New(8),
		col.New(2).Add(text.New("IVA", props.Text{Size: 9, Align: align.Right})),
		col.New(2).Add(text.New(fmt.Sprintf("%.2f €", invoice.TotalVAT), props.Text{Size: 9, Align: align.Right})),
	)
	m.AddRow(8,
		col.New(8),
		col.New(2).Add(text.New("TOTAL", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New(fmt.Sprintf("%.2f €", invoice.Total), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
	)

	// Payment QR so the client can scan the invoice reference
	m.AddRow(8)
	m.AddRow(25,
		col.New(3).Add(
			code.NewQr(fmt.Sprintf("%s|%s|%.2f", g.business.Name, invoice.FullNumber(), invoice.Total)),
		),
		col.New(9).Add(
			text.New(fmt.Sprintf("Forma de pago: %s", invoice.PaymentMethod), props.Text{Size: 9, Top: 3}),
		),
	)

	document, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("error rendering invoice PDF: %w", err)
	}

	fileName := fmt.Sprintf("%s-%s.pdf", invoice.FullNumber(), uuid.New().String()[:8])
	outputPath := filepath.Join(g.outputDir, fileName)
	if err := document.Save(outputPath); err != nil {
		return "", fmt.Errorf("error saving invoice PDF: %w", err)
	}
	return outputPath, nil
}
