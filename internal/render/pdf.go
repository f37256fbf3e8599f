// Package render produces the printable PDF representation of an invoice.
package render

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"invoicegen/internal/domain"
	"invoicegen/internal/gst"
)

// PDFRenderer renders invoices as A4 PDF documents.
type PDFRenderer struct {
	rates gst.Rates
}

// NewPDFRenderer creates a renderer. The rates are used only for the percent
// labels on the tax rows; the amounts themselves come precomputed on the
// invoice.
func NewPDFRenderer(rates gst.Rates) *PDFRenderer {
	return &PDFRenderer{rates: rates}
}

// Render produces the PDF bytes for a computed invoice.
func (r *PDFRenderer) Render(_ context.Context, inv *domain.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, inv)
	addInvoiceMeta(m, inv)
	addAddresses(m, inv)
	addLineItemsTable(m, inv)
	r.addTotals(m, inv)
	addAmountInWords(m, inv)
	addBankDetails(m, inv)
	addSignatures(m, inv)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the supplier name, "TAX INVOICE" title and supplier address.
func addHeader(m core.Maroto, inv *domain.Invoice) {
	c := inv.Company

	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(c.Name, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("TAX INVOICE", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(c.Address, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("GSTIN: %s", c.GSTIN), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	contact := joinNonEmpty([]string{c.Phone, c.Email}, " | ")
	if contact != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				})),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addInvoiceMeta adds invoice number, date, PO and MB number.
func addInvoiceMeta(m core.Maroto, inv *domain.Invoice) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(2).Add(text.New("Invoice No:", labelStyle)),
			col.New(4).Add(text.New(inv.InvoiceNo, valueStyle)),
			col.New(2).Add(text.New("Date:", labelStyle)),
			col.New(4).Add(text.New(inv.Date, valueStyle)),
		),
	)

	if inv.PO != "" || inv.MBNumber != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(2).Add(text.New("PO No:", labelStyle)),
				col.New(4).Add(text.New(inv.PO, valueStyle)),
				col.New(2).Add(text.New("MB No:", labelStyle)),
				col.New(4).Add(text.New(inv.MBNumber, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addAddresses adds Bill To and Ship To blocks side by side.
func addAddresses(m core.Maroto, inv *domain.Invoice) {
	sectionLabel := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	boldValue := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
	}

	headerBg := &props.Color{Red: 245, Green: 243, Blue: 239}
	headerCell := &props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("BILL TO", sectionLabel)).WithStyle(headerCell),
			col.New(6).Add(text.New("SHIP TO", sectionLabel)).WithStyle(headerCell),
		),
	)

	bill := inv.Billing
	ship := inv.Shipping

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(bill.Name, boldValue)),
			col.New(6).Add(text.New(ship.Name, boldValue)),
		),
	)
	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(bill.Address, valueStyle)),
			col.New(6).Add(text.New(ship.Address, valueStyle)),
		),
	)
	if bill.GSTIN != "" || ship.GSTIN != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(6).Add(text.New(fmtField("GSTIN", bill.GSTIN), valueStyle)),
				col.New(6).Add(text.New(fmtField("GSTIN", ship.GSTIN), valueStyle)),
			),
		)
	}
	if bill.State != "" || ship.State != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(6).Add(text.New(fmtField("State", stateWithCode(bill)), valueStyle)),
				col.New(6).Add(text.New(fmtField("State", stateWithCode(ship)), valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addLineItemsTable adds the product table with header and body rows.
func addLineItemsTable(m core.Maroto, inv *domain.Invoice) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("SI No", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("HSN Code", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range inv.Products {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colSINo := col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), bodyText))
		colDesc := col.New(5).Add(text.New(item.Name, bodyTextLeft))
		colHSN := col.New(2).Add(text.New(item.HSNCode, bodyText))
		colQty := col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), bodyTextRight))
		colRate := col.New(1).Add(text.New(FormatINR(item.Rate), bodyTextRight))
		colAmount := col.New(2).Add(text.New(FormatINR(item.Amount), bodyTextRight))

		if cellStyle != nil {
			colSINo = colSINo.WithStyle(cellStyle)
			colDesc = colDesc.WithStyle(cellStyle)
			colHSN = colHSN.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colRate = colRate.WithStyle(cellStyle)
			colAmount = colAmount.WithStyle(cellStyle)
		}

		m.AddRows(
			row.New(7).Add(colSINo, colDesc, colHSN, colQty, colRate, colAmount),
		)
	}

	m.AddRows(row.New(2))
}

// addTotals adds right-aligned total rows. Tax rows follow the computed tax
// type: CGST+SGST for in-state supply, IGST interstate, neither when no tax
// applies.
func (r *PDFRenderer) addTotals(m core.Maroto, inv *domain.Invoice) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	addRow := func(label string, amount decimal.Decimal) {
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(label, labelStyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(FormatINR(amount), valueStyle)).WithStyle(summaryCell),
			),
		)
	}

	t := inv.Totals

	addRow("Subtotal", t.Subtotal)
	if !t.PackingCharges.IsZero() {
		addRow("Packing Charges", t.PackingCharges)
	}
	addRow("Total Before Tax", t.TotalBeforeTax)

	switch t.TaxType {
	case domain.TaxTypeSGST:
		addRow(fmt.Sprintf("CGST @ %s%%", percent(r.rates.CGST)), t.CGST)
		addRow(fmt.Sprintf("SGST @ %s%%", percent(r.rates.SGST)), t.SGST)
	case domain.TaxTypeIGST:
		addRow(fmt.Sprintf("IGST @ %s%%", percent(r.rates.IGST)), t.IGST)
	}

	grandBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	grandCell := &props.Cell{BackgroundColor: grandBg}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Total After Tax", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatINR(t.TotalAfterTax), grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

func addAmountInWords(m core.Maroto, inv *domain.Invoice) {
	if inv.AmountInWords == "" {
		return
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in Words: %s", inv.AmountInWords), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

func addBankDetails(m core.Maroto, inv *domain.Invoice) {
	b := inv.Company.Bank
	if b.BankName == "" && b.AccountNumber == "" && b.IFSCCode == "" {
		return
	}

	sectionLabel := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 33, Green: 37, Blue: 41},
	}
	fieldLabel := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	fieldValue := props.Text{
		Size:  8,
		Align: align.Left,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("BANK DETAILS", sectionLabel)),
		),
	)

	bankRows := []struct{ label, value string }{
		{"Bank Name", b.BankName},
		{"Account No", b.AccountNumber},
		{"IFSC Code", b.IFSCCode},
		{"Branch", b.Branch},
	}

	for _, br := range bankRows {
		if br.value == "" {
			continue
		}
		m.AddRows(
			row.New(7).Add(
				col.New(3).Add(text.New(br.label, fieldLabel)),
				col.New(9).Add(text.New(br.value, fieldValue)),
			),
		)
	}

	m.AddRows(row.New(3))
}

func addSignatures(m core.Maroto, inv *domain.Invoice) {
	m.AddRows(row.New(10))

	lineStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
	)

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Customer Signature", labelStyle)),
			col.New(6).Add(text.New(fmt.Sprintf("For %s (Authorized Signatory)", inv.Company.Name), labelStyle)),
		),
	)
}

func stateWithCode(p domain.Party) string {
	if p.State == "" {
		return ""
	}
	if p.StateCode == "" {
		return p.State
	}
	return fmt.Sprintf("%s (%s)", p.State, p.StateCode)
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	result := ""
	for i, p := range nonEmpty {
		if i > 0 {
			result += sep
		}
		result += p
	}
	return result
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}
