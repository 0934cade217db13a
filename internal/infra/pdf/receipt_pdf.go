package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"engagesphere/internal/domain/model"

	"github.com/go-pdf/fpdf"
)

// Renderer produces the printable receipt PDF from a stored snapshot.
type Renderer struct {
	companyName string
}

func NewRenderer(companyName string) *Renderer {
	if companyName == "" {
		companyName = "EngageSphere"
	}
	return &Renderer{companyName: companyName}
}

// Render lays out the receipt on a single A4 page and returns the PDF bytes.
func (r *Renderer) Render(receipt *model.Receipt) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Receipt %s", receipt.Number), false)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, r.companyName, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(100, 100, 100)
	doc.CellFormat(0, 6, "Payment Receipt", "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, fmt.Sprintf("Receipt No: %s", receipt.Number), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, fmt.Sprintf("Order ID: %s", receipt.OrderID), "", 1, "L", false, 0, "")
	if receipt.PaymentID != "" {
		doc.CellFormat(0, 5, fmt.Sprintf("Payment ID: %s", receipt.PaymentID), "", 1, "L", false, 0, "")
	}
	if receipt.PaidAt != nil {
		doc.CellFormat(0, 5, fmt.Sprintf("Date: %s", receipt.PaidAt.Format("02 Jan 2006 15:04 MST")), "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	// Bill to
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, "Billed To", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, receipt.PayerName, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, receipt.PayerEmail, "", 1, "L", false, 0, "")
	doc.Ln(8)

	// Line item table
	doc.SetFillColor(240, 240, 240)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(130, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(50, 8, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(130, 8, fmt.Sprintf("%s subscription", receipt.PlanName), "1", 0, "L", false, 0, "")
	doc.CellFormat(50, 8, FormatMinor(receipt.Amount, receipt.Currency), "1", 1, "R", false, 0, "")

	if len(receipt.Features) > 0 {
		doc.SetFont("Helvetica", "I", 9)
		doc.SetTextColor(80, 80, 80)
		for _, f := range receipt.Features {
			doc.CellFormat(130, 6, "  - "+f, "LR", 0, "L", false, 0, "")
			doc.CellFormat(50, 6, "", "LR", 1, "R", false, 0, "")
		}
		doc.CellFormat(180, 0, "", "T", 1, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	}
	doc.Ln(2)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(130, 8, "Total Paid", "", 0, "R", false, 0, "")
	doc.CellFormat(50, 8, FormatMinor(receipt.Amount, receipt.Currency), "", 1, "R", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(120, 120, 120)
	doc.CellFormat(0, 5, fmt.Sprintf("Status: %s", strings.ToUpper(receipt.Status)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "This receipt was generated electronically and is valid without a signature.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatMinor renders an amount in minor units as "USD 24.99".
func FormatMinor(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s %s%d.%02d", strings.ToUpper(currency), sign, amount/100, amount%100)
}
