package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"lodge/internal/domains/booking/model"
	customerModel "lodge/internal/domains/customer/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/constant"

	"github.com/rs/zerolog/log"
)

// The invoice body is plain HTML handed to wkhtmltopdf, so it carries its own
// inline styling.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #333; margin: 40px; }
  .header { border-bottom: 2px solid #2c3e50; padding-bottom: 12px; margin-bottom: 24px; }
  .header h1 { margin: 0; color: #2c3e50; }
  .header p { margin: 4px 0 0; color: #777; }
  .meta { margin-bottom: 24px; }
  .meta td { padding: 2px 16px 2px 0; }
  table.lines { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  table.lines th { background: #2c3e50; color: #fff; text-align: left; padding: 8px; }
  table.lines td { border-bottom: 1px solid #ddd; padding: 8px; }
  .total { text-align: right; font-size: 1.2em; font-weight: bold; }
  .footer { margin-top: 40px; color: #999; font-size: 0.85em; text-align: center; }
</style>
</head>
<body>
  <div class="header">
    <h1>{{.HotelName}}</h1>
    <p>{{.HotelAddress}}</p>
  </div>

  <h2>Invoice #{{.InvoiceNumber}}</h2>

  <table class="meta">
    <tr><td>Guest</td><td>{{.CustomerName}}</td></tr>
    <tr><td>Email</td><td>{{.CustomerEmail}}</td></tr>
    <tr><td>Room</td><td>{{.RoomNumber}} ({{.RoomType}})</td></tr>
    <tr><td>Check-in</td><td>{{.CheckIn}}</td></tr>
    <tr><td>Check-out</td><td>{{.CheckOut}}</td></tr>
    <tr><td>Payment status</td><td>{{.PaymentStatus}}</td></tr>
  </table>

  <table class="lines">
    <tr><th>Description</th><th>Nights</th><th>Rate</th><th>Amount</th></tr>
    <tr>
      <td>Room {{.RoomNumber}} ({{.RoomType}})</td>
      <td>{{.Nights}}</td>
      <td>{{printf "%.2f" .Rate}}</td>
      <td>{{printf "%.2f" .Total}}</td>
    </tr>
  </table>

  <p class="total">Total: {{printf "%.2f" .Total}}</p>

  <div class="footer">Thank you for staying with us.</div>
</body>
</html>`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

type invoiceData struct {
	HotelName     string
	HotelAddress  string
	InvoiceNumber string
	CustomerName  string
	CustomerEmail string
	RoomNumber    string
	RoomType      string
	CheckIn       string
	CheckOut      string
	PaymentStatus string
	Nights        int
	Rate          float64
	Total         float64
}

// renderInvoiceHTML fills the invoice template. It is pure so the layout can
// be verified without a wkhtmltopdf binary.
func renderInvoiceHTML(hotelName, hotelAddress string, booking model.Booking, room roomModel.Room, customer customerModel.Customer) (string, error) {
	data := invoiceData{
		HotelName:     hotelName,
		HotelAddress:  hotelAddress,
		InvoiceNumber: booking.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		RoomNumber:    room.Number,
		RoomType:      room.Type,
		CheckIn:       booking.CheckIn.Format(constant.BookingDateFmt),
		CheckOut:      booking.CheckOut.Format(constant.BookingDateFmt),
		PaymentStatus: booking.PaymentStatus,
		Nights:        booking.Nights(),
		Rate:          room.Price,
		Total:         booking.TotalAmount,
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}

	return buf.String(), nil
}

func (s *serviceImpl) Invoice(ctx context.Context, id string) (content []byte, fileName string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Invoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getModel(ctx, id)
	if err != nil {
		return nil, constant.Empty, err
	}

	room, customer, err := s.loadRelations(ctx, booking)
	if err != nil {
		return nil, constant.Empty, err
	}

	html, err := renderInvoiceHTML(s.cfg.Hotel.Name, s.cfg.Hotel.Address, booking, room, customer)
	if err != nil {
		log.Error().Err(err).Msg("failed to render invoice")

		return nil, constant.Empty, err
	}

	content, err = s.pdf.Render(ctx, html)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate invoice PDF")

		return nil, constant.Empty, err
	}

	return content, fmt.Sprintf("invoice_%s.pdf", booking.ID), nil
}
