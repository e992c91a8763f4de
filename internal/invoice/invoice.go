// Package invoice renders single-page A4 order invoices.
package invoice

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/models"
)

// DefaultLang is used when the request carries no language.
const DefaultLang = "fr"

type StoreInfo struct {
	Name  string
	City  string
	Phone string
	Email string
}

type Invoice struct {
	Kind  models.OrderKind
	Order models.Order
	Store StoreInfo
	Lang  string
	Logo  []byte // jpeg, png or gif; optional
	Now   time.Time
}

var headerFill = [3]int{41, 128, 185}

// FileName is the download name of the invoice of order.
func FileName(kind models.OrderKind, order models.Order) string {
	if kind == models.OrderKindDelivery {
		return fmt.Sprintf("Facture_Livraison_%d.pdf", order.ID)
	}
	return fmt.Sprintf("Facture_Table_%d.pdf", order.TableNumber)
}

// Render writes the invoice PDF to w. A missing logo is left out; a logo that
// cannot be decoded is an error.
func Render(w io.Writer, inv Invoice) error {
	lang := inv.Lang
	if lang == "" {
		lang = DefaultLang
	}
	if inv.Now.IsZero() {
		inv.Now = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	if len(inv.Logo) > 0 {
		if err := placeLogo(pdf, inv.Logo); err != nil {
			return err
		}
	}

	label := func(key string) string { return localized(lang, key) }

	// Store block
	pdf.SetFont("Helvetica", "B", 17)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(44, 26, latin1(inv.Store.Name))

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(70, 70, 70)
	pdf.Text(44, 34, latin1(inv.Store.City))
	pdf.Text(44, 40, latin1(inv.Store.Phone))
	pdf.Text(44, 46, latin1(inv.Store.Email))

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(150, 26, label("invoice.title"))

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(156, 40, fmt.Sprintf("%s: %d", label("invoice.orderId"), inv.Order.ID))
	if inv.Kind == models.OrderKindDelivery {
		pdf.Text(156, 48, fmt.Sprintf("%s: %s", label("invoice.customer"), latin1(inv.Order.CustomerName)))
		pdf.SetXY(10, 60)
		pdf.MultiCell(120, 5, fmt.Sprintf("%s: %s", label("invoice.deliveryAddress"), latin1(inv.Order.CustomerAddress)), "", "L", false)
	} else {
		pdf.Text(156, 48, fmt.Sprintf("%s: %d", label("invoice.tableNumber"), inv.Order.TableNumber))
	}

	date := FormatDate(lang, inv.Now)
	if _, ok := encode(date); !ok {
		date = latinDate(lang, inv.Now)
	}
	pdf.SetTextColor(50, 50, 50)
	pdf.Text(156, 56, fmt.Sprintf("%s: %s", label("invoice.date"), date))

	finalY := itemTable(pdf, inv.Order, label) + 12

	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.RoundedRect(140, finalY-6, 50, 10, 5, "1234", "F")

	total := strconv.FormatFloat(inv.Order.ComputedTotal(), 'f', 2, 64)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(255, 255, 255)
	totalText := fmt.Sprintf("%s: %s %s", label("invoice.total"), total, label("invoice.currency"))
	pdf.Text(180-pdf.GetStringWidth(totalText), finalY+1, totalText)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text(10, finalY+10, label("invoice.thankYou"))
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(10, finalY+20, label("invoice.visitAgain"))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf yazılamadı: %w", err)
	}
	return nil
}

// itemTable draws the striped item table from y=90 and returns its bottom edge.
func itemTable(pdf *fpdf.Fpdf, order models.Order, label func(string) string) float64 {
	const (
		rowH = 8.0
		top  = 90.0
	)
	widths := []float64{90, 30, 30, 40}
	aligns := []string{"L", "R", "R", "R"}
	head := []string{label("invoice.item"), label("invoice.price"), label("invoice.quantity"), label("invoice.lineTotal")}

	pdf.SetXY(10, top)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range head {
		pdf.CellFormat(widths[i], rowH, h, "", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	for n, it := range order.Items {
		stripe := n%2 == 1
		if stripe {
			pdf.SetFillColor(245, 245, 245)
		}
		row := []string{
			latin1(it.FoodName),
			strconv.FormatFloat(it.Price, 'f', 2, 64),
			strconv.Itoa(it.Quantity),
			strconv.FormatFloat(it.Amount(), 'f', 2, 64),
		}
		pdf.SetX(10)
		for i, v := range row {
			pdf.CellFormat(widths[i], rowH, v, "", 0, aligns[i], stripe, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.GetY()
}

func placeLogo(pdf *fpdf.Fpdf, logo []byte) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(logo))
	if err != nil {
		return fmt.Errorf("logo çözümlenemedi: %w", err)
	}

	var typ string
	switch format {
	case "jpeg":
		typ = "JPG"
	case "png":
		typ = "PNG"
	case "gif":
		typ = "GIF"
	default:
		return fmt.Errorf("logo formatı desteklenmiyor: %s", format)
	}

	opts := fpdf.ImageOptions{ImageType: typ}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
	pdf.ImageOptions("logo", 10, 20, 30, 30, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("logo eklenemedi: %w", err)
	}
	return nil
}

// localized returns key in lang when the core font can draw it, English otherwise.
func localized(lang, key string) string {
	if s, ok := encode(i18n.T(lang, key)); ok {
		return s
	}
	s, _ := encode(i18n.T(i18n.Fallback, key))
	return s
}

// latin1 converts free text to Windows-1252, replacing what it cannot hold.
func latin1(s string) string {
	out, _ := encode(s)
	return out
}

func encode(s string) (string, bool) {
	var b strings.Builder
	ok := true
	for _, r := range s {
		c, found := charmap.Windows1252.EncodeRune(r)
		if !found {
			ok = false
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String(), ok
}
