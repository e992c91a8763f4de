// Package export writes order lists as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/models"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileName is e.g. "dar-tajine-table-orders-2026-03-07.xlsx".
func FileName(storeName string, kind models.OrderKind, now time.Time) string {
	base := slug.Make(storeName)
	if base == "" {
		base = "orders"
	}
	return fmt.Sprintf("%s-%s-orders-%s.xlsx", base, kind, now.Format("2006-01-02"))
}

// Orders writes one row per order with a bold header row.
func Orders(w io.Writer, kind models.OrderKind, orders []models.Order, lang string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(lang, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("sayfa adı verilemedi: %w", err)
	}

	header := []any{i18n.T(lang, "export.orderId")}
	if kind == models.OrderKindDelivery {
		header = append(header,
			i18n.T(lang, "export.customer"),
			i18n.T(lang, "export.phone"),
			i18n.T(lang, "export.address"))
	} else {
		header = append(header, i18n.T(lang, "export.table"))
	}
	header = append(header, i18n.T(lang, "export.items"), i18n.T(lang, "export.total"), i18n.T(lang, "export.status"))

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("başlık yazılamadı: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
	})
	if err != nil {
		return fmt.Errorf("stil oluşturulamadı: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("stil uygulanamadı: %w", err)
	}

	for i, o := range orders {
		row := []any{o.ID}
		if kind == models.OrderKindDelivery {
			row = append(row, o.CustomerName, o.CustomerPhone, o.CustomerAddress)
		} else {
			row = append(row, o.TableNumber)
		}
		row = append(row, itemSummary(o.Items), o.ComputedTotal(), statusLabel(lang, o.Status))

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("satır %d yazılamadı: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx yazılamadı: %w", err)
	}
	return nil
}

func itemSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.FoodName, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func statusLabel(lang string, done bool) string {
	if done {
		return i18n.T(lang, "order.status.completed")
	}
	return i18n.T(lang, "order.status.pending")
}
