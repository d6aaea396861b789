package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"taqueando-console/internal/domain"
	"taqueando-console/internal/format"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	arqueoSheet  = "Arqueos"
	summarySheet = "Resumen"
)

// Exporter renders arqueo history and cash summaries as XLSX workbooks.
type Exporter struct {
	loc *time.Location
}

func NewExporter(loc *time.Location) *Exporter {
	return &Exporter{loc: loc}
}

// FileName is the attachment name for the export of date.
func FileName(date string) string {
	return "arqueos_" + date + ".xlsx"
}

// Write renders the history of a day, and the cash summary when given, and
// writes the workbook to w.
func (e *Exporter) Write(w io.Writer, history *domain.HistoryReport, summary *domain.Summary) error {
	f, err := e.Workbook(history, summary)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}
	return nil
}

// Workbook builds the workbook in memory.
func (e *Exporter) Workbook(history *domain.HistoryReport, summary *domain.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", arqueoSheet); err != nil {
		return nil, err
	}

	fl := newFills(f)
	if err := e.arqueoRows(f, fl, history); err != nil {
		return nil, fmt.Errorf("could not fill %s sheet: %w", arqueoSheet, err)
	}

	if summary != nil {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, err
		}
		if err := summaryRows(f, fl, history, *summary); err != nil {
			return nil, fmt.Errorf("could not fill %s sheet: %w", summarySheet, err)
		}
	}
	return f, nil
}

func arqueoHeadings() []interface{} {
	headings := []interface{}{"ID", "Fecha"}
	for _, d := range domain.Denominations {
		headings = append(headings, fmt.Sprintf("%s %d", d.Kind, d.Value))
	}
	return append(headings, "Caja chica", "Total contado", "Total sistema", "Diferencia", "Estado", "Observaciones")
}

func (e *Exporter) arqueoRows(f *excelize.File, fl *fills, history *domain.HistoryReport) error {
	if err := setRow(f, arqueoSheet, 1, arqueoHeadings()); err != nil {
		return err
	}
	if history == nil {
		return nil
	}

	for i, a := range history.Arqueos {
		row := []interface{}{a.ID, format.DateTime(a.Date, e.loc)}
		for _, d := range domain.Denominations {
			row = append(row, a.Counts[d.Value])
		}
		row = append(row,
			amount(a.PettyCash),
			amount(a.CountedTotal),
			amount(a.SystemTotal),
			amount(a.Discrepancy),
			string(a.Status),
			a.Notes,
		)
		if err := setRow(f, arqueoSheet, i+2, row); err != nil {
			return err
		}
		if err := fl.apply(arqueoSheet, len(row)-2, i+2, format.ArqueoColor(a.Status)); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(f *excelize.File, fl *fills, history *domain.HistoryReport, s domain.Summary) error {
	rows := [][]interface{}{
		{"Fecha", s.Date},
		{"Total del día", amount(s.TotalForPeriod)},
		{"Efectivo", amount(s.TotalCash)},
		{"Tarjeta", amount(s.TotalCard)},
		{"QR", amount(s.TotalQR)},
		{"Online", amount(s.TotalOnline)},
		{"Sin clasificar", amount(s.TotalUnclassified)},
	}
	methods := map[int]domain.PaymentMethod{
		3: domain.PaymentMethodCash,
		4: domain.PaymentMethodCard,
		5: domain.PaymentMethodQR,
		6: domain.PaymentMethodOnline,
	}
	if history != nil {
		hs := history.Summary
		rows = append(rows,
			[]interface{}{"Arqueos", hs.TotalArqueos},
			[]interface{}{"Cuadrados", hs.Balanced},
			[]interface{}{"Sobrantes", hs.Surplus},
			[]interface{}{"Faltantes", hs.Shortfall},
			[]interface{}{"Diferencia acumulada", amount(hs.TotalDiscrepancy)},
		)
	}

	for i, row := range rows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
		if method, ok := methods[i+1]; ok {
			if err := fl.apply(summarySheet, 1, i+1, format.MethodColor(method)); err != nil {
				return err
			}
		}
	}
	return nil
}

// fills creates one fill style per badge colour and reuses it.
type fills struct {
	f      *excelize.File
	styles map[string]int
}

func newFills(f *excelize.File) *fills {
	return &fills{f: f, styles: make(map[string]int)}
}

// apply fills the cell at the zero-based column col of row with color.
// Colours without a fill leave the cell as is.
func (fl *fills) apply(sheet string, col, row int, color string) error {
	hex := format.FillColor(color)
	if hex == "" {
		return nil
	}

	style, ok := fl.styles[hex]
	if !ok {
		var err error
		style, err = fl.f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		fl.styles[hex] = style
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	return fl.f.SetCellStyle(sheet, cell, cell, style)
}

func setRow(f *excelize.File, sheet string, rowNo int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// amount keeps two decimals in the cell value.
func amount(d decimal.Decimal) float64 {
	v, _ := strconv.ParseFloat(format.Amount(d), 64)
	return v
}
