// Package pdf genera el expediente de un beneficiario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + Identificación │ Estado + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Categoría / Prioridad / Contacto / Etiquetas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CASOS: Título | Tipo | Prioridad | Estado | Apertura        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERVICIOS: Fecha | Tipo | Descripción | Cant. | Costo       │
//	│  TOTAL entregado                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID + leyenda de confidencialidad          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Casos-api/internal/application/report"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCaseFilePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCaseFilePDF(_ context.Context, file *report.CaseFile) ([]byte, error) {
	if file == nil || file.Beneficiary == nil {
		return nil, fmt.Errorf("pdf: expediente sin beneficiario")
	}
	b := file.Beneficiary

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Expediente de beneficiario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(file))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(profileRows(b)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("CASOS (%d)", len(file.Cases))))
	m.AddRows(caseHeaderRow())
	m.AddRows(caseRows(file.Cases)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle(fmt.Sprintf("SERVICIOS (%d)", len(file.Services))))
	m.AddRows(serviceHeaderRow())
	m.AddRows(serviceRows(file.Services)...)
	m.AddRows(totalRow(file.Services))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(b))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(file *report.CaseFile) core.Row {
	b := file.Beneficiary
	idNumber := "Sin identificación"
	if b.IDNumber != nil {
		idNumber = "Identificación: " + *b.IDNumber
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(b.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(idNumber, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("EXPEDIENTE DEL BENEFICIARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(b.Status, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+file.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func profileRows(b *entity.Beneficiary) []core.Row {
	birth := "—"
	if b.DateOfBirth != nil {
		birth = b.DateOfBirth.Format("02/01/2006")
	}
	tags := "—"
	if len(b.Tags) > 0 {
		tags = strings.Join(b.Tags, ", ")
	}
	rows := []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("DATOS GENERALES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Categoría: %s   |   Prioridad: %s   |   Género: %s   |   Nacimiento: %s",
				b.Category, b.Priority, nonEmpty(b.Gender, "—"), birth,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s   |   Nacionalidad: %s   |   Etiquetas: %s",
				nonEmpty(b.Phone, "—"), nonEmpty(b.Email, "—"), nonEmpty(b.Nationality, "—"), tags,
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
	if b.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+b.Notes, props.Text{Size: 8, Top: 1}),
		)))
	}
	return rows
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func caseHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Título", 5, align.Left),
		headerCol("Tipo", 2, align.Left),
		headerCol("Prioridad", 2, align.Center),
		headerCol("Estado", 2, align.Center),
		headerCol("Apertura", 1, align.Right),
	)
}

func caseRows(cases []*entity.Case) []core.Row {
	if len(cases) == 0 {
		return []core.Row{emptyRow("Sin casos registrados.")}
	}
	result := make([]core.Row, 0, len(cases))
	for _, c := range cases {
		result = append(result, row.New(7).Add(
			cell(c.Title, 5, align.Left),
			cell(c.Type, 2, align.Left),
			cell(c.Priority, 2, align.Center),
			cell(c.Status, 2, align.Center),
			cell(c.CreatedAt.Format("02/01/06"), 1, align.Right),
		))
	}
	return result
}

func serviceHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Fecha", 2, align.Left),
		headerCol("Tipo", 3, align.Left),
		headerCol("Descripción", 4, align.Left),
		headerCol("Cant.", 1, align.Center),
		headerCol("Costo", 2, align.Right),
	)
}

func serviceRows(services []*entity.Service) []core.Row {
	if len(services) == 0 {
		return []core.Row{emptyRow("Sin servicios registrados.")}
	}
	result := make([]core.Row, 0, len(services))
	for _, s := range services {
		qty := "—"
		if s.Quantity != nil {
			qty = strconv.Itoa(*s.Quantity)
		}
		cost := "—"
		if s.Cost != nil {
			cost = "$" + formatMoney(s.Cost.StringFixed(0))
		}
		result = append(result, row.New(7).Add(
			cell(s.Date.Format("02/01/2006"), 2, align.Left),
			cell(s.Type, 3, align.Left),
			cell(s.Description, 4, align.Left),
			cell(qty, 1, align.Center),
			cell(cost, 2, align.Right),
		))
	}
	return result
}

// totalRow suma el costo de los servicios que lo tienen.
func totalRow(services []*entity.Service) core.Row {
	total := decimal.Zero
	for _, s := range services {
		if s.Cost != nil {
			total = total.Add(*s.Cost)
		}
	}
	return row.New(9).Add(
		col.New(7),
		col.New(3).Add(text.New("TOTAL ENTREGADO:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New("$"+formatMoney(total.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(b *entity.Beneficiary) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(b.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("ID: "+b.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Documento confidencial. Contiene datos personales de la persona atendida; "+
				"su uso está limitado a la gestión del caso.", props.Text{
				Size: 7, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
