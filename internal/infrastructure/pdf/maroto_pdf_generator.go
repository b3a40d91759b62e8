// Package pdf implementa la generación del documento imprimible de una
// solicitud de presupuesto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° Solicitud  │  Estado + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nombre / Cuenta contable / Monto               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Material | Cantidad                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DECISIÓN: Aprobador / Observación / Fecha (si ya decidida)  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/stock-analyzer-api/internal/application/budget"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 22, Green: 120, Blue: 60}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa budget.RequestPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ budget.RequestPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateRequestPDF genera el PDF y devuelve sus bytes. approval puede ser
// nil si la solicitud sigue pendiente.
func (g *MarotoPDFGenerator) GenerateRequestPDF(
	_ context.Context,
	request *entity.BudgetRequest,
	approval *entity.Approval,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Solicitud de Presupuesto "+request.RequestNo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requesterRow(request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de materiales
	m.AddRows(tableHeaderRow())
	for _, r := range tableMaterialRows(request.MaterialList) {
		m.AddRows(r)
	}

	if request.Note != "" {
		m.AddRows(noteRow(request.Note))
	}

	// Bloque de decisión
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(decisionRow(request, approval))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + número (izq) y estado + fecha (der).
func headerRow(request *entity.BudgetRequest) core.Row {
	fecha := request.RequestDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("SOLICITUD DE PRESUPUESTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(request.RequestNo, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New(request.Status, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: statusColor(request.Status), Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// requesterRow: solicitante, cuenta contable y monto.
func requesterRow(request *entity.BudgetRequest) core.Row {
	cuenta := request.AccountCode
	if request.AccountName != "" {
		cuenta += " — " + request.AccountName
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("DATOS DE LA SOLICITUD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Solicitante: "+request.Requester, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cuenta: %s   |   Monto: $%s",
				cuenta,
				formatMoney(request.Amount.StringFixed(0)),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Material solicitado", 8, align.Left),
		h("Cantidad", 3, align.Right),
	)
}

// tableMaterialRows: una fila por línea de material.
func tableMaterialRows(items []entity.MaterialItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(8).Add(text.New(
				it.Item,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.Quantity,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// noteRow: nota libre del solicitante.
func noteRow(note string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Nota: "+note, props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

// decisionRow: bloque de decisión; si la solicitud sigue pendiente se deja el
// espacio de firma en blanco.
func decisionRow(request *entity.BudgetRequest, approval *entity.Approval) core.Row {
	if approval == nil {
		return row.New(20).Add(col.New(12).Add(
			text.New("DECISIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Pendiente de aprobación", props.Text{
				Size: 9, Top: 7, Color: colorGray,
			}),
			text.New("Firma del aprobador: ______________________________", props.Text{
				Size: 9, Top: 15,
			}),
		))
	}

	remark := approval.Remark
	if remark == "" {
		remark = "—"
	}
	return row.New(20).Add(col.New(12).Add(
		text.New("DECISIÓN", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(request.Status+" por "+approval.ApproverName, props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 6,
			Color: statusColor(request.Status),
		}),
		text.New(fmt.Sprintf("Observación: %s   |   Fecha: %s",
			remark,
			approval.CreatedAt.Format("02/01/2006 15:04"),
		), props.Text{Size: 8, Top: 12, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(status string) *props.Color {
	switch status {
	case entity.BudgetStatusApproved:
		return colorGreen
	case entity.BudgetStatusRejected:
		return colorRed
	default:
		return colorGray
	}
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
