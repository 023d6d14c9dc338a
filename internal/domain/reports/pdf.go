package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"compeval/internal/domain/evaluation"
)

// SummaryPDF renders the weighted summary as a landscape table, one row per
// evaluation.
func SummaryPDF(rows []SummaryRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, translator("Resumen de evaluaciones"))
	pdf.Ln(12)

	headers := []string{"ID", "Fecha", "Empleado", "Área", "Categoría", "Proceso", "Evaluador", "%"}
	widths := []float64{12, 26, 50, 24, 50, 44, 50, 16}

	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, translator(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		cells := []string{
			fmt.Sprintf("%d", row.EvaluationID),
			row.CreatedAt.Format("2006-01-02"),
			row.EmployeeName,
			row.Area,
			row.Category,
			row.Process,
			row.Evaluator,
			fmt.Sprintf("%.2f", row.Percentage),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, translator(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EvaluationPDF renders one evaluation's full sheet: an identification
// header, one row per question, and the observations footer.
func EvaluationPDF(ev *evaluation.CompleteEvaluation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, translator(fmt.Sprintf("Evaluación #%d", ev.ID)))
	pdf.Ln(12)

	header := [][2]string{
		{"Empleado", fmt.Sprintf("%s (%s)", ev.EmployeeName, ev.EmployeeID)},
		{"Categoría", ev.CategoryName},
		{"Área", ev.Area},
		{"Proceso", ev.ProcessName},
		{"Fecha", ev.CreatedAt.Format("2006-01-02")},
		{"Evaluador", ev.Evaluator},
		{"Estado", ev.Status},
		{"Porcentaje original", fmt.Sprintf("%.2f%%", ev.PercentageOriginal)},
		{"Porcentaje actual", fmt.Sprintf("%.2f%%", ev.PercentageCurrent)},
	}
	for _, row := range header {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(48, 7, translator(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(142, 7, translator(row[1]), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	headers := []string{"Pregunta", "Respuesta", "Peso", "Comentarios"}
	widths := []float64{100, 24, 16, 50}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, translator(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, a := range ev.Answers {
		pdf.CellFormat(widths[0], 7, translator(a.Title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, translator(answerLabel(a)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%.2f", a.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, translator(a.Comments), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	if ev.Observations != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 7, translator("Observaciones"))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(190, 6, translator(ev.Observations), "1", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func answerLabel(a evaluation.AnswerDetail) string {
	if a.NotApplicable {
		return "N/A"
	}
	if a.Response {
		return "Sí"
	}
	return "No"
}
