package reports

import (
	"testing"
	"time"

	"compeval/internal/domain/evaluation"
)

func TestBuildSummaryRows(t *testing.T) {
	created := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	evaluations := []evaluationFacts{
		{ID: 1, CreatedAt: created, Evaluator: "Ana Gómez (SUPERVISOR)", EmployeeName: "Carlos Ruiz", EmployeeArea: "Planta", Category: "Soldadura", CategoryArea: "Planta"},
	}
	answers := []answerFacts{
		{EvaluationID: 1, Response: true, Weight: 2, ProcessName: "Corte"},
		{EvaluationID: 1, Response: false, Weight: 1, ProcessName: "Corte"},
		{EvaluationID: 1, Response: true, NotApplicable: true, Weight: 5},
	}

	rows := buildSummaryRows(evaluations, answers)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].Percentage != 66.67 {
		t.Fatalf("expected weighted 66.67, got %v", rows[0].Percentage)
	}
	if rows[0].Process != "Corte" {
		t.Fatalf("expected process Corte, got %q", rows[0].Process)
	}
}

func TestBuildSummaryRowsDefaults(t *testing.T) {
	evaluations := []evaluationFacts{{ID: 2, CategoryArea: "Calidad"}}

	rows := buildSummaryRows(evaluations, nil)
	row := rows[0]
	if row.Evaluator != "Sin evaluador" || row.EmployeeName != "Sin empleado" || row.Category != "Sin categoría" {
		t.Fatalf("missing placeholders: %+v", row)
	}
	if row.Area != "Calidad" {
		t.Fatalf("expected category area fallback, got %q", row.Area)
	}
	if row.Percentage != 0 {
		t.Fatalf("expected 0 for evaluation without answers, got %v", row.Percentage)
	}
}

func TestBuildSummaryRowsAreaLastResort(t *testing.T) {
	rows := buildSummaryRows([]evaluationFacts{{ID: 3}}, nil)
	if rows[0].Area != "N/A" {
		t.Fatalf("expected N/A area, got %q", rows[0].Area)
	}
}

func TestEvaluationPDFProducesDocument(t *testing.T) {
	complete := &evaluation.CompleteEvaluation{
		ID:                 1,
		EmployeeID:         "EMP001",
		EmployeeName:       "Carlos Ruiz",
		CategoryName:       "Seguridad industrial",
		Area:               "Planta",
		CreatedAt:          time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
		Evaluator:          "Jorge Salas",
		Status:             "aprobada",
		PercentageOriginal: 66.67,
		PercentageCurrent:  100,
		Observations:       "Revisión completada sin hallazgos.",
		Answers: []evaluation.AnswerDetail{
			{QuestionID: 1, Response: true, Title: "¿Utiliza casco y guantes?", Weight: 2},
			{QuestionID: 2, Response: false, Title: "¿Reporta condiciones inseguras?", Weight: 1, Comments: "Pendiente de refuerzo"},
			{QuestionID: 3, NotApplicable: true, Title: "¿Conoce las rutas de evacuación?", Weight: 1},
		},
	}

	data, err := EvaluationPDF(complete)
	if err != nil {
		t.Fatalf("pdf render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty pdf output")
	}
}

func TestAnswerLabel(t *testing.T) {
	cases := []struct {
		answer evaluation.AnswerDetail
		want   string
	}{
		{evaluation.AnswerDetail{Response: true}, "Sí"},
		{evaluation.AnswerDetail{Response: false}, "No"},
		{evaluation.AnswerDetail{Response: true, NotApplicable: true}, "N/A"},
	}
	for _, tc := range cases {
		if got := answerLabel(tc.answer); got != tc.want {
			t.Fatalf("label for %+v: expected %q, got %q", tc.answer, tc.want, got)
		}
	}
}

func TestSummaryPDFProducesDocument(t *testing.T) {
	rows := buildSummaryRows([]evaluationFacts{{ID: 1, CreatedAt: time.Now(), EmployeeName: "Carlos Ruiz"}}, nil)
	data, err := SummaryPDF(rows)
	if err != nil {
		t.Fatalf("pdf render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty pdf output")
	}
}
