package evaluation

import (
	"context"
	"errors"
	"testing"
	"time"

	"compeval/internal/domain/history"
)

// fakeStore keeps the aggregate in memory with the same atomicity contract
// as the SQL store: a failed multi-row write leaves nothing behind.
type fakeStore struct {
	employees  map[string]bool
	categories map[int]bool
	weights    map[int]float64

	nextID      int
	evaluations map[int]*Evaluation
	answers     map[int][]StoredAnswer
	entries     map[int][]history.Entry

	clock          time.Time
	failInsertLate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   map[string]bool{"EMP001": true},
		categories:  map[int]bool{1: true},
		weights:     map[int]float64{1: 1, 2: 1, 3: 1},
		nextID:      1,
		evaluations: map[int]*Evaluation{},
		answers:     map[int][]StoredAnswer{},
		entries:     map[int][]history.Entry{},
		clock:       time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeStore) EmployeeExists(_ context.Context, id string) (bool, error) {
	return f.employees[id], nil
}

func (f *fakeStore) CategoryExists(_ context.Context, id int) (bool, error) {
	return f.categories[id], nil
}

func (f *fakeStore) QuestionWeights(_ context.Context, ids []int) (map[int]float64, error) {
	weights := map[int]float64{}
	for _, id := range ids {
		if w, ok := f.weights[id]; ok {
			weights[id] = w
		}
	}
	return weights, nil
}

func (f *fakeStore) InsertEvaluation(_ context.Context, data NewEvaluation) (int, error) {
	if f.failInsertLate {
		// Simulates a failure after the evaluation insert but before the
		// answers land: the transaction rolls back, nothing is stored.
		return 0, errors.New("simulated write failure")
	}
	id := f.nextID
	f.nextID++
	f.evaluations[id] = &Evaluation{
		ID:                 id,
		EmployeeID:         data.EmployeeID,
		CategoryID:         data.CategoryID,
		CreatedAt:          f.tick(),
		Evaluator:          data.Evaluator,
		Observations:       data.Observations,
		Status:             StatusPending,
		OriginalPercentage: data.Percentage,
	}
	seen := map[int]bool{}
	for _, a := range data.Answers {
		if seen[a.QuestionID] {
			delete(f.evaluations, id)
			f.answers[id] = nil
			return 0, ErrDuplicateAnswer
		}
		seen[a.QuestionID] = true
		notApplicable := false
		if a.NotApplicable != nil {
			notApplicable = *a.NotApplicable
		}
		f.answers[id] = append(f.answers[id], StoredAnswer{
			QuestionID:    a.QuestionID,
			Response:      a.Response,
			NotApplicable: notApplicable,
			Comments:      a.Comments,
		})
	}
	f.appendEntry(id, data.Percentage, data.RecordedBy, true)
	return id, nil
}

func (f *fakeStore) appendEntry(id int, percentage float64, by string, original bool) {
	f.entries[id] = append(f.entries[id], history.Entry{
		ID:           len(f.entries[id]) + 1,
		EvaluationID: id,
		Percentage:   percentage,
		ModifiedAt:   f.tick(),
		ModifiedBy:   by,
		IsOriginal:   original,
	})
}

func (f *fakeStore) Answers(_ context.Context, id int) ([]StoredAnswer, error) {
	if _, ok := f.evaluations[id]; !ok {
		return nil, ErrEvaluationNotFound
	}
	answers := make([]StoredAnswer, len(f.answers[id]))
	copy(answers, f.answers[id])
	for i := range answers {
		weight, ok := f.weights[answers[i].QuestionID]
		if !ok {
			weight = 1
		}
		answers[i].Weight = weight
	}
	return answers, nil
}

func (f *fakeStore) UpdateAnswers(_ context.Context, id int, changes []AnswerChange, percentage float64, evaluator string) error {
	if _, ok := f.evaluations[id]; !ok {
		return ErrEvaluationNotFound
	}
	for _, change := range changes {
		for i := range f.answers[id] {
			if f.answers[id][i].QuestionID != change.QuestionID {
				continue
			}
			f.answers[id][i].Response = change.Response
			if change.NotApplicable != nil {
				f.answers[id][i].NotApplicable = *change.NotApplicable
			}
		}
	}
	f.appendEntry(id, percentage, evaluator, false)
	return nil
}

func (f *fakeStore) Finalize(_ context.Context, id int, percentage float64) error {
	ev, ok := f.evaluations[id]
	if !ok {
		return ErrEvaluationNotFound
	}
	for _, e := range f.entries[id] {
		if e.IsOriginal {
			return ErrAlreadyFinalized
		}
	}
	if ev.OriginalPercentage == 0 {
		ev.OriginalPercentage = percentage
	}
	f.appendEntry(id, percentage, OriginalRecordedBy, true)
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id int, status, evaluator string) error {
	ev, ok := f.evaluations[id]
	if !ok {
		return ErrEvaluationNotFound
	}
	ev.Status = status
	if evaluator != "" {
		ev.Evaluator = evaluator
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int) error {
	if _, ok := f.evaluations[id]; !ok {
		return ErrEvaluationNotFound
	}
	delete(f.evaluations, id)
	delete(f.answers, id)
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) Complete(_ context.Context, id int) (*CompleteEvaluation, error) {
	ev, ok := f.evaluations[id]
	if !ok {
		return nil, ErrEvaluationNotFound
	}
	complete := &CompleteEvaluation{
		ID:                 ev.ID,
		EmployeeID:         ev.EmployeeID,
		CategoryID:         ev.CategoryID,
		CreatedAt:          ev.CreatedAt,
		Evaluator:          ev.Evaluator,
		Observations:       ev.Observations,
		Status:             ev.Status,
		PercentageOriginal: ev.OriginalPercentage,
	}
	for _, a := range f.answers[id] {
		weight, ok := f.weights[a.QuestionID]
		if !ok {
			weight = 1
		}
		complete.Answers = append(complete.Answers, AnswerDetail{
			QuestionID:    a.QuestionID,
			Response:      a.Response,
			NotApplicable: a.NotApplicable,
			Weight:        weight,
			Comments:      a.Comments,
		})
	}
	complete.History = append(complete.History, f.entries[id]...)
	return complete, nil
}

func (f *fakeStore) History(_ context.Context, id int) ([]history.Entry, error) {
	return append([]history.Entry(nil), f.entries[id]...), nil
}

func (f *fakeStore) CachedOriginal(_ context.Context, id int) (float64, error) {
	ev, ok := f.evaluations[id]
	if !ok {
		return 0, ErrEvaluationNotFound
	}
	return ev.OriginalPercentage, nil
}

func (f *fakeStore) ListByEmployee(_ context.Context, employeeID string) ([]EmployeeListRow, error) {
	var list []EmployeeListRow
	for _, ev := range f.evaluations {
		if ev.EmployeeID == employeeID {
			list = append(list, EmployeeListRow{ID: ev.ID, CreatedAt: ev.CreatedAt, Status: ev.Status})
		}
	}
	return list, nil
}

func (f *fakeStore) ListAll(_ context.Context, limit, offset int) ([]OverviewRow, error) {
	var list []OverviewRow
	for _, ev := range f.evaluations {
		list = append(list, OverviewRow{ID: ev.ID, CreatedAt: ev.CreatedAt, Status: ev.Status})
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeStore) ListByManager(_ context.Context, _ string) ([]ManagerListRow, error) {
	return nil, nil
}

func createBaseline(t *testing.T, service *Service) int {
	t.Helper()
	id, err := service.CreateWithAnswers(context.Background(), CreateRequest{
		EmployeeID: "EMP001",
		CategoryID: 1,
		Answers: []AnswerInput{
			{QuestionID: 1, Response: true},
			{QuestionID: 2, Response: true},
			{QuestionID: 3, Response: false},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return id
}

func TestCreateWithAnswers(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	complete, err := service.GetComplete(context.Background(), id)
	if err != nil {
		t.Fatalf("get complete failed: %v", err)
	}
	if complete.PercentageOriginal != 66.67 {
		t.Fatalf("expected original 66.67, got %v", complete.PercentageOriginal)
	}
	if complete.PercentageCurrent != 66.67 {
		t.Fatalf("expected current 66.67, got %v", complete.PercentageCurrent)
	}
	if len(complete.History) != 1 || !complete.History[0].IsOriginal {
		t.Fatalf("expected exactly one original history entry, got %+v", complete.History)
	}
	if complete.History[0].ModifiedBy != OriginalRecordedBy {
		t.Fatalf("expected original entry by %q, got %q", OriginalRecordedBy, complete.History[0].ModifiedBy)
	}
	if complete.Evaluator != EvaluatorSelfAssessment {
		t.Fatalf("expected evaluator sentinel, got %q", complete.Evaluator)
	}
	if complete.Status != StatusPending {
		t.Fatalf("expected status %q, got %q", StatusPending, complete.Status)
	}
}

func TestCreateUsesQuestionWeights(t *testing.T) {
	store := newFakeStore()
	store.weights = map[int]float64{1: 2, 2: 1}
	service := NewService(store)

	id, err := service.CreateWithAnswers(context.Background(), CreateRequest{
		EmployeeID: "EMP001",
		CategoryID: 1,
		Answers: []AnswerInput{
			{QuestionID: 1, Response: true},
			{QuestionID: 2, Response: false},
			// Unknown question id: weight defaults to 1.
			{QuestionID: 99, Response: false},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := store.evaluations[id].OriginalPercentage; got != 50 {
		t.Fatalf("expected weighted 2/4 = 50, got %v", got)
	}
}

func TestCreateRejectsUnknownEmployee(t *testing.T) {
	service := NewService(newFakeStore())
	_, err := service.CreateWithAnswers(context.Background(), CreateRequest{
		EmployeeID: "GHOST",
		CategoryID: 1,
		Answers:    []AnswerInput{{QuestionID: 1, Response: true}},
	})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	service := NewService(newFakeStore())
	_, err := service.CreateWithAnswers(context.Background(), CreateRequest{
		EmployeeID: "EMP001",
		CategoryID: 42,
		Answers:    []AnswerInput{{QuestionID: 1, Response: true}},
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateFailureLeavesNothingVisible(t *testing.T) {
	store := newFakeStore()
	store.failInsertLate = true
	service := NewService(store)

	_, err := service.CreateWithAnswers(context.Background(), CreateRequest{
		EmployeeID: "EMP001",
		CategoryID: 1,
		Answers:    []AnswerInput{{QuestionID: 1, Response: true}},
	})
	if err == nil {
		t.Fatalf("expected create to fail")
	}
	if len(store.evaluations) != 0 || len(store.entries) != 0 {
		t.Fatalf("partial write visible after failed create")
	}
	if _, err := service.GetComplete(context.Background(), 1); !errors.Is(err, ErrEvaluationNotFound) {
		t.Fatalf("expected not found after rollback, got %v", err)
	}
}

func TestApplyEvaluatorChangesRescoresFullSet(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	result, err := service.ApplyEvaluatorChanges(context.Background(), id, []AnswerChange{
		{QuestionID: 3, Response: true},
	}, "Ana Gómez (SUPERVISOR)")
	if err != nil {
		t.Fatalf("amend failed: %v", err)
	}
	if result.NewPercentage != 100 {
		t.Fatalf("expected 100.00, got %v", result.NewPercentage)
	}
	if result.ApplicableCount != 3 || result.UpdatedCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	complete, err := service.GetComplete(context.Background(), id)
	if err != nil {
		t.Fatalf("get complete failed: %v", err)
	}
	if len(complete.History) != 2 {
		t.Fatalf("expected two history entries, got %d", len(complete.History))
	}
	if complete.PercentageOriginal != 66.67 {
		t.Fatalf("original changed after amendment: %v", complete.PercentageOriginal)
	}
	if complete.PercentageCurrent != 100 {
		t.Fatalf("expected current 100, got %v", complete.PercentageCurrent)
	}
}

func TestApplyEvaluatorChangesNotApplicable(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	notApplicable := true
	result, err := service.ApplyEvaluatorChanges(context.Background(), id, []AnswerChange{
		{QuestionID: 1, Response: true, NotApplicable: &notApplicable},
	}, "Ana Gómez (SUPERVISOR)")
	if err != nil {
		t.Fatalf("amend failed: %v", err)
	}
	if result.NewPercentage != 50 {
		t.Fatalf("expected 50.00 with question 1 excluded, got %v", result.NewPercentage)
	}
	if result.ApplicableCount != 2 {
		t.Fatalf("expected 2 applicable answers, got %d", result.ApplicableCount)
	}
}

func TestApplyEvaluatorChangesKeepsStoredFlag(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	notApplicable := true
	if _, err := service.ApplyEvaluatorChanges(context.Background(), id, []AnswerChange{
		{QuestionID: 1, Response: true, NotApplicable: &notApplicable},
	}, "Ana Gómez (SUPERVISOR)"); err != nil {
		t.Fatalf("first amend failed: %v", err)
	}

	// Second amendment touches question 1 without the flag: the stored
	// not-applicable value must survive.
	result, err := service.ApplyEvaluatorChanges(context.Background(), id, []AnswerChange{
		{QuestionID: 1, Response: false},
	}, "Ana Gómez (SUPERVISOR)")
	if err != nil {
		t.Fatalf("second amend failed: %v", err)
	}
	if !store.answers[id][0].NotApplicable {
		t.Fatalf("not-applicable flag was reset by a change that omitted it")
	}
	if result.ApplicableCount != 2 {
		t.Fatalf("expected question 1 still excluded, got %d applicable", result.ApplicableCount)
	}
}

func TestApplyEvaluatorChangesRequiresEvaluator(t *testing.T) {
	service := NewService(newFakeStore())
	_, err := service.ApplyEvaluatorChanges(context.Background(), 1, nil, "")
	if !errors.Is(err, ErrEvaluatorRequired) {
		t.Fatalf("expected ErrEvaluatorRequired, got %v", err)
	}
}

func TestGetCompleteIsIdempotent(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	first, err := service.GetComplete(context.Background(), id)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := service.GetComplete(context.Background(), id)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if first.PercentageOriginal != second.PercentageOriginal ||
		first.PercentageCurrent != second.PercentageCurrent ||
		len(first.History) != len(second.History) {
		t.Fatalf("repeated reads diverged: %+v vs %+v", first, second)
	}
}

func TestHistoryOrderingMatchesCurrent(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	for _, change := range []AnswerChange{
		{QuestionID: 3, Response: true},
		{QuestionID: 2, Response: false},
	} {
		if _, err := service.ApplyEvaluatorChanges(context.Background(), id, []AnswerChange{change}, "Luis Pérez (EVALUADOR)"); err != nil {
			t.Fatalf("amend failed: %v", err)
		}
	}

	complete, err := service.GetComplete(context.Background(), id)
	if err != nil {
		t.Fatalf("get complete failed: %v", err)
	}
	for i := 1; i < len(complete.History); i++ {
		if complete.History[i].ModifiedAt.Before(complete.History[i-1].ModifiedAt) {
			t.Fatalf("history entries out of order at %d", i)
		}
	}
	last := complete.History[len(complete.History)-1]
	if last.Percentage != complete.PercentageCurrent {
		t.Fatalf("last entry %v does not match current %v", last.Percentage, complete.PercentageCurrent)
	}
}

func TestSetStatusRecordsEvaluator(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	if err := service.SetStatus(context.Background(), id, StatusInReview, "Ana Gómez (SUPERVISOR)"); err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if store.evaluations[id].Status != StatusInReview {
		t.Fatalf("status not updated: %q", store.evaluations[id].Status)
	}
	if store.evaluations[id].Evaluator != "Ana Gómez (SUPERVISOR)" {
		t.Fatalf("evaluator not recorded: %q", store.evaluations[id].Evaluator)
	}

	// Any status may be re-entered.
	if err := service.SetStatus(context.Background(), id, StatusPending, ""); err != nil {
		t.Fatalf("re-entering pendiente failed: %v", err)
	}
	if err := service.SetStatus(context.Background(), id, "archivada", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestDeleteRemovesAggregate(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)
	id := createBaseline(t, service)

	if _, err := service.ApplyEvaluatorChanges(context.Background(), id, []AnswerChange{
		{QuestionID: 3, Response: true},
	}, "Ana Gómez (SUPERVISOR)"); err != nil {
		t.Fatalf("amend failed: %v", err)
	}

	if err := service.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetComplete(context.Background(), id); !errors.Is(err, ErrEvaluationNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if len(store.answers[id]) != 0 || len(store.entries[id]) != 0 {
		t.Fatalf("answers or history survived the delete")
	}
}

func TestFinalizeUsesUnweightedCalculation(t *testing.T) {
	store := newFakeStore()
	// Weights would skew the result if the finalize path consulted them.
	store.weights = map[int]float64{1: 5, 2: 1, 3: 1}
	service := NewService(store)

	id := store.nextID
	store.nextID++
	store.evaluations[id] = &Evaluation{ID: id, EmployeeID: "EMP001", Status: StatusPending}

	result, err := service.Finalize(context.Background(), id, []FinalizeAnswer{
		{QuestionID: 1, Response: true},
		{QuestionID: 2, Response: true},
		{QuestionID: 3, Response: false},
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.Percentage != 66.67 {
		t.Fatalf("expected unweighted 66.67, got %v", result.Percentage)
	}
	if store.evaluations[id].OriginalPercentage != 66.67 {
		t.Fatalf("cached original not set: %v", store.evaluations[id].OriginalPercentage)
	}

	if _, err := service.Finalize(context.Background(), id, []FinalizeAnswer{{QuestionID: 1, Response: true}}); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
	}
}

func TestPercentageSummaryFallsBackToCached(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	// An evaluation from before the ledger existed: cached column only.
	id := store.nextID
	store.nextID++
	store.evaluations[id] = &Evaluation{ID: id, EmployeeID: "EMP001", OriginalPercentage: 75.5}

	summary, err := service.PercentageSummary(context.Background(), id)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Original != 75.5 || summary.Current != 75.5 || summary.HasHistory {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
