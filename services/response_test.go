package services

import (
	"testing"
	"time"

	"github.com/vnkhanh/survey-manager/models"
)

func TestSubmitResponseComplete(t *testing.T) {
	f := newFixture(t)

	resp, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), f.b2.IDString()}, false)
	if err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	if resp.NumberOfQuestions != 2 || resp.NumberOfAnswers != 2 || !resp.Completed {
		t.Fatalf("response = %+v, want 2/2 completed", resp)
	}
	if len(resp.Answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(resp.Answers))
	}
	if resp.Answers[0].QuestionID != f.q1.ID || resp.Answers[0].AlternativeID != f.a1.ID {
		t.Fatalf("answer[0] = %+v, want q1/a1", resp.Answers[0])
	}
	if resp.Answers[1].QuestionID != f.q2.ID || resp.Answers[1].AlternativeID != f.b2.ID {
		t.Fatalf("answer[1] = %+v, want q2/b2", resp.Answers[1])
	}

	var stored []models.Answer
	if err := f.db.Where("survey_response_id = ?", resp.ID).Find(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored answers = %d, want 2", len(stored))
	}
}

func TestSubmitResponseInvalidAlternative(t *testing.T) {
	f := newFixture(t)

	_, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), "999"}, false)
	assertErrorIs(t, err, ErrInvalidAlternative)
	if KindOf(err) != KindInvalidInput {
		t.Fatalf("kind = %v, want invalid_input", KindOf(err))
	}

	if n := f.count(t, &models.SurveyResponse{}); n != 0 {
		t.Fatalf("responses = %d, want 0", n)
	}
	if n := f.count(t, &models.Answer{}); n != 0 {
		t.Fatalf("answers = %d, want 0", n)
	}
}

func TestSubmitResponseIncompleteAllowed(t *testing.T) {
	f := newFixture(t)

	resp, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), "999"}, true)
	if err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	if resp.NumberOfQuestions != 2 || resp.NumberOfAnswers != 1 || resp.Completed {
		t.Fatalf("response = %+v, want 1/2 not completed", resp)
	}
	if n := f.count(t, &models.Answer{}); n != 1 {
		t.Fatalf("answers = %d, want 1", n)
	}

	var a models.Answer
	if err := f.db.First(&a).Error; err != nil {
		t.Fatal(err)
	}
	if a.QuestionID != f.q1.ID {
		t.Fatalf("answer question = %d, want %d", a.QuestionID, f.q1.ID)
	}
}

func TestSubmitResponseAllSkipped(t *testing.T) {
	f := newFixture(t)

	resp, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID, []string{"", "x"}, true)
	if err != nil {
		t.Fatalf("SubmitResponse returned error: %v", err)
	}
	if resp.NumberOfAnswers != 0 || resp.Completed {
		t.Fatalf("response = %+v, want 0 answers, not completed", resp)
	}
	if n := f.count(t, &models.SurveyResponse{}); n != 1 {
		t.Fatalf("responses = %d, want 1", n)
	}
}

func TestSubmitResponseCrossQuestionAlternative(t *testing.T) {
	f := newFixture(t)

	// b1 thuộc Q2 nên không hợp lệ ở vị trí Q1
	_, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.b1.IDString(), f.a1.IDString()}, false)
	assertErrorIs(t, err, ErrInvalidAlternative)
	if n := f.count(t, &models.SurveyResponse{}); n != 0 {
		t.Fatalf("responses = %d, want 0", n)
	}
}

func TestSubmitResponseNotReleased(t *testing.T) {
	f := newFixture(t)
	released := false
	if _, err := f.catalog.UpdateSurvey(f.ctx, f.owner.ID, f.survey.ID, SurveyPatch{Released: &released}); err != nil {
		t.Fatal(err)
	}

	selections := [][]string{
		{f.a1.IDString(), f.b1.IDString()},
		{"999", "999"},
		{f.a1.IDString()},
	}
	for _, sel := range selections {
		_, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID, sel, false)
		assertErrorIs(t, err, ErrSurveyNotReleased)
		if KindOf(err) != KindInvalidState {
			t.Fatalf("kind = %v, want invalid_state", KindOf(err))
		}
	}
	if n := f.count(t, &models.SurveyResponse{}); n != 0 {
		t.Fatalf("responses = %d, want 0", n)
	}
}

func TestSubmitResponseClosed(t *testing.T) {
	f := newFixture(t)
	f.responses.now = func() time.Time { return time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC) }

	_, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), f.b1.IDString()}, false)
	assertErrorIs(t, err, ErrSurveyClosed)
	if errorsIsCode(err, ErrSurveyNotReleased) {
		t.Fatal("closed and not released must be distinguishable")
	}
}

func TestSubmitResponseClosingDateBoundary(t *testing.T) {
	f := newFixture(t)
	closing := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)

	f.responses.now = func() time.Time { return closing }
	_, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), f.b1.IDString()}, false)
	assertErrorIs(t, err, ErrSurveyClosed)

	f.responses.now = func() time.Time { return closing.Add(-time.Second) }
	if _, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), f.b1.IDString()}, false); err != nil {
		t.Fatalf("SubmitResponse just before closing returned error: %v", err)
	}
}

func TestSubmitResponseNoClosingDate(t *testing.T) {
	f := newFixture(t)
	patch := SurveyPatch{}
	patch.ClosingDate.Set = true // null → xoá ngày đóng
	if _, err := f.catalog.UpdateSurvey(f.ctx, f.owner.ID, f.survey.ID, patch); err != nil {
		t.Fatal(err)
	}
	f.responses.now = func() time.Time { return time.Date(9000, 1, 1, 0, 0, 0, 0, time.UTC) }

	if _, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), f.b1.IDString()}, false); err != nil {
		t.Fatalf("survey without closing date should accept responses: %v", err)
	}
}

func TestSubmitResponseCountMismatch(t *testing.T) {
	f := newFixture(t)

	for _, sel := range [][]string{
		{},
		{f.a1.IDString()},
		{f.a1.IDString(), f.b1.IDString(), f.b2.IDString()},
	} {
		_, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID, sel, true)
		assertErrorIs(t, err, ErrAnswerCountMismatch)
	}
	if n := f.count(t, &models.SurveyResponse{}); n != 0 {
		t.Fatalf("responses = %d, want 0", n)
	}
	if n := f.count(t, &models.Answer{}); n != 0 {
		t.Fatalf("answers = %d, want 0", n)
	}
}

func TestSubmitResponseTwice(t *testing.T) {
	f := newFixture(t)
	sel := []string{f.a1.IDString(), f.b1.IDString()}

	if _, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID, sel, false); err != nil {
		t.Fatalf("first SubmitResponse: %v", err)
	}

	for _, second := range [][]string{sel, {"999"}, {f.a2.IDString(), f.b2.IDString()}} {
		_, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID, second, true)
		assertErrorIs(t, err, ErrAlreadyResponded)
		if KindOf(err) != KindConflict {
			t.Fatalf("kind = %v, want conflict", KindOf(err))
		}
	}
	if n := f.count(t, &models.SurveyResponse{}); n != 1 {
		t.Fatalf("responses = %d, want 1", n)
	}
	if n := f.count(t, &models.Answer{}); n != 2 {
		t.Fatalf("answers = %d, want 2", n)
	}
}

func TestSubmitResponseMissingUserOrSurvey(t *testing.T) {
	f := newFixture(t)
	sel := []string{f.a1.IDString(), f.b1.IDString()}

	_, err := f.responses.SubmitResponse(f.ctx, 9999, f.survey.ID, sel, false)
	assertErrorIs(t, err, ErrUserNotFound)

	_, err = f.responses.SubmitResponse(f.ctx, f.respondent.ID, 9999, sel, false)
	assertErrorIs(t, err, ErrSurveyNotFound)
}

func TestResponseUniqueIndex(t *testing.T) {
	f := newFixture(t)

	first := models.SurveyResponse{UserID: f.respondent.ID, SurveyID: f.survey.ID, NumberOfQuestions: 2}
	if err := f.db.Create(&first).Error; err != nil {
		t.Fatal(err)
	}
	dup := models.SurveyResponse{UserID: f.respondent.ID, SurveyID: f.survey.ID, NumberOfQuestions: 2}
	err := f.db.Create(&dup).Error
	if err == nil || !isUniqueViolation(err) {
		t.Fatalf("duplicate (user, survey) insert error = %v, want unique violation", err)
	}
}

func TestCompletedMatchesCounts(t *testing.T) {
	f := newFixture(t)
	other := createUser(t, f.db, "other@example.com")

	if _, err := f.responses.SubmitResponse(f.ctx, f.respondent.ID, f.survey.ID,
		[]string{f.a1.IDString(), f.b1.IDString()}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := f.responses.SubmitResponse(f.ctx, other.ID, f.survey.ID,
		[]string{"0", f.b1.IDString()}, true); err != nil {
		t.Fatal(err)
	}

	var all []models.SurveyResponse
	if err := f.db.Find(&all).Error; err != nil {
		t.Fatal(err)
	}
	for _, r := range all {
		if r.Completed != (r.NumberOfAnswers == r.NumberOfQuestions) {
			t.Fatalf("response %d completed=%v with %d/%d", r.ID, r.Completed, r.NumberOfAnswers, r.NumberOfQuestions)
		}
	}
}

func TestResolveSelections(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Alternatives: []models.Alternative{{ID: 10}, {ID: 11}}},
		{ID: 2, Alternatives: []models.Alternative{{ID: 20}}},
	}

	answers, err := resolveSelections(questions, []string{"11", "20"}, false)
	if err != nil {
		t.Fatalf("resolveSelections returned error: %v", err)
	}
	if len(answers) != 2 || answers[0].AlternativeID != 11 || answers[1].AlternativeID != 20 {
		t.Fatalf("answers = %+v", answers)
	}

	if _, err := resolveSelections(questions, []string{"20", "20"}, false); err != ErrInvalidAlternative {
		t.Fatalf("cross-question id error = %v, want ErrInvalidAlternative", err)
	}

	answers, err = resolveSelections(questions, []string{"20", "20"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 1 || answers[0].QuestionID != 2 {
		t.Fatalf("answers = %+v, want only question 2", answers)
	}
}

func errorsIsCode(err error, target *Error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == target.Code
}
