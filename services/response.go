package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-manager/models"
)

// ResponseService ghi nhận phản hồi của người trả lời cho một survey.
type ResponseService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{db: db, now: time.Now}
}

// SubmitResponse kiểm tra lần lượt các điều kiện (user, survey, chưa trả lời,
// đã phát hành, chưa đóng, đủ số lựa chọn), đối chiếu lựa chọn thứ i với các
// alternative của câu hỏi thứ i, rồi lưu SurveyResponse + Answers trong cùng
// một transaction. Bất kỳ điều kiện nào thất bại thì không có gì được ghi.
func (s *ResponseService) SubmitResponse(ctx context.Context, userID, surveyID uint, selectedAlternativeIDs []string, allowIncomplete bool) (*models.SurveyResponse, error) {
	var response models.SurveyResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. User
		if err := ensureUser(tx, userID); err != nil {
			return err
		}

		// 2. Survey kèm câu hỏi + lựa chọn (một snapshot cấu trúc)
		var survey models.Survey
		if err := preloadStructure(tx).First(&survey, surveyID).Error; err != nil {
			return notFoundOr(err, ErrSurveyNotFound)
		}

		// 3. Mỗi user chỉ một phản hồi cho mỗi survey
		var existing int64
		if err := tx.Model(&models.SurveyResponse{}).
			Where("user_id = ? AND survey_id = ?", userID, survey.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyResponded
		}

		// 4. Đã phát hành
		if !survey.Released {
			return ErrSurveyNotReleased
		}

		// 5. Chưa tới ngày đóng
		if survey.IsClosedAt(s.now()) {
			return ErrSurveyClosed
		}

		// 6. Một lựa chọn cho mỗi câu hỏi, theo đúng thứ tự câu hỏi
		if len(selectedAlternativeIDs) != len(survey.Questions) {
			return ErrAnswerCountMismatch
		}

		answers, err := resolveSelections(survey.Questions, selectedAlternativeIDs, allowIncomplete)
		if err != nil {
			return err
		}

		response = models.SurveyResponse{
			UserID:            userID,
			SurveyID:          survey.ID,
			NumberOfQuestions: len(survey.Questions),
			NumberOfAnswers:   len(answers),
		}
		response.Completed = response.NumberOfAnswers == response.NumberOfQuestions

		if err := tx.Create(&response).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyResponded
			}
			return err
		}

		if len(answers) == 0 {
			response.Answers = []models.Answer{}
			return nil
		}
		for i := range answers {
			answers[i].SurveyResponseID = response.ID
		}
		if err := tx.Create(&answers).Error; err != nil {
			return err
		}
		response.Answers = answers
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// resolveSelections ghép lựa chọn thứ i với câu hỏi thứ i. Id chỉ hợp lệ khi thuộc
// chính câu hỏi đó; id của câu hỏi khác bị coi như không hợp lệ.
func resolveSelections(questions []models.Question, selected []string, allowIncomplete bool) ([]models.Answer, error) {
	answers := make([]models.Answer, 0, len(questions))
	for i, q := range questions {
		alt, ok := findAlternative(q.Alternatives, selected[i])
		if !ok {
			if allowIncomplete {
				continue
			}
			return nil, ErrInvalidAlternative
		}
		answers = append(answers, models.Answer{
			QuestionID:    q.ID,
			AlternativeID: alt.ID,
		})
	}
	return answers, nil
}

func findAlternative(alternatives []models.Alternative, id string) (models.Alternative, bool) {
	for _, a := range alternatives {
		if a.IDString() == id {
			return a, true
		}
	}
	return models.Alternative{}, false
}
