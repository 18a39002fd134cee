package services

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-manager/models"
)

type AlternativeResult struct {
	AlternativeID   uint    `json:"alternative_id"`
	AlternativeText string  `json:"alternative_text"`
	NumberOfAnswers int64   `json:"number_of_answers"`
	Percentage      float64 `json:"percentage"`
}

type QuestionResult struct {
	QuestionID           uint                `json:"question_id"`
	QuestionText         string              `json:"question_text"`
	Alternatives         []AlternativeResult `json:"alternatives"`
	TotalNumberOfAnswers int64               `json:"total_number_of_answers"`
}

// ResultsService tổng hợp kết quả từ các câu trả lời đã lưu.
type ResultsService struct {
	db *gorm.DB
}

func NewResultsService(db *gorm.DB) *ResultsService {
	return &ResultsService{db: db}
}

// GetSurveyResults: chỉ chủ survey được xem. Số câu trả lời được đếm theo alternative_id
// trên toàn bộ bảng answers; vì id của alternative không dùng chung giữa các câu hỏi
// nên kết quả tương đương với đếm trong phạm vi survey.
func (s *ResultsService) GetSurveyResults(ctx context.Context, userID, surveyID uint) ([]QuestionResult, error) {
	_, results, err := s.surveyResults(ctx, userID, surveyID)
	return results, err
}

func (s *ResultsService) surveyResults(ctx context.Context, userID, surveyID uint) (*models.Survey, []QuestionResult, error) {
	db := s.db.WithContext(ctx)

	var survey models.Survey
	if err := preloadStructure(db).
		Where("id = ? AND user_id = ?", surveyID, userID).
		First(&survey).Error; err != nil {
		return nil, nil, notFoundOr(err, ErrSurveyNotFound)
	}

	var altIDs []uint
	for _, q := range survey.Questions {
		for _, a := range q.Alternatives {
			altIDs = append(altIDs, a.ID)
		}
	}

	counts := make(map[uint]int64, len(altIDs))
	if len(altIDs) > 0 {
		var rows []struct {
			AlternativeID uint
			Count         int64
		}
		if err := db.Model(&models.Answer{}).
			Select("alternative_id, COUNT(*) AS count").
			Where("alternative_id IN ?", altIDs).
			Group("alternative_id").
			Scan(&rows).Error; err != nil {
			return nil, nil, err
		}
		for _, r := range rows {
			counts[r.AlternativeID] = r.Count
		}
	}

	return &survey, tabulate(survey.Questions, counts), nil
}

// tabulate tính tổng và phần trăm cho từng câu hỏi theo thứ tự đã lưu.
func tabulate(questions []models.Question, counts map[uint]int64) []QuestionResult {
	results := make([]QuestionResult, 0, len(questions))
	for _, q := range questions {
		qr := QuestionResult{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Alternatives: make([]AlternativeResult, 0, len(q.Alternatives)),
		}
		for _, a := range q.Alternatives {
			qr.TotalNumberOfAnswers += counts[a.ID]
		}
		for _, a := range q.Alternatives {
			qr.Alternatives = append(qr.Alternatives, AlternativeResult{
				AlternativeID:   a.ID,
				AlternativeText: a.Value,
				NumberOfAnswers: counts[a.ID],
				Percentage:      percentage(counts[a.ID], qr.TotalNumberOfAnswers),
			})
		}
		results = append(results, qr)
	}
	return results
}

func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	p := float64(count) * 100 / float64(total)
	return math.Round(p*100) / 100
}

// GetUserSurveyResponses: mọi phản hồi của user kèm survey, câu trả lời,
// câu hỏi và lựa chọn của từng câu trả lời.
func (s *ResultsService) GetUserSurveyResponses(ctx context.Context, userID uint) ([]models.SurveyResponse, error) {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}

	responses := []models.SurveyResponse{}
	err := db.
		Where("user_id = ?", userID).
		Preload("Survey").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.id ASC") }).
		Preload("Answers.Question").
		Preload("Answers.Alternative").
		Order("id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}
