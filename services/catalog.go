package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-manager/models"
	"github.com/vnkhanh/survey-manager/utils"
)

// CatalogService quản lý cấu trúc khảo sát: survey → question → alternative.
// Mọi thao tác ghi đều kiểm tra chuỗi sở hữu bằng một câu truy vấn join;
// không sở hữu và không tồn tại đều trả về NotFound.
type CatalogService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewCatalogService(db *gorm.DB, loc *time.Location) *CatalogService {
	if loc == nil {
		loc = time.Local
	}
	return &CatalogService{db: db, loc: loc}
}

// SurveyPatch: field nil = không cập nhật. ClosingDate gửi null = xoá ngày đóng.
type SurveyPatch struct {
	Name        *string
	Description *string
	Released    *bool
	ClosingDate utils.NullableString
}

func (p SurveyPatch) empty() bool {
	return p.Name == nil && p.Description == nil && p.Released == nil && !p.ClosingDate.Set
}

func (s *CatalogService) CreateSurvey(ctx context.Context, userID uint, name, description string) (*models.Survey, error) {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}

	survey := models.Survey{
		Name:        name,
		Description: description,
		UserID:      userID,
		Questions:   []models.Question{},
	}
	if err := db.Create(&survey).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *CatalogService) UpdateSurvey(ctx context.Context, userID, surveyID uint, patch SurveyPatch) (*models.Survey, error) {
	if patch.empty() {
		return nil, ErrNothingToUpdate
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Released != nil {
		updates["released"] = *patch.Released
	}
	if patch.ClosingDate.Set {
		if patch.ClosingDate.Value == nil {
			updates["closing_date"] = nil
		} else {
			closing, err := utils.ParseClosingDate(*patch.ClosingDate.Value, s.loc)
			if err != nil {
				return nil, ErrInvalidClosingDate
			}
			updates["closing_date"] = closing
		}
	}

	var survey models.Survey
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned models.Survey
		if err := ownedSurvey(tx, userID, surveyID, &owned); err != nil {
			return err
		}
		if err := tx.Model(&models.Survey{}).Where("id = ?", owned.ID).Updates(updates).Error; err != nil {
			return err
		}
		return preloadStructure(tx).First(&survey, owned.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// DeleteSurvey xoá survey cùng toàn bộ câu hỏi, lựa chọn, phản hồi và câu trả lời.
func (s *CatalogService) DeleteSurvey(ctx context.Context, userID, surveyID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var survey models.Survey
		if err := ownedSurvey(tx, userID, surveyID, &survey); err != nil {
			return err
		}

		questionIDs := func() *gorm.DB {
			return tx.Model(&models.Question{}).Select("id").Where("survey_id = ?", survey.ID)
		}
		if err := tx.Where("question_id IN (?)", questionIDs()).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", survey.ID).Delete(&models.SurveyResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)", questionIDs()).Delete(&models.Alternative{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", survey.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Survey{}, survey.ID).Error
	})
}

func (s *CatalogService) CreateQuestion(ctx context.Context, userID, surveyID uint, text string) (*models.Question, error) {
	var q models.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var survey models.Survey
		if err := ownedSurvey(tx, userID, surveyID, &survey); err != nil {
			return err
		}
		q = models.Question{SurveyID: survey.ID, Text: text, Alternatives: []models.Alternative{}}
		return tx.Create(&q).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, userID, surveyID, questionID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q models.Question
		if err := ownedQuestion(tx, userID, surveyID, questionID, &q); err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&models.Alternative{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, q.ID).Error
	})
}

// CreateAlternative từ chối giá trị trùng trong cùng câu hỏi. Pre-check cho thông báo
// rõ ràng; unique index (question_id, value) chặn trường hợp ghi đồng thời.
func (s *CatalogService) CreateAlternative(ctx context.Context, userID, surveyID, questionID uint, value string) (*models.Alternative, error) {
	var alt models.Alternative
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q models.Question
		if err := ownedQuestion(tx, userID, surveyID, questionID, &q); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Alternative{}).
			Where("question_id = ? AND value = ?", q.ID, value).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateAlternative
		}

		alt = models.Alternative{QuestionID: q.ID, Value: value}
		if err := tx.Create(&alt).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateAlternative
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &alt, nil
}

func (s *CatalogService) DeleteAlternative(ctx context.Context, userID, surveyID, questionID, alternativeID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alt models.Alternative
		err := tx.Model(&models.Alternative{}).
			Joins("JOIN questions ON questions.id = alternatives.question_id").
			Joins("JOIN surveys ON surveys.id = questions.survey_id").
			Where("alternatives.id = ? AND questions.id = ? AND surveys.id = ? AND surveys.user_id = ?",
				alternativeID, questionID, surveyID, userID).
			First(&alt).Error
		if err != nil {
			return notFoundOr(err, ErrAlternativeNotFound)
		}
		if err := tx.Where("alternative_id = ?", alt.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Alternative{}, alt.ID).Error
	})
}

// GetSurvey: cấu trúc đầy đủ của một survey, dùng để hiển thị cho người trả lời.
func (s *CatalogService) GetSurvey(ctx context.Context, surveyID uint) (*models.Survey, error) {
	var survey models.Survey
	if err := preloadStructure(s.db.WithContext(ctx)).First(&survey, surveyID).Error; err != nil {
		return nil, notFoundOr(err, ErrSurveyNotFound)
	}
	return &survey, nil
}

func (s *CatalogService) GetUserSurveys(ctx context.Context, userID uint) ([]models.Survey, error) {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}

	surveys := []models.Survey{}
	if err := preloadStructure(db).Where("user_id = ?", userID).Order("id ASC").Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

func (s *CatalogService) GetAllSurveys(ctx context.Context) ([]models.Survey, error) {
	surveys := []models.Survey{}
	if err := preloadStructure(s.db.WithContext(ctx)).Order("id ASC").Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

// GetUserUnansweredSurveys: tất cả survey trừ những survey user đã có phản hồi.
func (s *CatalogService) GetUserUnansweredSurveys(ctx context.Context, userID uint) ([]models.Survey, error) {
	db := s.db.WithContext(ctx)
	if err := ensureUser(db, userID); err != nil {
		return nil, err
	}

	answered := db.Model(&models.SurveyResponse{}).Select("survey_id").Where("user_id = ?", userID)
	surveys := []models.Survey{}
	if err := preloadStructure(db).
		Where("id NOT IN (?)", answered).
		Order("id ASC").
		Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

/* ========== helpers dùng chung cho các service ========== */

func preloadStructure(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id ASC") }).
		Preload("Questions.Alternatives", func(db *gorm.DB) *gorm.DB { return db.Order("alternatives.id ASC") })
}

func ensureUser(db *gorm.DB, userID uint) error {
	var u models.User
	if err := db.Select("id").First(&u, userID).Error; err != nil {
		return notFoundOr(err, ErrUserNotFound)
	}
	return nil
}

func ownedSurvey(db *gorm.DB, userID, surveyID uint, out *models.Survey) error {
	if err := db.Where("id = ? AND user_id = ?", surveyID, userID).First(out).Error; err != nil {
		return notFoundOr(err, ErrSurveyNotFound)
	}
	return nil
}

func ownedQuestion(db *gorm.DB, userID, surveyID, questionID uint, out *models.Question) error {
	err := db.Model(&models.Question{}).
		Joins("JOIN surveys ON surveys.id = questions.survey_id").
		Where("questions.id = ? AND surveys.id = ? AND surveys.user_id = ?", questionID, surveyID, userID).
		First(out).Error
	if err != nil {
		return notFoundOr(err, ErrQuestionNotFound)
	}
	return nil
}
