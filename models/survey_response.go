package models

import "time"

// SurveyResponse: mỗi (user, survey) chỉ có tối đa một phản hồi.
type SurveyResponse struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NumberOfQuestions int       `gorm:"column:number_of_questions;not null" json:"number_of_questions"`
	NumberOfAnswers   int       `gorm:"column:number_of_answers;not null;default:0" json:"number_of_answers"`
	Completed         bool      `gorm:"column:completed;not null;default:false" json:"completed"`
	UserID            uint      `gorm:"column:user_id;not null;uniqueIndex:idx_survey_responses_user_survey" json:"user_id"`
	SurveyID          uint      `gorm:"column:survey_id;not null;uniqueIndex:idx_survey_responses_user_survey;index" json:"survey_id"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Survey *Survey `gorm:"foreignKey:SurveyID;references:ID;constraint:OnDelete:CASCADE" json:"survey,omitempty"`

	Answers []Answer `gorm:"foreignKey:SurveyResponseID;constraint:OnDelete:CASCADE" json:"answers"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}
