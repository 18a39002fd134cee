package models

type Answer struct {
	ID               uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyResponseID uint `gorm:"column:survey_response_id;not null;index" json:"survey_response_id"`
	QuestionID       uint `gorm:"column:question_id;not null;index" json:"question_id"`
	AlternativeID    uint `gorm:"column:alternative_id;not null;index" json:"alternative_id"`

	Question    *Question    `gorm:"foreignKey:QuestionID;references:ID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	Alternative *Alternative `gorm:"foreignKey:AlternativeID;references:ID;constraint:OnDelete:CASCADE" json:"alternative,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
