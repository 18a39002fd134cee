package models

type Question struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID uint   `gorm:"column:survey_id;not null;index" json:"survey_id"`
	Text     string `gorm:"column:text;type:text;not null" json:"text"`

	Alternatives []Alternative `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"alternatives"`
}

func (Question) TableName() string {
	return "questions"
}
