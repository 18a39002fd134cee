package models

import "time"

type Survey struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"column:name;size:255;not null" json:"name"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Released    bool       `gorm:"column:released;not null;default:false" json:"released"`
	ClosingDate *time.Time `gorm:"column:closing_date" json:"closing_date"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UserID      uint       `gorm:"column:user_id;not null;index" json:"user_id"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	// Quan hệ: thứ tự câu hỏi = thứ tự tạo (id tăng dần)
	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Survey) TableName() string {
	return "surveys"
}

// IsClosedAt reports whether the closing date has been reached at t.
// A survey without a closing date never closes.
func (s *Survey) IsClosedAt(t time.Time) bool {
	return s.ClosingDate != nil && !t.Before(*s.ClosingDate)
}
