package models

import "strconv"

// Alternative: (question_id, value) là duy nhất, được đảm bảo bằng unique index.
type Alternative struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuestionID uint   `gorm:"column:question_id;not null;uniqueIndex:idx_alternatives_question_value" json:"question_id"`
	Value      string `gorm:"column:value;size:255;not null;uniqueIndex:idx_alternatives_question_value" json:"value"`
}

func (Alternative) TableName() string {
	return "alternatives"
}

// IDString is the id as clients submit it in a response.
func (a Alternative) IDString() string {
	return strconv.FormatUint(uint64(a.ID), 10)
}
