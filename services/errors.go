package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind phân loại lỗi nghiệp vụ; tầng HTTP map Kind sang status code.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalidState
	KindInvalidInput
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Error là lỗi có kiểu. Hai Error bằng nhau theo errors.Is khi cùng Code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrUserNotFound        = newError(KindNotFound, "user_not_found", "Người dùng không tồn tại")
	ErrSurveyNotFound      = newError(KindNotFound, "survey_not_found", "Khảo sát không tồn tại")
	ErrQuestionNotFound    = newError(KindNotFound, "question_not_found", "Câu hỏi không tồn tại")
	ErrAlternativeNotFound = newError(KindNotFound, "alternative_not_found", "Lựa chọn không tồn tại")

	ErrAlreadyResponded     = newError(KindConflict, "already_responded", "Bạn đã trả lời khảo sát này")
	ErrDuplicateAlternative = newError(KindConflict, "duplicate_alternative", "Lựa chọn đã tồn tại trong câu hỏi")
	ErrEmailTaken           = newError(KindConflict, "email_taken", "Email đã tồn tại")

	ErrSurveyNotReleased = newError(KindInvalidState, "survey_not_released", "Khảo sát chưa được phát hành")
	ErrSurveyClosed      = newError(KindInvalidState, "survey_closed", "Khảo sát đã đóng")

	ErrAnswerCountMismatch = newError(KindInvalidInput, "answer_count_mismatch", "Số lựa chọn không khớp với số câu hỏi của khảo sát")
	ErrInvalidAlternative  = newError(KindInvalidInput, "invalid_alternative", "Lựa chọn không hợp lệ cho câu hỏi này")
	ErrNothingToUpdate     = newError(KindInvalidInput, "nothing_to_update", "Không có gì để cập nhật")
	ErrInvalidClosingDate  = newError(KindInvalidInput, "invalid_closing_date", "closing_date phải có dạng ngày/tháng/năm")
	ErrUnsupportedFormat   = newError(KindInvalidInput, "unsupported_format", "Định dạng xuất không được hỗ trợ")

	ErrWrongPassword = newError(KindUnauthorized, "wrong_password", "Mật khẩu không đúng")
)

// KindOf trả về Kind của err, 0 nếu err không phải lỗi nghiệp vụ.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// notFoundOr chuyển gorm.ErrRecordNotFound thành lỗi nghiệp vụ tương ứng.
func notFoundOr(err error, notFound *Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// isUniqueViolation: gorm đã dịch lỗi (TranslateError) hoặc Postgres SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
