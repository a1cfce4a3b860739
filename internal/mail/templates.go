package mail

import "fmt"

// Шаблоны писем на иврите. Тексты соответствуют уведомлениям,
// которые рассылает консоль модерации и форма подачи убежища.

const signature = "\n\nבברכה,\nצוות מוגנגיש"

// Темы писем.
const (
	SubjectShelterApproved      = "הדיווח על המקלט אושר"
	SubjectShelterRejected      = "הדיווח על המקלט נדחה"
	SubjectVerificationApproved = "בקשת האימות שלך אושרה"
	SubjectVerificationRejected = "בקשת האימות שלך נדחתה"
	SubjectReviewApproved       = "הדירוג שלך פורסם"
	SubjectReviewRejected       = "הדירוג שלך לא פורסם"
	SubjectReportApproved       = "הדיווח שלך התקבל"
	SubjectReportRejected       = "הדיווח שלך נדחה"
	SubjectNewShelterPending    = "דיווח חדש על מקלט ממתין לבדיקה"
)

// ShelterApprovedBody — письмо автору после публикации убежища.
func ShelterApprovedBody(address string) string {
	return fmt.Sprintf("שלום,\n\nתודה על הדיווח שלך על מקלט בכתובת %q.\nהדיווח אושר ופורסם במערכת.%s", address, signature)
}

// ShelterRejectedBody — письмо автору после отклонения убежища.
func ShelterRejectedBody(address, reason string) string {
	return fmt.Sprintf("שלום,\n\nלצערנו, הדיווח שלך על מקלט בכתובת %q לא אושר לפרסום.\n\nסיבת הדחייה: %s\n\nבאפשרותך להגיש דיווח חדש עם מידע מדויק יותר.%s", address, reason, signature)
}

// VerificationApprovedBody — письмо координатору после одобрения заявки.
func VerificationApprovedBody(fullName string) string {
	return fmt.Sprintf("שלום %s,\n\nשמחים לבשר לך שבקשת האימות שלך כרכז/ת נגישות אושרה!\nמעכשיו תוכל/י להוסיף ולנהל ארגונים ומקלטים במערכת.%s", fullName, signature)
}

// VerificationRejectedBody — письмо после отклонения заявки координатора.
func VerificationRejectedBody(fullName, reason string) string {
	return fmt.Sprintf("שלום %s,\n\nלצערנו, בקשת האימות שלך כרכז/ת נגישות נדחתה.\n\nסיבת הדחייה: %s\n\nבאפשרותך להגיש בקשה חדשה עם המסמכים המתאימים.%s", fullName, reason, signature)
}

// ReviewApprovedBody — письмо автору опубликованного отзыва.
func ReviewApprovedBody() string {
	return fmt.Sprintf("שלום,\n\nהדירוג שלך למקלט פורסם באתר.\nתודה על תרומתך למאגר המידע שלנו!%s", signature)
}

// ReviewRejectedBody — письмо автору отклонённого отзыва.
func ReviewRejectedBody(reason string) string {
	return fmt.Sprintf("שלום,\n\nהדירוג שהוספת למקלט לא פורסם מהסיבה הבאה:\n%s\n\nבאפשרותך להגיש דירוג חדש.%s", reason, signature)
}

// ReportApprovedBody — письмо автору принятой жалобы.
func ReportApprovedBody() string {
	return fmt.Sprintf("שלום,\n\nתודה על הדיווח שלך. הדיווח התקבל ואנו מטפלים בו.%s", signature)
}

// ReportRejectedBody — письмо автору отклонённой жалобы.
func ReportRejectedBody(reason string) string {
	return fmt.Sprintf("שלום,\n\nתודה על הדיווח שלך. לאחר בדיקה, הדיווח לא אושר מהסיבה הבאה:\n%s%s", reason, signature)
}

// NewShelterPendingBody — уведомление администратору о новом публичном
// убежище, ожидающем модерации.
func NewShelterPendingBody(address, shelterType, submittedBy string) string {
	if submittedBy == "" {
		submittedBy = "משתמש לא מזוהה"
	}
	return fmt.Sprintf("התקבל דיווח חדש על מקלט\n\nכתובת: %s\nסוג מקלט: %s\nדווח על ידי: %s\n\nאנא בדקו את הדיווח בממשק הניהול.", address, shelterType, submittedBy)
}
