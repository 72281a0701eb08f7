package email

// Email - одно исходящее письмо
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

// ApplicationStatusData - данные письма о результате рассмотрения заявки
type ApplicationStatusData struct {
	RecipientName string
	JobTitle      string
	Company       string
	Status        string
	Link          string
}
