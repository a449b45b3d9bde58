package mail

type DefaultAlertData struct {
	Name         string
	TotalAmount  string
	RecordsCount int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
