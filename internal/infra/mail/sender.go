package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var defaultAlertTmpl = template.Must(template.ParseFS(templatesFS, "templates/default_alert.html"))

const defaultFrom = "nao-responda@inadimplencia.local"

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	if from == "" {
		from = defaultFrom
	}
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendDefaultAlert avisa a pessoa de que o CPF consta como inadimplente.
func (s *EmailSender) SendDefaultAlert(to, name string, totalAmount float64, recordsCount int) error {
	m, err := s.BuildDefaultAlert(to, name, totalAmount, recordsCount)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) BuildDefaultAlert(to, name string, totalAmount float64, recordsCount int) (*gomail.Message, error) {
	body, err := RenderDefaultAlert(DefaultAlertData{
		Name:         name,
		TotalAmount:  FormatBRL(totalAmount),
		RecordsCount: recordsCount,
	})
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s, há pendências financeiras no seu CPF", name))
	m.SetBody("text/html", body)
	return m, nil
}

func RenderDefaultAlert(data DefaultAlertData) (string, error) {
	var body bytes.Buffer
	if err := defaultAlertTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

// FormatBRL formata no padrão 1.234,56
func FormatBRL(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
