package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/gestorpi/gestor-api/config"
)

// Service sends transactional mail. Callers treat failures as best-effort:
// a broken SMTP relay must not fail the business operation.
type Service interface {
	SendWelcome(to, name string) error
}

type mailService struct {
	cfg config.SMTPConfig
}

func NewService(cfg config.SMTPConfig) Service {
	return &mailService{cfg: cfg}
}

func (s *mailService) SendWelcome(to, name string) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Bem-vindo ao Gestor")
	m.SetBody("text/plain", fmt.Sprintf(
		"Olá %s,\n\nSeu acesso ao Gestor foi criado. Use seu login e senha para entrar.\n", name))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
