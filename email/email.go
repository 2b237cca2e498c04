package email

import (
	"strconv"

	"restaurant-api/config"
	"restaurant-api/logger"

	"gopkg.in/gomail.v2"
)

var log = logger.New("email")

// Sender delivers a single HTML message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Default is the sender used by SendAsync. Tests swap it out. Left nil, the
// SMTP sender is built on first use, after main has loaded the env file.
var Default Sender

func activeSender() Sender {
	if s := Default; s != nil {
		return s
	}
	return NewSMTPSenderFromEnv()
}

type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSenderFromEnv() *SMTPSender {
	port, err := strconv.Atoi(config.GetEnv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	username := config.GetEnv("EMAIL_USER", "deblissrestaurant@gmail.com")
	return &SMTPSender{
		host:     config.GetEnv("SMTP_HOST", "smtp.gmail.com"),
		port:     port,
		username: username,
		password: config.GetEnv("EMAIL_PASS", ""),
		from:     "\"DE BLISS\" <" + username + ">",
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return d.DialAndSend(m)
}

// SendAsync fires the message off in the background. Delivery failures are
// logged and swallowed; a notification never fails the operation that
// triggered it.
func SendAsync(to, subject, htmlBody string) {
	go func() {
		if err := activeSender().Send(to, subject, htmlBody); err != nil {
			log.Error("failed to send email", logger.String("to", to), logger.String("subject", subject), logger.Err(err))
			return
		}
		log.Info("email sent", logger.String("to", to), logger.String("subject", subject))
	}()
}
