package service

import (
	"context"

	"github.com/sippke/notification-service/internal/entity"
	"github.com/sippke/notification-service/pkg/mailer"

	"github.com/sirupsen/logrus"
)

const verificationSubject = "Akun Anda di SiPPKe sudah terverifikasi"

const verificationBody = `
    <p>Halo,</p>

    <p>Akun Anda di Sistem Pencegahan dan Penanganan Kekerasan (SiPPKe) sudah berhasil diverifikasi.</p>

    <p>Sekarang Anda bisa login dan mulai menggunakan layanan kami.</p>

    <p>Kalau ada pertanyaan atau butuh bantuan, jangan ragu untuk menghubungi kami.</p>

    <p>Terima kasih sudah menggunakan SiPPKe!</p>

    <p>Salam,<br/>
    Tim SiPPKe</p>
  `

// Sender is the mail-relay collaborator behind the email service.
type Sender interface {
	Send(to, subject, htmlBody string) (*mailer.SendInfo, error)
}

type emailService struct {
	mailer Sender
}

func NewEmailService(m Sender) EmailService {
	return &emailService{mailer: m}
}

// SendVerificationEmail is fire-and-forget: one attempt, failure reported
// to the caller, no retry.
func (s *emailService) SendVerificationEmail(ctx context.Context, email string) (*mailer.SendInfo, error) {
	if email == "" {
		return nil, entity.ErrInvalidInput
	}

	info, err := s.mailer.Send(email, verificationSubject, verificationBody)
	if err != nil {
		logrus.Errorf("Failed to send verification email to %s: %v", email, err)
		return nil, err
	}

	logrus.Infof("Verification email sent to %s", email)
	return info, nil
}
