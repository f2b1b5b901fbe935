package notify

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailerFormatsMessage(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", "587", "portal@example.com", "pw")

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Send(context.Background(), Message{To: "asha@example.com", Subject: "Hello", Body: "line1\nline2"})
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com:587", gotAddr)
	require.Equal(t, "portal@example.com", gotFrom)
	require.Equal(t, []string{"asha@example.com"}, gotTo)
	require.Contains(t, string(gotMsg), "Subject: Hello\r\n")
	require.True(t, strings.HasSuffix(string(gotMsg), "line1\r\nline2"))
}

func TestSMTPMailerWrapsErrors(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", "587", "portal@example.com", "pw")
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay down")
	}
	err := m.Send(context.Background(), Message{To: "x@example.com"})
	require.ErrorContains(t, err, "relay down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, m.Send(ctx, Message{To: "x@example.com"}), context.Canceled)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))
	require.NoError(t, m.Send(context.Background(), Message{To: "a@example.com", Subject: "s"}))
	require.Contains(t, buf.String(), `"to":"a@example.com"`)
}

func TestSendBestEffortSwallowsErrors(t *testing.T) {
	called := false
	SendBestEffort(context.Background(), SendFunc(func(context.Context, Message) error {
		called = true
		return errors.New("boom")
	}), Message{To: "a@example.com"})
	require.True(t, called)

	SendBestEffort(context.Background(), nil, Message{})
}

func TestMessages(t *testing.T) {
	u := &users.User{Email: "asha@example.com", OTP: "123456"}
	otp := OTPMessage(u, 10*time.Minute)
	require.Equal(t, "asha@example.com", otp.To)
	require.Contains(t, otp.Body, "123456")
	require.Contains(t, otp.Body, "10 minutes")

	a := &applications.Application{
		FirstName: "Asha", LastName: "Verma", Email: "asha@example.com",
		CollegeName: "MNIT", Course: "B.Tech", YearOfStudy: "3", Status: applications.StatusShortlisted,
	}
	submitted := ApplicationSubmittedMessage(a)
	require.Contains(t, submitted.Body, "Name: Asha Verma")
	require.Contains(t, StatusUpdatedMessage(a).Body, "updated to: Shortlisted")
}
