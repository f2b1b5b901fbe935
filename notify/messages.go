package notify

import (
	"fmt"
	"time"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/users"
)

func OTPMessage(user *users.User, ttl time.Duration) Message {
	return Message{
		To:      user.Email,
		Subject: "Verify your account",
		Body:    fmt.Sprintf("Your OTP is: %s. It expires in %d minutes.", user.OTP, int(ttl.Minutes())),
	}
}

func ApplicationSubmittedMessage(a *applications.Application) Message {
	return Message{
		To:      a.Email,
		Subject: "Internship Application Submitted Successfully",
		Body: fmt.Sprintf(`Hi %s,

Your internship application has been successfully submitted.

Application Details:
Name: %s
College: %s
Course: %s
Year: %s

We will review your profile and get back to you soon.

Best regards,
Internship Team
`, a.FirstName, a.FullName(), a.CollegeName, a.Course, a.YearOfStudy),
	}
}

func StatusUpdatedMessage(a *applications.Application) Message {
	return Message{
		To:      a.Email,
		Subject: "Application Status Updated",
		Body: fmt.Sprintf(`Hi %s,

Your application status has been updated to: %s

Please check your dashboard for more details.

Best regards,
Internship Team
`, a.FirstName, a.Status),
	}
}
