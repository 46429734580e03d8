package email

import (
	"fmt"
	"html"
	"time"
)

const productName = "ProjectHub"

func OTPMessage(to, code string, ttl time.Duration) Message {
	return Message{
		Kind:    KindOTP,
		To:      to,
		Subject: "Your OTP Code for " + productName + " Signup",
		HTML: fmt.Sprintf(
			`<p>Your OTP code to complete signup is:</p><p><strong>%s</strong></p>`+
				`<p>This OTP will expire in %d minutes. If you did not request this, please ignore this email.</p>`,
			code, int(ttl.Minutes()),
		),
	}
}

func InviteMessage(to, subject, link string) Message {
	if subject == "" {
		subject = "You are invited to " + productName + "!"
	}
	return Message{
		Kind:    KindInvite,
		To:      to,
		Subject: subject,
		HTML: fmt.Sprintf(
			`<p>You've been invited to join <strong>%s</strong>.</p><p><a href="%s">Accept Invite</a></p>`+
				`<p>If you didn't expect this email, you can safely ignore it.</p>`,
			productName, html.EscapeString(link),
		),
	}
}

func ReminderMessage(to, name, taskTitle string, due time.Time) Message {
	if name == "" {
		name = "there"
	}
	return Message{
		Kind:    KindReminder,
		To:      to,
		Subject: fmt.Sprintf("Reminder: %q is due tomorrow!", taskTitle),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p><p>Your task <strong>%s</strong> is due on %s.</p>`,
			html.EscapeString(name), html.EscapeString(taskTitle), due.Format("Mon, 02 Jan 2006"),
		),
	}
}
