package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// sendEmail delivers a multipart plain+HTML email. When SMTP is not
// configured it logs a mock send instead, so local/dev runs never fail on
// missing mail credentials.
func sendEmail(recipientEmail, subject, plainBody, htmlBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%s", recipientEmail, subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	boundary := "----=_RESORT_EMAIL_BOUNDARY"

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary))
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(plainBody)
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return smtp.SendMail(addr, auth, smtpUser, to, []byte(msg.String()))
}

func safeLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
}

// SendBookingConfirmationEmail is sent right after a room booking is created.
func SendBookingConfirmationEmail(recipientEmail, guestName, bookingRef, roomTypeName, checkIn, checkOut string, total float64) error {
	guestName = safeLine(guestName)
	bookingRef = safeLine(bookingRef)

	subject := fmt.Sprintf("Booking Confirmation - %s", bookingRef)

	plainBody := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for booking with us. Your reservation is confirmed.\n\n"+
			"Reference: %s\nRoom type: %s\nCheck-in: %s\nCheck-out: %s\nTotal: %.2f\n\n"+
			"Your room number will be assigned by our front desk on arrival day.\n",
		guestName, bookingRef, roomTypeName, checkIn, checkOut, total,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
<h2>Booking confirmed</h2>
<p>Hi %s,</p>
<p>Thank you for booking with us. Your reservation details:</p>
<table cellpadding="6">
<tr><td><b>Reference</b></td><td>%s</td></tr>
<tr><td><b>Room type</b></td><td>%s</td></tr>
<tr><td><b>Check-in</b></td><td>%s</td></tr>
<tr><td><b>Check-out</b></td><td>%s</td></tr>
<tr><td><b>Total</b></td><td>%.2f</td></tr>
</table>
<p>Your room number will be assigned by our front desk on arrival day.</p>
</div>
</body>
</html>`, guestName, bookingRef, roomTypeName, checkIn, checkOut, total)

	return sendEmail(recipientEmail, subject, plainBody, htmlBody)
}

// SendRoomAssignedEmail is sent when the front desk assigns a physical room.
func SendRoomAssignedEmail(recipientEmail, guestName, bookingRef, roomNumber string) error {
	guestName = safeLine(guestName)
	bookingRef = safeLine(bookingRef)
	roomNumber = safeLine(roomNumber)

	subject := fmt.Sprintf("Your room is ready - %s", bookingRef)

	plainBody := fmt.Sprintf(
		"Hi %s,\n\nYour room for booking %s has been assigned: Room %s.\nSee you soon!\n",
		guestName, bookingRef, roomNumber,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
<p>Hi %s,</p>
<p>Your room for booking <b>%s</b> has been assigned:</p>
<p style="font-size:24px;"><b>Room %s</b></p>
<p>See you soon!</p>
</div>
</body>
</html>`, guestName, bookingRef, roomNumber)

	return sendEmail(recipientEmail, subject, plainBody, htmlBody)
}

// SendTourBookingEmail is sent right after a tour booking is created.
func SendTourBookingEmail(recipientEmail, guestName, bookingRef, tourName, tourDate string, pax int, total float64) error {
	guestName = safeLine(guestName)
	bookingRef = safeLine(bookingRef)

	subject := fmt.Sprintf("Tour Booking Confirmation - %s", bookingRef)

	plainBody := fmt.Sprintf(
		"Hi %s,\n\nYour tour booking is confirmed.\n\nReference: %s\nTour: %s\nDate: %s\nPax: %d\nTotal: %.2f\n",
		guestName, bookingRef, tourName, tourDate, pax, total,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
<h2>Tour booking confirmed</h2>
<p>Hi %s,</p>
<table cellpadding="6">
<tr><td><b>Reference</b></td><td>%s</td></tr>
<tr><td><b>Tour</b></td><td>%s</td></tr>
<tr><td><b>Date</b></td><td>%s</td></tr>
<tr><td><b>Pax</b></td><td>%d</td></tr>
<tr><td><b>Total</b></td><td>%.2f</td></tr>
</table>
</div>
</body>
</html>`, guestName, bookingRef, tourName, tourDate, pax, total)

	return sendEmail(recipientEmail, subject, plainBody, htmlBody)
}

// SendCancellationEmail confirms a booking cancellation / refund note.
func SendCancellationEmail(recipientEmail, guestName, bookingRef string, refunded bool) error {
	guestName = safeLine(guestName)
	bookingRef = safeLine(bookingRef)

	subject := fmt.Sprintf("Booking Cancelled - %s", bookingRef)

	refundLine := "No payment was recorded for this booking."
	if refunded {
		refundLine = "Your payment will be refunded through the original payment method."
	}

	plainBody := fmt.Sprintf(
		"Hi %s,\n\nYour booking %s has been cancelled.\n%s\n",
		guestName, bookingRef, refundLine,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
<p>Hi %s,</p>
<p>Your booking <b>%s</b> has been cancelled.</p>
<p>%s</p>
</div>
</body>
</html>`, guestName, bookingRef, refundLine)

	return sendEmail(recipientEmail, subject, plainBody, htmlBody)
}

// SendVerificationCodeEmail delivers a 6-digit code for registration
// confirmation or password reset.
func SendVerificationCodeEmail(recipientEmail, code, purpose string) error {
	code = safeLine(code)

	subject := "Your verification code"
	if purpose == "reset" {
		subject = "Your password reset code"
	}

	plainBody := fmt.Sprintf(
		"Your verification code is: %s\n\nThe code expires in 15 minutes. If you did not request it, ignore this email.\n",
		code,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
<div style="max-width:640px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
<p>Your verification code is:</p>
<p style="font-size:28px;letter-spacing:4px;"><b>%s</b></p>
<p>The code expires in 15 minutes. If you did not request it, ignore this email.</p>
</div>
</body>
</html>`, code)

	return sendEmail(recipientEmail, subject, plainBody, htmlBody)
}
