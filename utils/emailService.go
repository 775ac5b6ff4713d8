package utils

import (
	"certgen/config"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"
)

// SendCertificateEmail delivers the issued certificate PDF to the holder.
func SendCertificateEmail(to, name, refNo, verifyURL string, pdf []byte) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	subject := "Your SURE Trust Certificate - " + refNo

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Congratulations, %s!</h2>
					<p style="font-size: 16px; color: #555555;">Your certificate has been issued. Your reference number is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 28px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #555555;">Anyone can verify its authenticity at:</p>
					<p style="text-align: center;"><a href="%s">%s</a></p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">The certificate PDF is attached to this email.</p>
				</div>
			</body>
		</html>
	`, name, refNo, verifyURL, verifyURL)

	const boundary = "certificate-mail-boundary"

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: SURE Trust Certificates <%s>\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary))

	msg.WriteString("--" + boundary + "\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	msg.WriteString("--" + boundary + "\r\n")
	msg.WriteString("Content-Type: application/pdf\r\n")
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n\r\n", refNo+".pdf"))

	encoded := base64.StdEncoding.EncodeToString(pdf)
	// Wrap the base64 body at 76 characters per RFC 2045.
	for len(encoded) > 76 {
		msg.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	msg.WriteString(encoded + "\r\n")
	msg.WriteString("--" + boundary + "--\r\n")

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, []byte(msg.String()))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}

	fmt.Println("Certificate email sent successfully to", to)
	return nil
}
