// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
)

// PasswordResetEmailData contains the data for a password reset email.
type PasswordResetEmailData struct {
	AppName   string
	ResetURL  string
	ExpiryMin int
}

// PasswordResetEmail generates both plain text and HTML versions of a
// password reset email.
func PasswordResetEmail(data PasswordResetEmailData) (textBody, htmlBody string) {
	textBody = "Sie haben eine Passwort-Zurücksetzung für Ihr " + data.AppName + "-Konto angefordert.\n\n" +
		"Klicken Sie auf den folgenden Link, um ein neues Passwort zu vergeben:\n\n" +
		data.ResetURL + "\n\n" +
		"Der Link ist " + itoa(data.ExpiryMin) + " Minuten gültig.\n\n" +
		"Wenn Sie diese Anfrage nicht gestellt haben, können Sie diese E-Mail ignorieren."

	var buf bytes.Buffer
	passwordResetHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// PasswordChangedEmailData contains the data for a password changed
// confirmation email.
type PasswordChangedEmailData struct {
	AppName  string
	LoginURL string
}

// PasswordChangedEmail generates both plain text and HTML versions of a
// password changed confirmation email.
func PasswordChangedEmail(data PasswordChangedEmailData) (textBody, htmlBody string) {
	textBody = "Das Passwort Ihres " + data.AppName + "-Kontos wurde geändert.\n\n" +
		"Wenn Sie diese Änderung vorgenommen haben, können Sie diese E-Mail ignorieren.\n\n" +
		"Wenn NICHT, wurde Ihr Konto möglicherweise kompromittiert. " +
		"Bitte setzen Sie Ihr Passwort umgehend zurück:\n" + data.LoginURL

	var buf bytes.Buffer
	passwordChangedHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}

var passwordResetHTMLTmpl = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Passwort zurücksetzen</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.AppName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">Passwort zurücksetzen</h2>
              <p style="margin: 0 0 24px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Sie haben eine Passwort-Zurücksetzung für Ihr Konto angefordert. Klicken Sie auf den Button, um ein neues Passwort zu vergeben.
              </p>
              <!-- Button -->
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 8px 0 24px 0;">
                    <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 32px; background-color: #b76e79; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600; border-radius: 6px;">Passwort zurücksetzen</a>
                  </td>
                </tr>
              </table>
              <p style="margin: 0 0 16px 0; font-size: 14px; line-height: 1.6; color: #71717a;">
                Der Link ist <strong>{{.ExpiryMin}} Minuten</strong> gültig.
              </p>
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #71717a;">
                Wenn Sie diese Anfrage nicht gestellt haben, können Sie diese E-Mail ignorieren. Ihr Passwort bleibt unverändert.
              </p>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0 0 8px 0; font-size: 12px; color: #a1a1aa; text-align: center;">
                Falls der Button nicht funktioniert, kopieren Sie diesen Link in Ihren Browser:
              </p>
              <p style="margin: 0; font-size: 12px; color: #b76e79; text-align: center; word-break: break-all;">
                {{.ResetURL}}
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var passwordChangedHTMLTmpl = template.Must(template.New("password_changed").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Passwort geändert</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.AppName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b; text-align: center;">Passwort geändert</h2>
              <p style="margin: 0 0 24px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Das Passwort Ihres {{.AppName}}-Kontos wurde erfolgreich geändert.
              </p>
              <p style="margin: 0 0 24px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                <strong>Wenn Sie diese Änderung vorgenommen haben</strong>, können Sie diese E-Mail ignorieren.
              </p>
              <div style="padding: 16px; background-color: #fef2f2; border-radius: 6px; border-left: 4px solid #ef4444; margin-bottom: 24px;">
                <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #991b1b;">
                  <strong>Wenn NICHT</strong>, wurde Ihr Konto möglicherweise kompromittiert. Bitte setzen Sie Ihr Passwort umgehend zurück.
                </p>
              </div>
              <!-- Button -->
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 0 0 24px 0;">
                    <a href="{{.LoginURL}}" style="display: inline-block; padding: 14px 32px; background-color: #b76e79; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600; border-radius: 6px;">Zur Anmeldung</a>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #a1a1aa; text-align: center;">
                Dies ist eine automatische Sicherheitsbenachrichtigung. Bitte antworten Sie nicht auf diese E-Mail.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))
