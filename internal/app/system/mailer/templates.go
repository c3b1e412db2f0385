// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ApprovalEmailData holds data for the account-approved email.
type ApprovalEmailData struct {
	SiteName string
	FullName string
	LoginURL string
}

// BuildApprovalEmail tells a registrant their account is now active.
func BuildApprovalEmail(data ApprovalEmailData) Email {
	var text bytes.Buffer
	fmt.Fprintf(&text, "Hello %s,\n\n", data.FullName)
	fmt.Fprintf(&text, "Your %s account has been approved. You can now sign in:\n", data.SiteName)
	text.WriteString(data.LoginURL + "\n")

	return Email{
		Subject:  fmt.Sprintf("Your %s account is approved", data.SiteName),
		TextBody: text.String(),
		HTMLBody: render(approvalHTML, data),
	}
}

// ResetEmailData holds data for the password reset email.
type ResetEmailData struct {
	SiteName  string
	FullName  string
	ResetURL  string
	ExpiresIn string // e.g., "1 hour"
}

// BuildResetEmail carries the one-time password reset link.
func BuildResetEmail(data ResetEmailData) Email {
	var text bytes.Buffer
	fmt.Fprintf(&text, "Hello %s,\n\n", data.FullName)
	text.WriteString("Use this link to choose a new password:\n")
	text.WriteString(data.ResetURL + "\n\n")
	fmt.Fprintf(&text, "The link expires in %s.\n\n", data.ExpiresIn)
	text.WriteString("If you did not ask for this, you can ignore this email.\n")

	return Email{
		Subject:  fmt.Sprintf("Reset your %s password", data.SiteName),
		TextBody: text.String(),
		HTMLBody: render(resetHTML, data),
	}
}

var (
	approvalHTML = template.Must(template.New("approval").Parse(layoutOpen + `
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hello {{.FullName}},</p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">Your {{.SiteName}} account has been approved.</p>
              <a href="{{.LoginURL}}" style="display: inline-block; padding: 12px 28px; background-color: #0f766e; color: #ffffff; text-decoration: none; border-radius: 6px;">Sign in</a>
` + layoutClose))

	resetHTML = template.Must(template.New("reset").Parse(layoutOpen + `
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hello {{.FullName}},</p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">Click below to choose a new password.</p>
              <a href="{{.ResetURL}}" style="display: inline-block; padding: 12px 28px; background-color: #0f766e; color: #ffffff; text-decoration: none; border-radius: 6px;">Reset password</a>
              <p style="margin: 24px 0 0; font-size: 13px; color: #9ca3af;">The link expires in {{.ExpiresIn}}. If you did not ask for this, ignore this email.</p>
` + layoutClose))
)

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.String()
}

const layoutOpen = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.SiteName}}</title></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr><td style="padding: 24px 32px; border-bottom: 1px solid #e5e7eb;"><h1 style="margin: 0; font-size: 22px; color: #0f766e;">{{.SiteName}}</h1></td></tr>
          <tr>
            <td style="padding: 32px;">`

const layoutClose = `            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
