// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// AnnouncementData holds data for the group announcement email.
type AnnouncementData struct {
	SiteName   string
	GroupTitle string
}

// BuildGroupAnnouncement creates the announcement sent to every member of a
// group when an update notification is triggered.
func BuildGroupAnnouncement(data AnnouncementData) Email {
	return Email{
		Subject:  fmt.Sprintf("Update from %s", data.GroupTitle),
		TextBody: buildAnnouncementText(data),
		HTMLBody: buildAnnouncementHTML(data),
	}
}

func buildAnnouncementText(data AnnouncementData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hello members, check for updates in your group %q.\n\n", data.GroupTitle))
	buf.WriteString(fmt.Sprintf("— %s\n", data.SiteName))
	return buf.String()
}

func buildAnnouncementHTML(data AnnouncementData) string {
	tmpl := template.Must(template.New("announcement").Parse(announcementHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const announcementHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Group Update</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <p style="margin: 0; font-size: 16px; color: #111827;">
                Hello members, check for updates in your group <strong>{{.GroupTitle}}</strong>.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
