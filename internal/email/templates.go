package email

import (
	"fmt"
	"html"
	"strings"
)

// GratitudeEmailHTML returns the HTML body for a gratitude notification.
// The message text and display phrase are user-influenced; both are
// HTML-escaped before interpolation.
func GratitudeEmailHTML(message string, displayPhrase string, appName string) string {
	safeMessage := strings.ReplaceAll(html.EscapeString(message), "\n", "<br>")
	safePhrase := html.EscapeString(displayPhrase)
	safeAppName := html.EscapeString(appName)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Someone is grateful for you</title>
</head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;background-color:#faf7f2;">
<table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#faf7f2;padding:40px 0;">
<tr><td align="center">
<table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;box-shadow:0 2px 8px rgba(0,0,0,0.08);">
  <tr><td style="padding:32px 40px 24px;text-align:center;">
    <h1 style="margin:0;font-size:24px;color:#2e2a24;">Someone is grateful for you</h1>
  </td></tr>
  <tr><td style="padding:0 40px;">
    <p style="margin:0 0 24px;font-size:15px;color:#5a5348;line-height:1.6;">
      %s wanted you to know:
    </p>
  </td></tr>
  <tr><td style="padding:0 40px;">
    <div style="background-color:#fdf6ea;border-left:4px solid #d4a548;border-radius:4px;padding:20px 24px;margin:0 0 24px;">
      <p style="margin:0;font-size:16px;color:#2e2a24;line-height:1.7;font-style:italic;">%s</p>
    </div>
  </td></tr>
  <tr><td style="padding:0 40px 32px;">
    <p style="margin:0;font-size:13px;color:#9a917f;line-height:1.5;">
      This message was sent anonymously. We don't know who sent it either, and there is no way to reply.
    </p>
  </td></tr>
  <tr><td style="padding:16px 40px;background-color:#f9f6f0;border-top:1px solid #efe9dd;">
    <p style="margin:0;font-size:12px;color:#b5ab97;text-align:center;">
      &copy; %s &mdash; This is an automated message, please do not reply.
    </p>
  </td></tr>
</table>
</td></tr>
</table>
</body>
</html>`, safePhrase, safeMessage, safeAppName)
}

// GratitudeEmailText returns the plain-text body for a gratitude notification.
func GratitudeEmailText(message string, displayPhrase string, appName string) string {
	return fmt.Sprintf(`Someone is grateful for you

%s wanted you to know:

%s

This message was sent anonymously. We don't know who sent it either, and there is no way to reply.

- %s`, displayPhrase, message, appName)
}
