package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const welcomeHTML = `<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to {{.AppName}}, {{.Username}}!</h2>
    <p>Your account is ready. Share your first photo and start following
    people to build your feed.</p>
    <p style="color:#888; font-size:12px;">You are receiving this because an
    account was registered with this address.</p>
  </body>
</html>`

var welcomeTpl = template.Must(template.New("welcome").Parse(welcomeHTML))

// Render renders a named template with data, returning subject, text and
// HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err = welcomeTpl.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = fmt.Sprintf("Welcome to %v", data["AppName"])
		text = fmt.Sprintf("Welcome to %v, %v!", data["AppName"], data["Username"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
