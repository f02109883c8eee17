// Package mailer delivers guest QR codes. Only a logging implementation exists.
package mailer

import (
	"bytes"
	"context"
	"html/template"

	log "github.com/sirupsen/logrus"
)

// QRCode is one attendee's pass, with Image holding a PNG data URL.
type QRCode struct {
	Name  string
	Token string
	URL   string
	Image string
}

type Mailer interface {
	SendQRCodes(ctx context.Context, to string, codes []QRCode) error
}

var emailTemplate = template.Must(template.New("qr-email").Funcs(template.FuncMap{
	// data: URLs are generated by us, never user input.
	"safeURL": func(s string) template.URL { return template.URL(s) },
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; }
      .qr-container { margin: 20px 0; text-align: center; }
      .qr-image { max-width: 300px; }
    </style>
  </head>
  <body>
    <h1>Your Event Access QR Codes</h1>
    <p>Please find your QR codes below. Save them for event entry.</p>
    {{- range . }}
    <div class="qr-container">
      <h3>{{ .Name }}</h3>
      <img src="{{ .Image | safeURL }}" alt="QR Code for {{ .Name }}" class="qr-image" />
      <p><a href="{{ .URL }}">{{ .URL }}</a></p>
    </div>
    {{- end }}
  </body>
</html>
`))

// RenderHTML builds the email body listing every pass.
func RenderHTML(codes []QRCode) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, codes); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LogMailer renders the email and logs it instead of sending.
type LogMailer struct {
	logger *log.Entry
}

func NewLogMailer() *LogMailer {
	return &LogMailer{logger: log.WithField("component", "mailer")}
}

func (m *LogMailer) SendQRCodes(_ context.Context, to string, codes []QRCode) error {
	body, err := RenderHTML(codes)
	if err != nil {
		return err
	}

	m.logger.WithFields(log.Fields{
		"to":        to,
		"codes":     len(codes),
		"bodyBytes": len(body),
	}).Info("Sending QR codes")
	return nil
}
