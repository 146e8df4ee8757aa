package smtp

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed template.html
var verificationTemplate string

var tmpl = template.Must(template.New("verification").Parse(verificationTemplate))

// TemplateData carries everything the verification message needs.
type TemplateData struct {
	Code           string
	RecipientEmail string
	TrackingURL    string
	ExpiryMinutes  int
	Year           int
}

// RenderVerificationEmail renders the HTML body for a verification message,
// tracking pixel included.
func RenderVerificationEmail(data TemplateData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return buf.String(), nil
}
