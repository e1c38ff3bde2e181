package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<h2>Booking Confirmed</h2>
<p>Dear {{.FirstName}},</p>
<p>Your cleaning appointment has been confirmed.</p>
<h3>Appointment Details</h3>
<ul>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
  <li><strong>Address:</strong> {{.Address}}</li>
  <li><strong>Add-ons:</strong> {{.AddOns}}</li>
</ul>
{{if .InviteURL}}<p><a href="{{.InviteURL}}">Add this appointment to your calendar</a></p>
{{end}}<p>Thank you for choosing {{.Company}}.</p>
<p>Best Regards,<br>{{.Company}} Team</p>
`))

var cancellationTemplate = template.Must(template.New("cancellation").Parse(`<h2>Booking Canceled</h2>
<p>Dear {{.FirstName}},</p>
<p>Your cleaning appointment on {{.Date}} at {{.Time}} has been canceled.</p>
<p>Best Regards,<br>{{.Company}} Team</p>
`))

type emailView struct {
	Company   string
	FirstName string
	Date      string
	Time      string
	Address   string
	AddOns    string
	InviteURL string
}

func (v emailView) text() string {
	return fmt.Sprintf("Booking confirmed for %s at %s, %s. Add-ons: %s.", v.Date, v.Time, v.Address, v.AddOns)
}

func joinAddOns(addOns []string) string {
	if len(addOns) == 0 {
		return "None"
	}

	return strings.Join(addOns, ", ")
}

func render(tmpl *template.Template, view emailView) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}
