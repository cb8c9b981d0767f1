package training

import (
	"fmt"
	"math/rand"

	"github.com/AL-ANWARTECH/phishing-detector/internal/core"
)

// SampleData returns the built-in labeled corpus used to bootstrap the
// classifier when no externally trained model is available
func SampleData() []core.LabeledExample {
	return []core.LabeledExample{
		{
			Features: &core.EmailFeatures{
				Subject:      "Meeting Reminder",
				Body:         "Hi, just a reminder about our meeting tomorrow at 2 PM. Looking forward to seeing you there.",
				FromAddress:  "colleague@company.com",
				ToAddress:    "user@company.com",
				SenderDomain: "company.com",
				Links:        []string{},
			},
			Label: 0,
		},
		{
			Features: &core.EmailFeatures{
				Subject:         "Project Update",
				Body:            "Here is the weekly project update. Please review the attached document.",
				FromAddress:     "manager@company.com",
				ToAddress:       "team@company.com",
				SenderDomain:    "company.com",
				Links:           []string{},
				AttachmentCount: 1,
			},
			Label: 0,
		},
		{
			Features: &core.EmailFeatures{
				Subject:      "Welcome to Our Newsletter",
				Body:         "Thank you for subscribing to our newsletter. Here are this week's updates.",
				FromAddress:  "newsletter@company.com",
				ToAddress:    "subscriber@user.com",
				SenderDomain: "company.com",
				Links:        []string{"http://company.com/news"},
			},
			Label: 0,
		},
		{
			Features: &core.EmailFeatures{
				Subject:      "URGENT: Account Security Alert",
				Body:         "Dear Customer, Your account has been suspended. Please click here to verify: http://fake-bank-login.com/verify Click now to secure your account!",
				FromAddress:  "fake-bank@example.com",
				ToAddress:    "victim@gmail.com",
				ReplyTo:      "security@fake-bank.com",
				SenderDomain: "example.com",
				ReplyDomain:  "fake-bank.com",
				Links:        []string{"http://fake-bank-login.com/verify"},
			},
			Label: 1,
		},
		{
			Features: &core.EmailFeatures{
				Subject:      "Verify Your PayPal Account Now!",
				Body:         "Your PayPal account will be suspended in 24 hours. Click here to verify immediately: http://paypal-verify-fake.com",
				FromAddress:  "paypal-security@fake.com",
				ToAddress:    "user@paypal.com",
				ReplyTo:      "verify@paypal-fake.com",
				SenderDomain: "fake.com",
				ReplyDomain:  "paypal-fake.com",
				Links:        []string{"http://paypal-verify-fake.com"},
			},
			Label: 1,
		},
		{
			Features: &core.EmailFeatures{
				Subject:      "Password Reset Required - Immediate Action Needed",
				Body:         "Your password has been compromised. Reset it now by clicking: https://secure-login-fake.com/reset",
				FromAddress:  "admin@fake-security.com",
				ToAddress:    "user@company.com",
				SenderDomain: "fake-security.com",
				Links:        []string{"https://secure-login-fake.com/reset"},
			},
			Label: 1,
		},
	}
}

// GenerateData expands the built-in corpus into size examples by varying
// subjects over randomly chosen base samples. Useful for demos and for
// exercising training at a more realistic volume.
func GenerateData(size int, seed int64) []core.LabeledExample {
	base := SampleData()
	rng := rand.New(rand.NewSource(seed))
	generated := make([]core.LabeledExample, 0, size)

	legitimateSubjects := []string{
		"Meeting reminder #%d", "Project update #%d", "Weekly report #%d",
		"Newsletter #%d", "Task assignment #%d",
	}
	phishingSubjects := []string{
		"URGENT: Security Alert #%d", "Verify Account #%d", "Password Reset Required #%d",
		"Account Suspended #%d", "Immediate Action Required #%d",
	}

	for i := 0; i < size; i++ {
		sample := base[rng.Intn(len(base))]

		features := *sample.Features
		if sample.Label == 0 {
			features.Subject = fmt.Sprintf(legitimateSubjects[rng.Intn(len(legitimateSubjects))], i)
		} else {
			features.Subject = fmt.Sprintf(phishingSubjects[rng.Intn(len(phishingSubjects))], i)
		}

		generated = append(generated, core.LabeledExample{Features: &features, Label: sample.Label})
	}

	return generated
}
