package mail

import (
	"strings"
	"testing"

	"github.com/ankit/blogd/internal/model"
)

func TestFormatContactBody(t *testing.T) {
	body := formatContactBody(model.ContactMessage{
		Name:    "Alice",
		Email:   "alice@x.com",
		Phone:   "5550100",
		Message: "Loved the latest post.",
	})

	for _, want := range []string{
		"name: Alice",
		"email: alice@x.com",
		"Phone Number: 5550100",
		"Message: Loved the latest post.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("formatContactBody() missing %q in:\n%s", want, body)
		}
	}
}
