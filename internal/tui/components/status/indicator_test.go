package status

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestAuthRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		auth Auth
		want string
	}{
		{name: "checking", auth: Auth{}, want: "checking..."},
		{name: "authenticated", auth: Auth{Checked: true, Authenticated: true}, want: "authenticated"},
		{name: "signed out", auth: Auth{Checked: true}, want: "not authenticated"},
		{name: "check failed", auth: Auth{Failed: true}, want: "unknown"},
		{name: "failure wins over a stale answer", auth: Auth{Checked: true, Failed: true}, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.auth.Render(); !strings.HasSuffix(ansi.Strip(got), "● "+tt.want) {
				t.Errorf("Render() = %q, want label %q", got, tt.want)
			}
		})
	}
}
