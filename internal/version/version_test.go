package version

import "testing"

func TestIsNewer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{name: "same", current: "v1.0.0", latest: "v1.0.0", want: false},
		{name: "patch", current: "v1.0.0", latest: "v1.0.1", want: true},
		{name: "minor beats patch", current: "v1.0.9", latest: "v1.1.0", want: true},
		{name: "major", current: "v1.9.9", latest: "v2.0.0", want: true},
		{name: "older latest", current: "v1.2.0", latest: "v1.1.9", want: false},
		{name: "mixed prefix", current: "1.0.0", latest: "v1.0.1", want: true},
		{name: "prerelease suffix ignored", current: "v1.0.0", latest: "v1.0.0-rc.1", want: false},
		{name: "missing patch", current: "v1.0", latest: "v1.0.1", want: true},
		{name: "devel never outdated", current: "devel", latest: "v9.9.9", want: false},
		{name: "dirty never outdated", current: "v1.0.0+dirty", latest: "v1.0.1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	t.Parallel()

	for v, want := range map[string]bool{
		"":        true,
		"devel":   true,
		"unknown": true,
		"v1.2.3":  false,
	} {
		if got := IsDevelopment(v); got != want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", v, got, want)
		}
	}
}
