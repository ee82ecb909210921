package google

import (
	"strings"
	"testing"
)

func TestTokenFileForAccount(t *testing.T) {
	tests := []struct {
		name     string
		account  string
		wantFile string
	}{
		{
			name:     "default account",
			account:  "default",
			wantFile: "google.token",
		},
		{
			name:     "empty account falls back to default file",
			account:  "",
			wantFile: "google.token",
		},
		{
			name:     "named account",
			account:  "work",
			wantFile: "google-work.token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenFileForAccount(tt.account)
			if !strings.HasSuffix(got, tt.wantFile) {
				t.Errorf("tokenFileForAccount(%q) = %q, want suffix %q", tt.account, got, tt.wantFile)
			}
			if !strings.Contains(got, cacheDirName) {
				t.Errorf("tokenFileForAccount(%q) = %q, not under %s cache dir", tt.account, got, cacheDirName)
			}
		})
	}
}

func TestHasTokenForAccount_EmptyAccount(t *testing.T) {
	if HasTokenForAccount("") {
		t.Error("expected false for empty account name")
	}
}

func TestGetAuthURLForAccount(t *testing.T) {
	url := GetAuthURLForAccount("default")
	if !strings.Contains(url, "state-default") {
		t.Errorf("auth URL %q missing per-account state", url)
	}
	if !strings.Contains(url, "access_type=offline") {
		t.Errorf("auth URL %q missing offline access type", url)
	}
}
