package urlutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/path", "https://example.com/path"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://Shop.Example.COM/path?q=1", "shop.example.com"},
		{"example.com", "example.com"},
		{"http://123.45.67.89/login", "123.45.67.89"},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.in); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRootDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chat.zalo.me", "zalo.me"},
		{"shop.example.com.vn", "example.com.vn"},
		{"example.com", "example.com"},
		{"deep.sub.example.co.uk", "example.co.uk"},
		{"localhost", "localhost"},
	}

	for _, tt := range tests {
		if got := RootDomain(tt.in); got != tt.want {
			t.Errorf("RootDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid https", "https://example.com", false},
		{"schemeless", "example.com/path", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"ftp scheme", "ftp://example.com", true},
		{"localhost", "http://localhost:8080", true},
		{"loopback", "http://127.0.0.1/admin", true},
		{"private range", "http://192.168.1.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTooLong(t *testing.T) {
	long := "https://example.com/"
	for len(long) <= maxURLLength {
		long += "aaaaaaaaaa"
	}
	if _, err := Validate(long); err == nil {
		t.Error("expected error for oversized url")
	}
}
