package domain

import "testing"

func TestNewProfile(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		email   string
		wantErr bool
	}{
		{"valid", "Ada", "ada@example.com", false},
		{"padded", "  Ada ", " ada@example.com ", false},
		{"missing name", "", "ada@example.com", true},
		{"missing email", "Ada", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProfile(tt.user, tt.email)
			if tt.wantErr {
				if err != ErrEmptyProfileField {
					t.Errorf("NewProfile() error = %v, want ErrEmptyProfileField", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProfile() unexpected error = %v", err)
			}
			if p.Name != "Ada" || p.Email != "ada@example.com" {
				t.Errorf("NewProfile() = %+v, want trimmed fields", p)
			}
		})
	}
}

func TestProfile_Greeting(t *testing.T) {
	var p *Profile
	if p.Greeting() != DefaultGreeting {
		t.Errorf("nil profile greeting = %q", p.Greeting())
	}
	if (&Profile{Name: "Ada"}).Greeting() != "Ada" {
		t.Error("greeting should use the profile name")
	}
}
