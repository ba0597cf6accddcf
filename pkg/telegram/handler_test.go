package telegram

import "testing"

func TestIsStartCommand(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"/start", true},
		{"/start@jossbot", true},
		{"/start now", true},
		{"/started", false},
		{"start", false},
		{"https://tiktok.com/x", false},
	}
	for _, tt := range tests {
		if got := IsStartCommand(tt.text); got != tt.want {
			t.Errorf("IsStartCommand(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
