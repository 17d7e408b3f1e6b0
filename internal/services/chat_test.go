package services

import (
	"testing"
)

func TestIsImageRequest(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"can you send me a pic?", true},
		{"show me what you look like", true},
		{"SEND A SELFIE", true},
		{"I took a photo today", true},
		{"a picture is worth a thousand words", true},
		{"how was your day?", false},
		{"I love you so much", false},
		{"tell me a story", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsImageRequest(tc.text); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.text, tc.want, got)
		}
	}
}

func TestDeriveTopic(t *testing.T) {
	cases := []struct {
		text   string
		sticky string
		want   string
	}{
		{"show me a pic at the beach", "", TOPIC_BEACH},
		{"send me a cute selfie", "", TOPIC_CUTE},
		{"a photo in your new dress", "", TOPIC_DRESS},
		{"send me a pic", "", TOPIC_PORTRAIT},
		// follow-up with no keyword keeps the sticky topic
		{"send another", TOPIC_BEACH, TOPIC_BEACH},
		// explicit keyword overrides the sticky topic
		{"now a cute one", TOPIC_BEACH, TOPIC_CUTE},
		// beach wins over cute when both appear
		{"a cute pic at the beach", "", TOPIC_BEACH},
		{"SHOW ME THE BEACH", "", TOPIC_BEACH},
	}

	for _, tc := range cases {
		if got := DeriveTopic(tc.text, tc.sticky); got != tc.want {
			t.Fatalf("%q (sticky %q): expected %q, got %q", tc.text, tc.sticky, tc.want, got)
		}
	}
}
