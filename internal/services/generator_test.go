package services

import (
	"testing"
)

func TestFallbackImageURL(t *testing.T) {
	for _, topic := range []string{TOPIC_BEACH, TOPIC_CUTE, TOPIC_DRESS, TOPIC_PORTRAIT} {
		if url := FallbackImageURL(topic); url == "" {
			t.Fatalf("no fallback image for topic %q", topic)
		}
	}

	if FallbackImageURL(TOPIC_BEACH) == FallbackImageURL(TOPIC_DRESS) {
		t.Fatal("topics must resolve to distinct fallback images")
	}

	if FallbackImageURL("unknown-topic") != fallbackImageDefault {
		t.Fatal("unknown topic must resolve to the default fallback")
	}
}
