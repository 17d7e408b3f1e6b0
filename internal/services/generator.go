package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
)

const (
	GENERATOR_TIMEOUT     = 15 * time.Second
	GENERATOR_RETRY_COUNT = 2

	// degraded replies; generator failures are never surfaced as errors
	FALLBACK_TEXT_REPLY = "Oops! Something went wrong, but I still love you! 💖"
	IMAGE_ACK_REPLY     = "I'd love to share a photo with you! 📸✨"

	TOPIC_BEACH    = "beach"
	TOPIC_CUTE     = "cute"
	TOPIC_DRESS    = "dress"
	TOPIC_PORTRAIT = "portrait"
)

var ErrGeneratorUnavailable = errors.New("generator unavailable")

// fallbackImages resolves a gated image even when the generator is down:
// the unlock must never half-complete because of a backend failure.
var fallbackImages = map[string]string{
	TOPIC_BEACH:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=600&fit=crop&crop=face",
	TOPIC_CUTE:     "https://images.unsplash.com/photo-1494790108755-2616c27de2a2?w=400&h=600&fit=crop&crop=face",
	TOPIC_DRESS:    "https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e?w=400&h=600&fit=crop&crop=face",
	TOPIC_PORTRAIT: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=400&h=600&fit=crop&crop=face",
}

const fallbackImageDefault = "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=400&h=600&fit=crop&crop=face"

// FallbackImageURL returns the deterministic per-topic image reference.
func FallbackImageURL(topic string) string {
	if url, ok := fallbackImages[topic]; ok {
		return url
	}
	return fallbackImageDefault
}

var cannedReplies = []string{
	"That's so sweet of you to say! 💖",
	"I love chatting with you! What's on your mind?",
	"You always know how to make me smile! ✨",
	"I've been thinking about you too! 😊",
	"Tell me more about your day!",
	"You're such good company! 💕",
}

type ServiceGenerator struct {
	textURL  string
	imageURL string
	client   *httpclient.Client
	canned   *ServiceChooser[string]
}

func NewServiceGenerator(container *do.Injector) (*ServiceGenerator, error) {
	vs := do.MustInvokeNamed[map[string]string](container, "envs")

	choices := []weightedrand.Choice[string, int]{}
	for _, reply := range cannedReplies {
		choices = append(choices, weightedrand.NewChoice(reply, 1))
	}
	canned, err := NewServiceChooser(choices)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(GENERATOR_TIMEOUT),
		httpclient.WithRetryCount(GENERATOR_RETRY_COUNT),
	)

	return &ServiceGenerator{
		textURL:  vs["TEXT_GENERATOR_URL"],
		imageURL: vs["IMAGE_GENERATOR_URL"],
		client:   client,
		canned:   canned,
	}, nil
}

type textGeneratorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type imageGeneratorResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

// GenerateText asks the external persona brain for a reply. With no
// endpoint configured it falls back to the canned pool so development
// setups stay usable without a backend.
func (service *ServiceGenerator) GenerateText(prompt string) (string, error) {
	if service.textURL == "" {
		return service.canned.Pick(), nil
	}

	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", err
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	res, err := service.client.Post(service.textURL, bytes.NewReader(body), headers)
	if err != nil {
		return "", errors.Join(ErrGeneratorUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrGeneratorUnavailable, res.StatusCode)
	}

	var payload textGeneratorResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", errors.Join(ErrGeneratorUnavailable, err)
	}

	if !payload.Success || payload.Message == "" {
		return "", ErrGeneratorUnavailable
	}

	return payload.Message, nil
}

// GenerateImage resolves a URL for the given topic. Callers are expected
// to substitute FallbackImageURL on any error.
func (service *ServiceGenerator) GenerateImage(promptBase string, topic string) (string, error) {
	if service.imageURL == "" {
		return "", ErrGeneratorUnavailable
	}

	body, err := json.Marshal(map[string]string{
		"prompt":  promptBase,
		"context": topic,
	})
	if err != nil {
		return "", err
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	res, err := service.client.Post(service.imageURL, bytes.NewReader(body), headers)
	if err != nil {
		return "", errors.Join(ErrGeneratorUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrGeneratorUnavailable, res.StatusCode)
	}

	var payload imageGeneratorResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", errors.Join(ErrGeneratorUnavailable, err)
	}

	if !payload.Success || payload.ImageURL == "" {
		return "", ErrGeneratorUnavailable
	}

	return payload.ImageURL, nil
}
