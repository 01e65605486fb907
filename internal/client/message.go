package client

import (
	"context"
	"sync"

	"github.com/kkapil94/outflo-assignment/internal/models"
)

// MessageAPI generates outreach messages
type MessageAPI interface {
	GeneratePersonalizedMessage(ctx context.Context, profile models.LinkedInProfile) (*models.PersonalizedMessage, error)
}

// MessageGenerator keeps the last generated message for a profile form
type MessageGenerator struct {
	api      MessageAPI
	notifier Notifier

	mu       sync.Mutex
	message  *models.PersonalizedMessage
	inflight int
	err      string
}

// NewMessageGenerator creates a new MessageGenerator
func NewMessageGenerator(api MessageAPI, notifier Notifier) *MessageGenerator {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &MessageGenerator{api: api, notifier: notifier}
}

// Generate requests a message. The previous message is kept when the request fails.
func (g *MessageGenerator) Generate(ctx context.Context, profile models.LinkedInProfile) *models.PersonalizedMessage {
	g.mu.Lock()
	g.inflight++
	g.err = ""
	g.mu.Unlock()

	msg, err := g.api.GeneratePersonalizedMessage(ctx, profile)

	g.mu.Lock()
	g.inflight--
	if err != nil {
		g.err = errorMessage(err, "Failed to generate message")
		failure := g.err
		g.mu.Unlock()
		g.notifier.Notify(LevelError, failure)
		return nil
	}
	g.message = msg
	g.mu.Unlock()
	return msg
}

// Clear forgets the message and any error
func (g *MessageGenerator) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.message = nil
	g.err = ""
}

// Message returns the last generated message, or nil
func (g *MessageGenerator) Message() *models.PersonalizedMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// Loading reports whether a request is in flight
func (g *MessageGenerator) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inflight > 0
}

// Err returns the last failure message
func (g *MessageGenerator) Err() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
