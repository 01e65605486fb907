package client

import (
	"context"
	"errors"
	"testing"

	"github.com/kkapil94/outflo-assignment/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessages struct {
	msg *models.PersonalizedMessage
	err error
}

func (f fakeMessages) GeneratePersonalizedMessage(context.Context, models.LinkedInProfile) (*models.PersonalizedMessage, error) {
	return f.msg, f.err
}

func TestMessageGenerator(t *testing.T) {
	notes := &recorder{}
	g := NewMessageGenerator(fakeMessages{msg: &models.PersonalizedMessage{Message: "Hi"}}, notes)

	got := g.Generate(context.Background(), models.LinkedInProfile{Name: "John"})
	require.NotNil(t, got)
	assert.Equal(t, "Hi", g.Message().Message)
	assert.False(t, g.Loading())

	g.Clear()
	assert.Nil(t, g.Message())
	assert.Empty(t, g.Err())
}

func TestMessageGeneratorFailure(t *testing.T) {
	notes := &recorder{}
	g := NewMessageGenerator(fakeMessages{err: errors.New("quota exceeded")}, notes)

	assert.Nil(t, g.Generate(context.Background(), models.LinkedInProfile{}))
	assert.Equal(t, "quota exceeded", g.Err())
	assert.Equal(t, note{LevelError, "quota exceeded"}, notes.last())
}
