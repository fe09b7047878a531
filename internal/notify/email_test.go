package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{FromEmail: "care@example.com"}, nil)
	assert.Nil(t, sender)
}

func TestNewSendGridSender_FromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "care@example.com"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, DefaultFromName, sender.fromName)

	sender = NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "care@example.com", FromName: "Front Desk"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, "Front Desk", sender.fromName)
}

func TestSendGridSender_SendWithoutClient(t *testing.T) {
	var nilSender *SendGridSender
	assert.Error(t, nilSender.Send(context.Background(), EmailMessage{To: "a@b.co"}))

	sender := &SendGridSender{}
	assert.Error(t, sender.Send(context.Background(), EmailMessage{To: "a@b.co"}))
}

func TestStubEmailSender_RecordsMessages(t *testing.T) {
	sender := NewStubEmailSender(nil)
	require.NoError(t, sender.Send(context.Background(), EmailMessage{To: "a@b.co", Subject: "one"}))
	require.NoError(t, sender.Send(context.Background(), EmailMessage{To: "c@d.co", Subject: "two"}))

	sent := sender.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "one", sent[0].Subject)
	assert.Equal(t, "c@d.co", sent[1].To)

	sent[0].Subject = "mutated"
	assert.Equal(t, "one", sender.Sent()[0].Subject)
}
