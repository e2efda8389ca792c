package service

import (
	"testing"

	"ai-tutor-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChatMessagesDefaultsUnknownAttributes(t *testing.T) {
	msgs := buildChatMessages(&entity.Profile{UserId: "U1"}, "hi", nil, 300)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "Occupation: ?, Age: ?, Need: ?.")
}

func TestBuildChatMessagesNilProfile(t *testing.T) {
	msgs := buildChatMessages(nil, "hi", nil, 300)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "Occupation: ?, Age: ?, Need: ?.")
}

func TestBuildReflectionMessagesJoinsBlock(t *testing.T) {
	logs := []*entity.ConversationLog{
		{UserId: "U1", Log: "student: a | teacher: b"},
		{UserId: "U1", Log: "student: c | teacher: d"},
	}
	msgs := buildReflectionMessages(logs)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, "previous 2 conversations")
	assert.Contains(t, msgs[1].Content, "[student: a | teacher: b | student: c | teacher: d]")
}
