package service

import (
	"fmt"
	"strings"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/pkg/llm"
)

// Onboarding dialog texts, asked in order.
const (
	questionOccupation = "Hi! I'm your AI English tutor.\nFirst, may I know your **occupation**?"
	questionAge        = "Great, thanks! How old are you?"
	questionNeed       = "Got it. Finally, what's your main reason or goal for learning English?"
	onboardingDone     = "All set! Feel free to send me a voice or text question any time ✨"

	// Sent when an onboarding answer arrives as a voice message.
	answerInTextPrompt = "Let's finish the quick setup first. Please answer in a text message 🙂"
)

const tutorPersona = "You are an American English teacher currently living in Taiwan, " +
	"proficient in both English and Chinese. You know how to correct " +
	"students' grammatical mistakes and guide them to improve their English proficiency."

const reflectionPersona = "You are now an experienced English teacher who knows how to guide students, " +
	"summarize and verify their learning situations, and set goals for them."

// buildChatMessages composes the two-message tutoring prompt: persona plus
// student profile in the system message; past-record clause, verbatim student
// text and the soft length cap in the user message.
func buildChatMessages(profile *entity.Profile, studentText string, memories []string, maxWords int) []llm.Message {
	occupation, age, need := "?", "?", "?"
	if profile != nil {
		if profile.Occupation != "" {
			occupation = profile.Occupation
		}
		if profile.Age != "" {
			age = profile.Age
		}
		if profile.Need != "" {
			need = profile.Need
		}
	}

	memPrompt := ""
	if len(memories) > 0 {
		memPrompt = fmt.Sprintf("This is a record of what you have done for the student in the past: [%s]",
			strings.Join(memories, " | "))
	}

	return []llm.Message{
		{
			Role: "system",
			Content: fmt.Sprintf("%s\nStudent profile -> Occupation: %s, Age: %s, Need: %s.",
				tutorPersona, occupation, age, need),
		},
		{
			Role: "user",
			Content: fmt.Sprintf("%s\nStudent says: \"%s\"\n\nAnswer in <=%d words.",
				memPrompt, studentText, maxWords),
		},
	}
}

// buildReflectionMessages composes the periodic-reflection prompt over a
// block of past conversations.
func buildReflectionMessages(logs []*entity.ConversationLog) []llm.Message {
	texts := make([]string, len(logs))
	for i, l := range logs {
		texts[i] = l.Log
	}

	return []llm.Message{
		{
			Role:    "system",
			Content: reflectionPersona,
		},
		{
			Role: "user",
			Content: fmt.Sprintf("Regarding the previous %d conversations with the student: [%s]\n"+
				"Please reflect on the following:\n"+
				"1. At which stage and level are the students' questions regarding learning English?\n"+
				"2. Are the answers given by the teacher really helpful to the student?\n"+
				"3. If you were the teacher, how would you modify your responses to better assist the student?",
				len(logs), strings.Join(texts, " | ")),
		},
	}
}

func formatLogEntry(studentText, reply string) string {
	return fmt.Sprintf("student: %s | teacher: %s", studentText, reply)
}
