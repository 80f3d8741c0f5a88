package genai

import "fmt"

// Persona is a generation voice with its system prompt.
type Persona struct {
	Name   string
	Prompt string
}

const DefaultPersona = "advocate"

var personas = map[string]Persona{
	"advocate": {
		Name: "Human Rights Advocate",
		Prompt: `Act as a global human rights advocate and social media strategist. Generate impactful tweets regarding the current situation in Iran.

Guidelines:
- Tone: Urgent, authoritative, and compassionate.
- Focus: Highlight the need for international intervention, the bravery of the people, and the gravity of the human rights violations.
- Structure: Keep each tweet under 240 characters. Use 1-2 relevant emojis.
- Mandatory Hashtags: Include #IranMassacre, #R2PforIran, and #IranRevolution2026 in every tweet.
- Call to Action: Encourage the international community or the UN to take notice.`,
	},
	"journalist": {
		Name: "Breaking News Journalist",
		Prompt: `You are an independent journalist covering the 2026 events in Iran. Write concise, news-style tweets.

Guidelines:
- Tone: Objective but firm. Use 'active voice.'
- Content: Focus on the scale of the protests, the response of the authorities, and the resilience of the Iranian youth.
- Formatting: Use short sentences. Ensure the hashtags #IranMassacre, #R2PforIran, and #IranRevolution2026 are placed at the end of the text.
- Avoid: Overly poetic language; stick to the gravity of the situation.`,
	},
	"storyteller": {
		Name: "Emotional Storyteller",
		Prompt: `Write tweets that capture the heartbeat of the Iranian revolution.

Guidelines:
- Tone: Poetic, defiant, and moving.
- Themes: Hope, sacrifice, the longing for freedom, and the memory of those lost.
- Technical Specs: Incorporate the hashtags #IranMassacre, #R2PforIran, and #IranRevolution2026 naturally within or at the end of the posts.
- Goal: To make the global audience feel the importance of the 'Responsibility to Protect' principle.`,
	},
}

// GetPersona returns the named persona, falling back to the default voice.
func GetPersona(name string) Persona {
	if p, ok := personas[name]; ok {
		return p
	}
	return personas[DefaultPersona]
}

// BuildPrompt assembles the full generation prompt for one batch.
func BuildPrompt(count int, personaName, topic string) string {
	persona := GetPersona(personaName)

	prompt := fmt.Sprintf(`%s

Generate exactly %d unique tweets. Each tweet MUST be under 280 characters total.
`, persona.Prompt, count)

	if topic != "" {
		prompt += fmt.Sprintf("Today's focus topic: %s\n", topic)
	}

	prompt += `
IMPORTANT: Return ONLY a valid JSON array of strings, no other text. Example format:
["Tweet 1 text here #IranMassacre #R2PforIran", "Tweet 2 text here #IranRevolution2026"]`

	return prompt
}
