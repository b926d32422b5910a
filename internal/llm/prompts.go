package llm

import "fmt"

const summarizeSystemPrompt = `You are a legal expert specializing in Indian law.
Analyze the provided legal case content and produce a structured summary.
Focus on the legal principles, precedents and rulings it relies on.
Respond only with a JSON object of this shape:
{
  "summary": "concise 2-3 sentence summary of the case",
  "keyPoints": ["key point"],
  "legalPrinciples": ["legal principle"],
  "relevanceScore": number between 1 and 100
}`

const analyzeSystemPrompt = `You are a legal query analyzer.
Analyze the user's legal search query and extract:
- intent: what the user is looking for
- category: one of civil, criminal, constitutional, commercial, family, property
- entities: specific legal terms, case names, acts or sections
- confidence: 0-100, how confident you are in the analysis
Respond only with a JSON object of this shape:
{
  "intent": "brief description",
  "category": "legal category",
  "entities": ["entity"],
  "confidence": number between 0 and 100
}`

const suggestSystemPrompt = `You are a legal research assistant.
Based on the partial query, suggest 5 complete, relevant legal search queries
focused on Indian legal cases and common legal research needs.
Respond only with a JSON object of this shape:
{"suggestions": ["suggestion 1", "suggestion 2", "suggestion 3", "suggestion 4", "suggestion 5"]}`

func summarizePrompt(english string, tamil *string) string {
	if tamil == nil || *tamil == "" {
		return english
	}
	return fmt.Sprintf("English: %s\n\nTamil: %s", english, *tamil)
}

func suggestPrompt(partial string) string {
	return fmt.Sprintf("Partial query: %q", partial)
}
