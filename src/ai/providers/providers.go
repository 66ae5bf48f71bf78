// Package providers registers every provider client with the core factory.
package providers

import (
	_ "github.com/draftforge/draftforge/src/ai/anthropic"
	_ "github.com/draftforge/draftforge/src/ai/deepseek"
	_ "github.com/draftforge/draftforge/src/ai/gemini"
	_ "github.com/draftforge/draftforge/src/ai/groq"
	_ "github.com/draftforge/draftforge/src/ai/openai"
)
