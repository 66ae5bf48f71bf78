// ai-smoketest exercises the provider clients against the live APIs.
// Keys come from the environment: OPENAI_API_KEY, GROQ_API_KEY,
// GEMINI_API_KEY.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	aicore "github.com/draftforge/draftforge/src/ai/core"
	_ "github.com/draftforge/draftforge/src/ai/providers"
)

var (
	providersFlag = flag.String("providers", "openai", "Comma-separated provider list or 'all'")
	modelFlag     = flag.String("model", "", "Override model name")
	systemFlag    = flag.String("system", defaultSystemPrompt, "System prompt")
	promptFlag    = flag.String("prompt", defaultPrompt, "User prompt")
	timeoutFlag   = flag.Duration("timeout", 45*time.Second, "Per-provider timeout")
	tempFlag      = flag.Float64("temp", 0.2, "Completion temperature")
	maxLenFlag    = flag.Int("max-bytes", 1200, "Maximum bytes of output to print per response (0=unlimited)")
)

const (
	defaultSystemPrompt = "Generate blog content that is SEO-optimized and human-like."
	defaultPrompt       = "Write a short blog post about morning routines."
)

var envKeys = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"groq":      "GROQ_API_KEY",
	"google":    "GEMINI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"deepseek":  "DEEPSEEK_API_KEY",
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}

	for _, name := range providers {
		run(name)
	}
}

func resolveProviders(arg string) []string {
	if strings.EqualFold(strings.TrimSpace(arg), "all") {
		var all []string
		for _, p := range aicore.Catalog {
			all = append(all, p.Name)
		}
		return all
	}
	var out []string
	for _, part := range strings.Split(arg, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func run(name string) {
	entry, ok := aicore.ProviderByName(name)
	if !ok {
		log.Printf("%s: unknown provider, skipping", name)
		return
	}

	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:     entry.Name,
		APIKey:       os.Getenv(envKeys[entry.Name]),
		Model:        pickModel(entry),
		SystemPrompt: *systemFlag,
		Temperature:  *tempFlag,
	})
	if err != nil {
		log.Printf("%s: %v", name, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	text, err := client.Generate(ctx, *promptFlag, aicore.Options{})
	if err != nil {
		log.Printf("%s: FAILED after %v: %v", name, time.Since(start).Round(time.Millisecond), err)
		return
	}
	log.Printf("%s: OK in %v", name, time.Since(start).Round(time.Millisecond))
	fmt.Println(clip(text, *maxLenFlag))
}

func pickModel(entry aicore.Provider) string {
	if *modelFlag != "" {
		return *modelFlag
	}
	if len(entry.Models) > 0 {
		return entry.Models[0]
	}
	return ""
}

func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
