package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const callTimeout = 60 * time.Second

// llmCaller is the part of *ollama.LLM the generator uses.
type llmCaller interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

type ollamaQuestionGenerator struct {
	llm llmCaller
}

// NewOllamaQuestionGenerator connects to the ollama server in cfg.
func NewOllamaQuestionGenerator(cfg config.LLMConfig) (domain.QuestionGenerator, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("llm server is not configured")
	}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.Server),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: callTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &ollamaQuestionGenerator{llm: llm}, nil
}

type draftQuestion struct {
	Statement  string   `json:"statement"`
	Options    []string `json:"options"`
	Answer     int      `json:"answer"`
	Difficulty string   `json:"difficulty"`
}

// GenerateQuestions asks the model for count drafts. Drafts that fail validation are dropped.
func (g *ollamaQuestionGenerator) GenerateQuestions(ctx context.Context, category domain.Category, count int) ([]*domain.Question, error) {
	l := logger.Get().With(zap.String("category", string(category)), zap.Int("count", count))
	if count <= 0 {
		return []*domain.Question{}, nil
	}

	prompt := fmt.Sprintf(`You are a trivia question writer. Write %d multiple-choice questions for the category "%s".
Respond with ONLY a JSON array in the following format:
[
  {
    "statement": "question text",
    "options": ["option 0", "option 1", "option 2", "option 3"],
    "answer": 0,
    "difficulty": "LOW"
  }
]

Rules:
1. Every question has exactly four options
2. answer is the 0-based index of the correct option
3. difficulty is one of LOW, MEDIUM, HIGH
4. Questions must be factual and unambiguous`, count, strings.ReplaceAll(string(category), "_", " "))

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	raw, err := g.llm.Call(callCtx, prompt, llms.WithTemperature(0.7))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
		}
		return nil, domain.NewQuestionGenerationError(fmt.Errorf("LLM call failed: %w", err))
	}
	l.Debug("Raw LLM response received", zap.String("raw_response", raw))

	drafts, err := parseDrafts(raw)
	if err != nil {
		l.Error("Failed to parse LLM response", zap.Error(err))
		return nil, domain.NewQuestionGenerationError(err)
	}

	questions := make([]*domain.Question, 0, len(drafts))
	for _, d := range drafts {
		q, err := d.toQuestion(category)
		if err != nil {
			l.Warn("LLM generated an invalid question", zap.String("statement", d.Statement), zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}

	l.Info("Generated question drafts", zap.Int("accepted", len(questions)), zap.Int("returned", len(drafts)))
	return questions, nil
}

// parseDrafts strips <think> blocks and decodes the outermost JSON array in raw.
func parseDrafts(raw string) ([]draftQuestion, error) {
	cleaned := strings.TrimSpace(raw)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array found in LLM response")
	}

	var drafts []draftQuestion
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &drafts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LLM response: %w", err)
	}
	return drafts, nil
}

func (d draftQuestion) toQuestion(category domain.Category) (*domain.Question, error) {
	if len(d.Options) != domain.OptionCount {
		return nil, fmt.Errorf("expected %d options, got %d", domain.OptionCount, len(d.Options))
	}
	difficulty, err := domain.ParseDifficulty(d.Difficulty)
	if err != nil {
		difficulty = domain.DifficultyMedium
	}
	q := &domain.Question{
		Statement:     strings.TrimSpace(d.Statement),
		OptionA:       strings.TrimSpace(d.Options[0]),
		OptionB:       strings.TrimSpace(d.Options[1]),
		OptionC:       strings.TrimSpace(d.Options[2]),
		OptionD:       strings.TrimSpace(d.Options[3]),
		Answer:        d.Answer,
		Difficulty:    difficulty,
		Category:      category,
		ApprovalLevel: domain.ApprovalNew,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}
