package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// QuestionsPerQuiz is the number of questions served to a quiz taker.
	QuestionsPerQuiz = 10

	MinAnswerIndex = 0
	MaxAnswerIndex = 3
	OptionCount    = 4
)

// ApprovalLevel is the admin-assigned workflow state of a question.
// The numeric values are persisted and must not change.
type ApprovalLevel int

const (
	ApprovalApproved ApprovalLevel = iota
	ApprovalNew
	ApprovalDiscard
	ApprovalEdit
)

var approvalLevelNames = map[ApprovalLevel]string{
	ApprovalApproved: "APPROVED",
	ApprovalNew:      "NEW",
	ApprovalDiscard:  "DISCARD",
	ApprovalEdit:     "EDIT",
}

func (a ApprovalLevel) String() string {
	if name, ok := approvalLevelNames[a]; ok {
		return name
	}
	return "UNKNOWN(" + strconv.Itoa(int(a)) + ")"
}

// IsValid reports whether a is one of the four known levels.
func (a ApprovalLevel) IsValid() bool {
	_, ok := approvalLevelNames[a]
	return ok
}

// ParseApprovalLevel accepts a level name (case-insensitive) or its numeric value.
func ParseApprovalLevel(s string) (ApprovalLevel, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		level := ApprovalLevel(n)
		if !level.IsValid() {
			return 0, NewInvalidApprovalLevelError(s)
		}
		return level, nil
	}
	upper := strings.ToUpper(s)
	for level, name := range approvalLevelNames {
		if name == upper {
			return level, nil
		}
	}
	return 0, NewInvalidApprovalLevelError(s)
}

func (a ApprovalLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *ApprovalLevel) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var parsed ApprovalLevel
	var err error
	switch v := raw.(type) {
	case string:
		parsed, err = ParseApprovalLevel(v)
	case float64:
		parsed, err = ParseApprovalLevel(strconv.Itoa(int(v)))
	default:
		err = NewInvalidApprovalLevelError(string(data))
	}
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Difficulty of a question.
type Difficulty string

const (
	DifficultyLow    Difficulty = "LOW"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHigh   Difficulty = "HIGH"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToUpper(strings.TrimSpace(s))); d {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return d, nil
	}
	return "", NewInvalidInputError(fmt.Sprintf("Invalid difficulty: %s", s))
}

// Category of a question.
type Category string

const (
	CategoryGeneral              Category = "GENERAL"
	CategoryHistory              Category = "HISTORY"
	CategoryFinance              Category = "FINANCE"
	CategorySports               Category = "SPORTS"
	CategoryScienceAndTechnology Category = "SCIENCE_AND_TECHNOLOGY"
	CategoryEngineering          Category = "ENGINEERING"
	CategoryEntertainment        Category = "ENTERTAINMENT"
	CategoryGeography            Category = "GEOGRAPHY"
	CategoryLiterature           Category = "LITERATURE"
	CategoryFoodAndCuisine       Category = "FOOD_AND_CUISINE"
	CategoryNatureAndWildlife    Category = "NATURE_AND_WILDLIFE"
	CategoryMythologyAndReligion Category = "MYTHOLOGY_AND_RELIGION"
	CategoryPolitics             Category = "POLITICS"
	CategoryMusic                Category = "MUSIC"
)

// AllCategories lists the categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryGeneral, CategoryHistory, CategoryFinance, CategorySports,
		CategoryScienceAndTechnology, CategoryEngineering, CategoryEntertainment,
		CategoryGeography, CategoryLiterature, CategoryFoodAndCuisine,
		CategoryNatureAndWildlife, CategoryMythologyAndReligion, CategoryPolitics,
		CategoryMusic,
	}
}

func ParseCategory(s string) (Category, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	for _, c := range AllCategories() {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", NewInvalidCategoryError(s)
}

// Question is a multiple-choice quiz question with exactly four options.
type Question struct {
	ID            string
	Statement     string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	Answer        int
	Difficulty    Difficulty
	Category      Category
	ApprovalLevel ApprovalLevel
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Options returns the four options in index order.
func (q *Question) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// IsCorrect reports whether opted is the stored answer index.
func (q *Question) IsCorrect(opted int) bool {
	return q.Answer == opted
}

// Validate checks the invariants a question must hold before it is stored.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Statement) == "" {
		return NewInvalidInputError("statement can't be null or empty")
	}
	for i, opt := range q.Options() {
		if strings.TrimSpace(opt) == "" {
			return NewInvalidInputError(fmt.Sprintf("option %d can't be null or empty", i))
		}
	}
	if q.Answer < MinAnswerIndex || q.Answer > MaxAnswerIndex {
		return NewInvalidInputError(fmt.Sprintf("answer must be between %d and %d", MinAnswerIndex, MaxAnswerIndex))
	}
	if _, err := ParseDifficulty(string(q.Difficulty)); err != nil {
		return err
	}
	if _, err := ParseCategory(string(q.Category)); err != nil {
		return err
	}
	if !q.ApprovalLevel.IsValid() {
		return NewInvalidApprovalLevelError(q.ApprovalLevel.String())
	}
	return nil
}

// AdminRedirect is the admin view to open after a question moves to level.
// EDIT sends the admin to the edit form, anything else back to the list they came from.
func AdminRedirect(questionID string, level ApprovalLevel, currentView string) string {
	if level == ApprovalEdit {
		return "/add-question?questionId=" + questionID
	}
	return "/admin?approvalLevel=" + currentView
}
