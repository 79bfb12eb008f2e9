package seedmodels

// SeedQuestion defines one question in the JSON seed file.
type SeedQuestion struct {
	Statement  string   `json:"statement"`
	Options    []string `json:"options"`
	Answer     int      `json:"answer"`
	Difficulty string   `json:"difficulty"`
}

// SeedCategory groups the seed questions of one category.
type SeedCategory struct {
	Name      string         `json:"category"`
	Questions []SeedQuestion `json:"questions"`
}
