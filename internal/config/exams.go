package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Question is a single multiple-choice exam question. Answer indexes into
// Choices.
type Question struct {
	Prompt  string   `yaml:"prompt"`
	Choices []string `yaml:"choices"`
	Answer  int      `yaml:"answer"`
}

// Exam is a timed question set tied to one skill track.
type Exam struct {
	ID        string     `yaml:"id"`
	Title     string     `yaml:"title"`
	Stat      string     `yaml:"stat"`
	TimeLimit int        `yaml:"time_limit"` // seconds
	Questions []Question `yaml:"questions"`
}

type ExamCatalog struct {
	Exams []Exam `yaml:"exams"`
}

func (c *ExamCatalog) Get(id string) *Exam {
	for i := range c.Exams {
		if c.Exams[i].ID == id {
			return &c.Exams[i]
		}
	}
	return nil
}

// LoadExamCatalog reads a YAML exam catalog from path.
func LoadExamCatalog(path string) (*ExamCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exam catalog: %w", err)
	}
	var c ExamCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse exam catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ResolveExamCatalog returns the catalog from the explicit path, the
// STUDYQUEST_EXAMS env var, or the built-in default set.
func ResolveExamCatalog(path string) (*ExamCatalog, error) {
	if path == "" {
		path = os.Getenv("STUDYQUEST_EXAMS")
	}
	if path == "" {
		return DefaultExamCatalog(), nil
	}
	return LoadExamCatalog(path)
}

func (c *ExamCatalog) validate() error {
	seen := map[string]bool{}
	for _, e := range c.Exams {
		if e.ID == "" {
			return fmt.Errorf("exam catalog: exam with empty id")
		}
		if seen[e.ID] {
			return fmt.Errorf("exam catalog: duplicate exam id %q", e.ID)
		}
		seen[e.ID] = true
		if e.TimeLimit <= 0 {
			return fmt.Errorf("exam %s: time limit must be positive", e.ID)
		}
		if len(e.Questions) == 0 {
			return fmt.Errorf("exam %s: no questions", e.ID)
		}
		for i, q := range e.Questions {
			if len(q.Choices) < 2 {
				return fmt.Errorf("exam %s question %d: needs at least 2 choices", e.ID, i+1)
			}
			if q.Answer < 0 || q.Answer >= len(q.Choices) {
				return fmt.Errorf("exam %s question %d: answer index %d out of range", e.ID, i+1, q.Answer)
			}
		}
	}
	return nil
}
