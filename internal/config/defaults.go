package config

// DefaultExamCatalog returns the built-in module exams. Each is a fixed
// 5-question set with a 5-minute limit.
func DefaultExamCatalog() *ExamCatalog {
	return &ExamCatalog{Exams: []Exam{
		{
			ID:        "basics",
			Title:     "Module 1 Midterm: Language Basics",
			Stat:      "Syntax",
			TimeLimit: 300,
			Questions: []Question{
				{
					Prompt:  "Which keyword declares a variable with inferred type at package scope?",
					Choices: []string{"let", "var", "def", "auto"},
					Answer:  1,
				},
				{
					Prompt:  "What is the zero value of a string?",
					Choices: []string{"nil", "\"\"", "\"0\"", "undefined"},
					Answer:  1,
				},
				{
					Prompt:  "Which of these is a valid identifier?",
					Choices: []string{"2fast", "_count", "my-var", "for"},
					Answer:  1,
				},
				{
					Prompt:  "How do you write a single-line comment?",
					Choices: []string{"# text", "<!-- text -->", "// text", "; text"},
					Answer:  2,
				},
				{
					Prompt:  "What does := do?",
					Choices: []string{"Compares two values", "Declares and assigns", "Assigns by reference", "Swaps operands"},
					Answer:  1,
				},
			},
		},
		{
			ID:        "control-flow",
			Title:     "Module 2 Midterm: Control Flow",
			Stat:      "Logic",
			TimeLimit: 300,
			Questions: []Question{
				{
					Prompt:  "Which loop construct exists in the language?",
					Choices: []string{"while", "do-while", "for", "repeat-until"},
					Answer:  2,
				},
				{
					Prompt:  "What does break do inside a loop?",
					Choices: []string{"Skips one iteration", "Exits the loop", "Restarts the loop", "Exits the program"},
					Answer:  1,
				},
				{
					Prompt:  "A switch case falls through to the next case…",
					Choices: []string{"always", "never by default", "only for ints", "when braces are omitted"},
					Answer:  1,
				},
				{
					Prompt:  "Which statement skips to the next loop iteration?",
					Choices: []string{"skip", "next", "pass", "continue"},
					Answer:  3,
				},
				{
					Prompt:  "An if statement condition must be…",
					Choices: []string{"a boolean expression", "any non-zero value", "a string", "parenthesized"},
					Answer:  0,
				},
			},
		},
		{
			ID:        "concurrency",
			Title:     "Module 5 Final: Concurrency",
			Stat:      "Concurrency",
			TimeLimit: 300,
			Questions: []Question{
				{
					Prompt:  "Which keyword starts a new goroutine?",
					Choices: []string{"spawn", "thread", "go", "async"},
					Answer:  2,
				},
				{
					Prompt:  "What is the idiomatic way for goroutines to communicate?",
					Choices: []string{"Shared globals", "Channels", "Files", "Signals"},
					Answer:  1,
				},
				{
					Prompt:  "Sending on a nil channel…",
					Choices: []string{"panics", "returns an error", "blocks forever", "is a no-op"},
					Answer:  2,
				},
				{
					Prompt:  "Which type guards a critical section?",
					Choices: []string{"sync.Mutex", "sync.Pool", "atomic.Value", "context.Context"},
					Answer:  0,
				},
				{
					Prompt:  "Closing an already-closed channel…",
					Choices: []string{"blocks", "panics", "is ignored", "returns false"},
					Answer:  1,
				},
			},
		},
	}}
}
