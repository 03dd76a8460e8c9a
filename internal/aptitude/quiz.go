package aptitude

// The portal's aptitude test is a fixed five-question quiz. Each question is
// worth 20 points, so the score is always a multiple of 20 between 0 and 100.

const (
	NumQuestions      = 5
	PointsPerQuestion = 20
	MaxScore          = NumQuestions * PointsPerQuestion
)

type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

var questions = []Question{
	{
		ID:     "q1",
		Prompt: "If a train travels 300 km in 5 hours, what is its speed?",
		Choices: []Choice{
			{Key: "A", Text: "60 km/h"},
			{Key: "B", Text: "50 km/h"},
			{Key: "C", Text: "70 km/h"},
		},
	},
	{
		ID:     "q2",
		Prompt: "Which number comes next in the sequence: 2, 4, 8, 16, ___?",
		Choices: []Choice{
			{Key: "A", Text: "20"},
			{Key: "B", Text: "32"},
			{Key: "C", Text: "24"},
		},
	},
	{
		ID:     "q3",
		Prompt: "If all Bloops are Razzies and all Razzies are Lazzies, then all Bloops are definitely Lazzies?",
		Choices: []Choice{
			{Key: "A", Text: "False"},
			{Key: "B", Text: "True"},
			{Key: "C", Text: "Uncertain"},
		},
	},
	{
		ID:     "q4",
		Prompt: "Which word doesn't belong: Apple, Banana, Orange, Carrot?",
		Choices: []Choice{
			{Key: "A", Text: "Carrot"},
			{Key: "B", Text: "Banana"},
			{Key: "C", Text: "Orange"},
		},
	},
	{
		ID:     "q5",
		Prompt: "If today is Monday, what day will it be in 10 days?",
		Choices: []Choice{
			{Key: "A", Text: "Thursday"},
			{Key: "B", Text: "Thursday"},
			{Key: "C", Text: "Friday"},
		},
	},
}

var answerKey = map[string]string{
	"q1": "A",
	"q2": "B",
	"q3": "C",
	"q4": "A",
	"q5": "B",
}

// Questions returns the quiz for rendering. Callers must not mutate it.
func Questions() []Question {
	return questions
}

// Score grades a set of answers keyed by question id ("q1".."q5"). A missing
// or wrong answer contributes zero; there is no partial or negative credit.
func Score(answers map[string]string) int {
	score := 0
	for id, correct := range answerKey {
		if answers[id] == correct {
			score += PointsPerQuestion
		}
	}
	return score
}
