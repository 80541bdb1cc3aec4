package memory

import "trivia-quiz-service/internal/domain"

// SampleQuestions is the built-in bank served by the static source and used to
// seed an empty Postgres question table.
func SampleQuestions() []domain.Question {
	return copyQuestions(builtinQuestions)
}

var builtinQuestions = []domain.Question{
	{Text: "What is the capital of Australia?", CorrectAnswer: "Canberra", IncorrectAnswers: []string{"Sydney", "Melbourne", "Perth"}},
	{Text: "Which planet is known as the Red Planet?", CorrectAnswer: "Mars", IncorrectAnswers: []string{"Venus", "Jupiter", "Mercury"}},
	{Text: "How many sides does a hexagon have?", CorrectAnswer: "6", IncorrectAnswers: []string{"5", "7", "8"}},
	{Text: "Who wrote \"Pride and Prejudice\"?", CorrectAnswer: "Jane Austen", IncorrectAnswers: []string{"Charlotte Bronte", "Mary Shelley", "George Eliot"}},
	{Text: "What is the chemical symbol for gold?", CorrectAnswer: "Au", IncorrectAnswers: []string{"Ag", "Gd", "Go"}},
	{Text: "Which ocean is the largest?", CorrectAnswer: "Pacific", IncorrectAnswers: []string{"Atlantic", "Indian", "Arctic"}},
	{Text: "In which year did the first person walk on the Moon?", CorrectAnswer: "1969", IncorrectAnswers: []string{"1965", "1972", "1959"}},
	{Text: "What is the hardest natural substance?", CorrectAnswer: "Diamond", IncorrectAnswers: []string{"Quartz", "Granite", "Iron"}},
	{Text: "Which language has the most native speakers?", CorrectAnswer: "Mandarin Chinese", IncorrectAnswers: []string{"English", "Spanish", "Hindi"}},
	{Text: "What is the smallest prime number?", CorrectAnswer: "2", IncorrectAnswers: []string{"1", "3", "0"}},
	{Text: "Which gas do plants absorb from the air?", CorrectAnswer: "Carbon dioxide", IncorrectAnswers: []string{"Oxygen", "Nitrogen", "Helium"}},
	{Text: "Who painted the Mona Lisa?", CorrectAnswer: "Leonardo da Vinci", IncorrectAnswers: []string{"Michelangelo", "Raphael", "Donatello"}},
}
