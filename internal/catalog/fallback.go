package catalog

import "github.com/abhisek/codeval/internal/api"

// fallbackTopics is served when the service catalog is unavailable.
var fallbackTopics = []api.Topic{
	{Name: "for_loop", Questions: []api.Question{
		{ID: 1, Difficulty: "easy", Question: "Print numbers from 1 to 10 using a for loop", Concepts: []string{"for"}},
		{ID: 2, Difficulty: "easy", Question: "Print all even numbers between 1 and 20", Concepts: []string{"for", "if"}},
		{ID: 3, Difficulty: "medium", Question: "Calculate the sum of numbers from 1 to n", Concepts: []string{"for", "variables"}},
	}},
	{Name: "while_loop", Questions: []api.Question{
		{ID: 4, Difficulty: "easy", Question: "Print numbers from 1 to 5 using a while loop", Concepts: []string{"while"}},
		{ID: 5, Difficulty: "medium", Question: "Count down from 10 to 1 using a while loop", Concepts: []string{"while", "variables"}},
	}},
	{Name: "if_else", Questions: []api.Question{
		{ID: 6, Difficulty: "easy", Question: "Check if a number is even or odd", Concepts: []string{"if", "else"}},
		{ID: 7, Difficulty: "easy", Question: "Find the larger of two numbers", Concepts: []string{"if", "else"}},
		{ID: 8, Difficulty: "medium", Question: "Check whether a number is positive, negative or zero", Concepts: []string{"if", "elif", "else"}},
	}},
	{Name: "nested_if_else", Questions: []api.Question{
		{ID: 9, Difficulty: "medium", Question: "Find the largest of three numbers", Concepts: []string{"if", "else", "nested"}},
		{ID: 10, Difficulty: "hard", Question: "Assign a letter grade from a numeric score", Concepts: []string{"if", "elif", "else", "nested"}},
	}},
}

// Fallback returns the built-in catalog.
func Fallback() *Catalog {
	return New(fallbackTopics)
}
