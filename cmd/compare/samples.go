package main

// Sample is a canned prompt used when no prompt is given on the command line.
type Sample struct {
	Name   string
	Prompt string
}

// Samples span quick factual answers to longer reasoning so the latency
// spread between models is visible in the summary.
var Samples = []Sample{
	{
		Name:   "arithmetic",
		Prompt: "What is 2+2? Answer with the number only.",
	},
	{
		Name:   "factual",
		Prompt: "Which planet in the solar system has the most confirmed moons? Answer in one sentence.",
	},
	{
		Name:   "reasoning",
		Prompt: "A bat and a ball cost $1.10 in total. The bat costs $1.00 more than the ball. How much does the ball cost? Explain briefly.",
	},
	{
		Name: "code",
		Prompt: `Write a Go function that reverses a string by runes, not bytes.
Return only the code.`,
	},
	{
		Name: "summary",
		Prompt: `Summarize the following in two sentences:

The deployment yesterday went smoothly. All services are running and no errors
appeared in the logs. The only concern is that the search endpoint responds in
about 450ms instead of the expected 300ms, which will be investigated today.`,
	},
}
