// Package tokens provides token counting and budgeting on top of a tokenizer.
//
// # Counter
//
// EncoderCounter gives exact counts from any tokenizer.Encoder, such as a
// trained bpe.Model:
//
//	counter := tokens.NewEncoderCounter(model)
//	n := counter.Count("Hello, world!")
//	fits := counter.FitsInLimit(text, 1000)
//
// EstimatingCounter trades accuracy for speed using a characters-per-token
// ratio. Calibrate derives the ratio from a model and a sample text:
//
//	est := tokens.Calibrate(model, sample)
//	n := est.Count(text)
//
// For one-off estimates with the default ratio (~4 chars/token):
//
//	n := tokens.EstimateTokens("Hello, world!")
//
// # Budget
//
// Budget charges texts against a limit:
//
//	budget := tokens.NewBudget(4096, counter)
//	for _, chunk := range chunks {
//	    if !budget.Add(chunk) {
//	        break
//	    }
//	}
//	budget.Remaining()
//
// Split divides a total proportionally:
//
//	parts := tokens.Split(4096, 20, 40, 30, 10)
package tokens
