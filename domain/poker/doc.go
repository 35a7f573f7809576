// Package poker classifies five-card runs into poker categories and scores
// them. EvaluateConcrete handles regular cards only; Evaluate also resolves
// jokers by searching for the best substitution.
package poker
