// Package bayes implements the multinomial Naive Bayes merchant classifier.
//
// A Classifier is built once from a training corpus and never mutated
// afterwards. Feedback is applied with WithCorrection, which trains a brand
// new Classifier from the receiver's corpus plus one extra example, so a
// published Classifier can be shared between goroutines without locking.
//
// Scoring is done in log space with additive smoothing:
//
//	score(c) = ln(docs(c)/docs) + Σ_w ln((count(w,c)+α) / (words(c)+α·|V|))
//
// and the winning score is turned into a confidence with a temperature
// scaled softmax over all categories.
package bayes
