// Package scoring grades catalog items through an external evaluation
// model and folds the dimensional response into a single quality score.
package scoring
