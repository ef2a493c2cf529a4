// Package textutil provides tokenization and text similarity primitives.
//
// Tokenization case-folds text, splits on non-alphanumeric characters,
// and filters tokens shorter than 3 characters. Similarity is a plain
// Jaccard ratio over unique token sets, which is cheap enough to run
// pairwise over a bounded candidate pool.
package textutil
