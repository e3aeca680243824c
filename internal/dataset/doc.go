// Package dataset supplies training data to the core: the mini-batch Sampler,
// row/column preparation helpers (one-hot, shuffle, split, scaling) and
// loaders for the Boston housing, Iris and MNIST datasets.
//
// Loaders download into a local cache directory on first use and parse from
// disk afterwards. Parsers accept an io.Reader so they can be tested without
// network access.
package dataset
