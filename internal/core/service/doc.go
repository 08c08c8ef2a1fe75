// Package service wraps the CSRF tokenizer for the command-line tools.
//
// CSRFService adds logging, metrics and hot reload around a
// csrf.Tokenizer. The tokenizer is swapped atomically, so callers in
// flight keep the instance they started with.
package service
