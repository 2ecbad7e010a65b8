// Package svm loads libsvm-format scaling profiles and models and
// evaluates the one-vs-one decision function.
//
// Only dense evaluation over a fixed feature dimension is supported; the
// model's sparse index:value pairs are expanded at load time.
package svm
