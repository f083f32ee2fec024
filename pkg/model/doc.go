// Package model holds the realized, fully numeric body model produced from a template and a trial.
//
// A RealModel is immutable: every accessor returns copies and global transforms are computed
// once, when the model is assembled.
package model
