// Package config provides configuration structures and utilities for
// codegenius. It defines the main options controlling tree scanning,
// artifact output, and scan history persistence.
package config
