// Package mocks provides hand-written mock implementations of the store and
// service interfaces for handler tests. Each mock pairs overridable function
// fields with a simple map-backed default implementation.
package mocks
