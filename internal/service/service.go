// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// data from the handler, performs business operations, and calls repository
// methods to interact with the data. Services return typed errors from the
// errs package; raw driver errors are passed up for the global error handler
// to classify.
package service
