// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// Every error leaving this package is an *errs.HTTPError: missing rows
// become 404s naming the entity, anything else the operation's generic
// 500 message with the driver error kept as its cause.
package service
