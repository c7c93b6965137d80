// Package filter selects Cloud Agents API objects with expr-lang
// expressions.
//
// An object's top-level JSON fields are variables in the expression, the
// whole object is available as Object, and a few helpers are provided:
//
//	synchronizationState == 6
//	stateName(synchronizationState) == "PendingAcknowledgement"
//	hasText(name, "energy") and country == "FR"
//	daysSince(creationDate) > 30
//
// A field named like an expr builtin (take, count, type, date, ...) is read
// as the field when used as a variable; the builtin stays callable only in
// expressions that do not also use that name as a variable.
//
// Objects for which an expression fails at runtime are not matched.
package filter
