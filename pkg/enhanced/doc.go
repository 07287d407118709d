// Package enhanced composes capability enhancers into a single error value
// and renders it as JSON, XML, CSV or YAML.
//
// Package: enhanced
// Title: Enhanced Error Composition and Serialization
// Description: An *Error is a regular Go error that embeds every built-in
//              capability (Identifiers, HTTPStatus, SystemContext, UserInfo,
//              ApplicationState, Analysis), so their setters and getters are
//              called directly on the error. A capability that was not
//              passed to New is a nil embedded pointer and must not be used;
//              check e.Identifiers != nil or use Capability.
//
//              Fields are emitted as name, message, stack, then each
//              enhancer's fields in composition order. When two enhancers
//              contribute the same field name the later one wins and the
//              field keeps its first position.
//
//              Serializers share one canonical snapshot. By default it is
//              built on the first serialization and reused afterwards; call
//              InvalidateSnapshot after mutating a serialized error, or
//              configure the "fresh" snapshot policy. Serialization failures
//              are logged and returned as *SerializationError.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
//
// Usage:
//
//	e := enhanced.New("PaymentError", "card declined",
//		identifiers.New(), httpstatus.New())
//	e.SetSeverity(identifiers.SeverityHigh)
//	e.SetStatusCode(402)
//	out, err := e.FilterUnused().ToJSON()
package enhanced
