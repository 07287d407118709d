// File: httpstatus.go
// Title: HTTP Status Enhancer
// Description: HTTP exchange context for an enhanced error: status code,
//              URL, method, headers, query parameters, bodies, client IP
//              and latency. Each setter validates its input and leaves the
//              state untouched on failure.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

// Package httpstatus provides the HTTPStatus enhancer.
package httpstatus

import (
	"maps"

	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

// Field names contributed by HTTPStatus
const (
	FieldStatusCode      = "_httpStatusCode"
	FieldURL             = "_url"
	FieldMethod          = "_httpMethod"
	FieldRequestHeaders  = "_requestHeaders"
	FieldResponseHeaders = "_responseHeaders"
	FieldQueryParams     = "_queryParams"
	FieldRequestBody     = "_requestBody"
	FieldResponseBody    = "_responseBody"
	FieldClientIP        = "_clientIp"
	FieldLatency         = "_latency"
)

// Method is an HTTP request method
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods returns every accepted method
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPatch, MethodPut, MethodDelete}
}

// HTTPStatus holds HTTP exchange state.
//
// Request and response bodies accept any non-nil value: strings, byte
// slices, maps, slices or structs. nil is reserved for "not set" and is
// rejected by the setters.
type HTTPStatus struct {
	statusCode      int
	url             string
	method          Method
	requestHeaders  map[string]string
	responseHeaders map[string]string
	queryParams     map[string]string
	requestBody     any
	responseBody    any
	clientIP        string
	latency         int
}

// New creates an HTTPStatus with every field unset
func New() *HTTPStatus {
	return &HTTPStatus{
		statusCode:      -1,
		requestHeaders:  map[string]string{},
		responseHeaders: map[string]string{},
		queryParams:     map[string]string{},
		latency:         -1,
	}
}

// StatusCode returns the HTTP status code, -1 until set
func (h *HTTPStatus) StatusCode() int {
	return h.statusCode
}

// SetStatusCode sets a registered HTTP status code
func (h *HTTPStatus) SetStatusCode(code int) (*HTTPStatus, error) {
	if r := validation.HTTPStatusCode(code); !r.Valid {
		return h, r.ToError("httpStatusCode", code)
	}
	h.statusCode = code
	return h, nil
}

// URL returns the request URL
func (h *HTTPStatus) URL() string {
	return h.url
}

// SetURL sets the request URL, which must be absolute
func (h *HTTPStatus) SetURL(url string) (*HTTPStatus, error) {
	if r := validation.URL(url); !r.Valid {
		return h, r.ToError("url", url)
	}
	h.url = url
	return h, nil
}

// Method returns the request method
func (h *HTTPStatus) Method() Method {
	return h.method
}

// SetMethod sets the request method
func (h *HTTPStatus) SetMethod(method Method) (*HTTPStatus, error) {
	if r := validation.OneOf(method, Methods()); !r.Valid {
		return h, r.ToError("httpMethod", method)
	}
	h.method = method
	return h, nil
}

// RequestHeaders returns a copy of the request headers
func (h *HTTPStatus) RequestHeaders() map[string]string {
	return maps.Clone(h.requestHeaders)
}

// SetRequestHeaders replaces the request headers
func (h *HTTPStatus) SetRequestHeaders(headers map[string]string) (*HTTPStatus, error) {
	if r := validation.KeyedObject(headers); !r.Valid {
		return h, r.ToError("requestHeaders", headers)
	}
	h.requestHeaders = maps.Clone(headers)
	return h, nil
}

// ResponseHeaders returns a copy of the response headers
func (h *HTTPStatus) ResponseHeaders() map[string]string {
	return maps.Clone(h.responseHeaders)
}

// SetResponseHeaders replaces the response headers
func (h *HTTPStatus) SetResponseHeaders(headers map[string]string) (*HTTPStatus, error) {
	if r := validation.KeyedObject(headers); !r.Valid {
		return h, r.ToError("responseHeaders", headers)
	}
	h.responseHeaders = maps.Clone(headers)
	return h, nil
}

// QueryParams returns a copy of the query parameters
func (h *HTTPStatus) QueryParams() map[string]string {
	return maps.Clone(h.queryParams)
}

// SetQueryParams replaces the query parameters
func (h *HTTPStatus) SetQueryParams(params map[string]string) (*HTTPStatus, error) {
	if r := validation.KeyedObject(params); !r.Valid {
		return h, r.ToError("queryParams", params)
	}
	h.queryParams = maps.Clone(params)
	return h, nil
}

// RequestBody returns the request body, nil until set
func (h *HTTPStatus) RequestBody() any {
	return h.requestBody
}

// SetRequestBody sets the request body
func (h *HTTPStatus) SetRequestBody(body any) (*HTTPStatus, error) {
	if r := validation.NotNil(body); !r.Valid {
		return h, r.ToError("requestBody", body)
	}
	h.requestBody = body
	return h, nil
}

// ResponseBody returns the response body, nil until set
func (h *HTTPStatus) ResponseBody() any {
	return h.responseBody
}

// SetResponseBody sets the response body
func (h *HTTPStatus) SetResponseBody(body any) (*HTTPStatus, error) {
	if r := validation.NotNil(body); !r.Valid {
		return h, r.ToError("responseBody", body)
	}
	h.responseBody = body
	return h, nil
}

// ClientIP returns the client IP address
func (h *HTTPStatus) ClientIP() string {
	return h.clientIP
}

// SetClientIP sets the client IP address
func (h *HTTPStatus) SetClientIP(ip string) (*HTTPStatus, error) {
	if r := validation.IP(ip); !r.Valid {
		return h, r.ToError("clientIp", ip)
	}
	h.clientIP = ip
	return h, nil
}

// Latency returns the latency in milliseconds, -1 until set
func (h *HTTPStatus) Latency() int {
	return h.latency
}

// SetLatency sets the latency in milliseconds
func (h *HTTPStatus) SetLatency(ms int) (*HTTPStatus, error) {
	if r := validation.PositiveInt(ms); !r.Valid {
		return h, r.ToError("latency", ms)
	}
	h.latency = ms
	return h, nil
}

// Fields implements enhancer.Enhancer
func (h *HTTPStatus) Fields() []enhancer.Field {
	return []enhancer.Field{
		{Name: FieldStatusCode, Value: h.statusCode},
		{Name: FieldURL, Value: h.url},
		{Name: FieldMethod, Value: h.method},
		{Name: FieldRequestHeaders, Value: h.requestHeaders},
		{Name: FieldResponseHeaders, Value: h.responseHeaders},
		{Name: FieldQueryParams, Value: h.queryParams},
		{Name: FieldRequestBody, Value: h.requestBody},
		{Name: FieldResponseBody, Value: h.responseBody},
		{Name: FieldClientIP, Value: h.clientIP},
		{Name: FieldLatency, Value: h.latency},
	}
}

// Clone implements enhancer.Enhancer. Header and query maps are copied;
// bodies are shared.
func (h *HTTPStatus) Clone() enhancer.Enhancer {
	c := *h
	c.requestHeaders = maps.Clone(h.requestHeaders)
	c.responseHeaders = maps.Clone(h.responseHeaders)
	c.queryParams = maps.Clone(h.queryParams)
	return &c
}
