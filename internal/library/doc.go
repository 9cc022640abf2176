// Package library provides an HTTP client for the library server API.
//
// # Overview
//
// This package defines the API client for communicating with the library
// catalog backend. It handles HTTP communication, JSON and multipart
// serialization, and type-safe representation of books and auth payloads.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the server's API schema
//   - borrow.go: Concurrent "who holds this book" resolution for rendering
//
// # Client Usage
//
// Create a client using the server URL from configuration:
//
//	client, err := library.NewClient("http://127.0.0.1:8080")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	role, err := client.Login(ctx, library.Credentials{Email: email, Password: pw})
//	if err != nil {
//		log.Printf("login failed: %v", err)
//	}
//
// # Error Handling
//
// Non-2xx responses produce a *StatusError carrying the status code and the
// response body text. A 401 matches library.ErrUnauthorized under errors.Is,
// which the UI treats as a forced return to the login view. Transport
// failures are returned as wrapped errors.
//
// The client keeps the session cookie issued at login in an in-memory jar;
// authorization is enforced entirely by the server.
package library
